package agent_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/park-tracker/internal/agent"
	"github.com/pkordes/park-tracker/internal/domain"
)

// ---- Exit and fallback -----------------------------------------------------

func TestResolver_Handle_ExitTokens(t *testing.T) {
	r, h := newHarness(t, "", nil)

	for _, in := range []string{"exit", "quit", "  QUIT "} {
		cont, err := r.Handle(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, cont, "%q should end the session", in)
	}
	assert.Zero(t, *h.calls)
}

func TestResolver_Handle_NotUnderstood(t *testing.T) {
	r, h := newHarness(t, "", nil)

	cont, err := r.Handle(context.Background(), "what's the weather like")

	require.NoError(t, err)
	assert.True(t, cont)
	assert.Contains(t, h.out.String(), agent.UsageHint)
	assert.Zero(t, *h.calls)
}

// ---- Region query ----------------------------------------------------------

func TestResolver_Handle_FindParksInRegion(t *testing.T) {
	r, h := newHarness(t, "", nil)
	h.addPark(t, "Yellowstone", "WY")
	h.addPark(t, "Grand Teton", "wy")
	h.addPark(t, "Zion", "UT")

	_, err := r.Handle(context.Background(), "find parks in WY")

	require.NoError(t, err)
	out := h.out.String()
	assert.Contains(t, out, "Yellowstone")
	assert.Contains(t, out, "Grand Teton")
	assert.NotContains(t, out, "Zion")
}

// ---- Plan visit ------------------------------------------------------------

func TestResolver_Handle_PlanVisit(t *testing.T) {
	r, h := newHarness(t, "", nil)
	ys := h.addPark(t, "Yellowstone", "WY")

	_, err := r.Handle(context.Background(), "plan visit to Yellowstone on 2025-07-10 for 3")

	require.NoError(t, err)
	visits := h.doc(t).Visits
	require.Len(t, visits, 1)
	assert.Equal(t, ys.ID, visits[0].ParkID)
	assert.Equal(t, "2025-07-10", visits[0].StartOrEmpty())
	assert.Equal(t, 3, visits[0].PartySize)
	assert.Contains(t, h.out.String(), "planned visit to Yellowstone on 2025-07-10 for 3 people")
}

func TestResolver_Handle_PlanVisit_UnparseableDate(t *testing.T) {
	r, h := newHarness(t, "", func(c *agent.Config) {
		c.ParseDate = func(string) (time.Time, error) { return time.Time{}, errors.New("no idea") }
	})
	h.addPark(t, "Zion", "UT")

	_, err := r.Handle(context.Background(), "plan visit to Zion on the first nice day for lots")

	require.NoError(t, err)
	visits := h.doc(t).Visits
	require.Len(t, visits, 1)
	assert.Nil(t, visits[0].Start, "an unparseable date is recorded as absent")
	assert.Equal(t, 1, visits[0].PartySize, "an unparseable party size defaults to 1")
	assert.Contains(t, h.out.String(), "(no date)")
}

func TestResolver_Handle_PlanVisit_UnknownPark(t *testing.T) {
	r, h := newHarness(t, "", nil)

	_, err := r.Handle(context.Background(), "plan visit to Atlantis on 2025-07-10")

	require.NoError(t, err)
	assert.Empty(t, h.doc(t).Visits)
	assert.Contains(t, h.out.String(), "not found")
}

// ---- Import and list -------------------------------------------------------

func TestResolver_Handle_ImportParks(t *testing.T) {
	r, h := newHarness(t, "", nil)
	writeListing(t, h.source, `[{"name": "Acadia", "STATES": "ME"}, {"NAME": "Arches", "state": "UT"}]`)

	_, err := r.Handle(context.Background(), "please import the park list")

	require.NoError(t, err)
	assert.Len(t, h.doc(t).Parks, 2)
	assert.Contains(t, h.out.String(), "added=2, skipped=0")
}

func TestResolver_Handle_ImportParks_MissingSourceIsSoft(t *testing.T) {
	r, h := newHarness(t, "", nil)

	cont, err := r.Handle(context.Background(), "import parks")

	require.NoError(t, err)
	assert.True(t, cont)
	assert.Contains(t, h.out.String(), "import failed")
	assert.Empty(t, h.doc(t).Parks)
}

func TestResolver_Handle_ListParks(t *testing.T) {
	r, h := newHarness(t, "", nil)
	h.addPark(t, "Denali", "AK")

	_, err := r.Handle(context.Background(), "list parks")

	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Denali")
}

// ---- Add park --------------------------------------------------------------

func TestResolver_Handle_AddPark(t *testing.T) {
	cases := []struct {
		in, name, state string
	}{
		{"add park Great Basin NV", "Great Basin", "NV"},
		{"add park Arches, UT", "Arches", "UT"},
		{"add park Great Smoky Mountains", "Great Smoky Mountains", ""},
		{"Add Park Zion", "Zion", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			r, h := newHarness(t, "", nil)

			_, err := r.Handle(context.Background(), tc.in)

			require.NoError(t, err)
			parks := h.doc(t).Parks
			require.Len(t, parks, 1)
			assert.Equal(t, tc.name, parks[0].Name)
			assert.Equal(t, tc.state, parks[0].StateOrEmpty())
		})
	}
}

func TestResolver_Handle_AddPark_NoName(t *testing.T) {
	r, h := newHarness(t, "", nil)

	_, err := r.Handle(context.Background(), "add park")

	require.NoError(t, err)
	assert.Empty(t, h.doc(t).Parks)
	assert.Contains(t, h.out.String(), "please provide a park name")
}

// ---- Add visit -------------------------------------------------------------

func TestResolver_Handle_AddVisit(t *testing.T) {
	r, h := newHarness(t, "", nil)
	ys := h.addPark(t, "Yellowstone", "WY")

	_, err := r.Handle(context.Background(), "add visit to Yellowstone party 4")

	require.NoError(t, err)
	visits := h.doc(t).Visits
	require.Len(t, visits, 1)
	assert.Equal(t, ys.ID, visits[0].ParkID)
	assert.Equal(t, 4, visits[0].PartySize)
}

func TestResolver_Handle_AddVisit_NoPark(t *testing.T) {
	r, h := newHarness(t, "", nil)

	_, err := r.Handle(context.Background(), "add a visit please")

	require.NoError(t, err)
	assert.Zero(t, *h.calls, "a parse failure performs no store operation")
	assert.Contains(t, h.out.String(), "could not parse park name")
}

// ---- Store failures --------------------------------------------------------

type failingParks struct{ agent.ParkStore }

func (failingParks) Add(context.Context, domain.Park) (domain.Park, error) {
	return domain.Park{}, errors.New("disk full")
}

func TestResolver_Handle_WriteFailureIsFatal(t *testing.T) {
	r, _ := newHarness(t, "", func(c *agent.Config) { c.Parks = failingParks{c.Parks} })

	_, err := r.Handle(context.Background(), "add park Zion UT")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

// ---- Run loop --------------------------------------------------------------

func TestResolver_Run_ExitToken(t *testing.T) {
	r, h := newHarness(t, "add park Zion UT\nlist parks\nexit\nadd park Never\n", nil)

	require.NoError(t, r.Run(context.Background()))

	parks := h.doc(t).Parks
	require.Len(t, parks, 1)
	assert.Equal(t, "Zion", parks[0].Name)
	assert.Contains(t, h.out.String(), agent.Prompt)
	assert.Contains(t, h.out.String(), "Agent: exiting")
}

func TestResolver_Run_EndOfInput(t *testing.T) {
	r, h := newHarness(t, "list parks\n", nil)

	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Agent session closed")
}

func TestResolver_Run_OverlongLineKeepsSession(t *testing.T) {
	long := strings.Repeat("x", agent.MaxLineBytes+4096)
	r, h := newHarness(t, long+"\nadd park Zion UT\nexit\n", nil)

	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, h.out.String(), agent.UsageHint)
	assert.Contains(t, h.out.String(), "Agent: exiting")
	require.Len(t, h.doc(t).Parks, 1)
}

func TestNewLineScanner_TruncatesOverlongLines(t *testing.T) {
	long := strings.Repeat("y", agent.MaxLineBytes*2+10)
	s := agent.NewLineScanner(strings.NewReader("first\r\n" + long + "\nlast"))

	var lines []string
	for s.Scan() {
		lines = append(lines, s.Text())
	}

	require.NoError(t, s.Err())
	require.Len(t, lines, 3)
	assert.Equal(t, "first", lines[0])
	assert.Len(t, lines[1], agent.MaxLineBytes)
	assert.Equal(t, "last", lines[2])
}

func TestResolver_Run_StopsOnFatalError(t *testing.T) {
	r, _ := newHarness(t, "add park Zion\nlist parks\n", func(c *agent.Config) { c.Parks = failingParks{c.Parks} })

	err := r.Run(context.Background())

	assert.Error(t, err)
}

// ---- ParseDate -------------------------------------------------------------

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2025-07-10", "July 10, 2025", "07/10/2025"} {
		got, err := agent.ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, "2025-07-10", got.Format("2006-01-02"), in)
	}

	for _, in := range []string{"whenever", "1/2/3/4", "1:2:3:4", "1.2.3.4.5"} {
		_, err := agent.ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestResolver_Handle_PlanVisit_JunkDate(t *testing.T) {
	r, h := newHarness(t, "", nil)
	h.addPark(t, "Zion", "UT")

	_, err := r.Handle(context.Background(), "plan visit to Zion on 1/2/3/4")

	require.NoError(t, err)
	visits := h.doc(t).Visits
	require.Len(t, visits, 1)
	assert.Nil(t, visits[0].Start)
}
