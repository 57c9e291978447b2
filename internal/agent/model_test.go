package agent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/park-tracker/internal/agent"
	"github.com/pkordes/park-tracker/internal/domain"
)

func withModel(s agent.Suggester) func(*agent.Config) {
	return func(c *agent.Config) {
		c.UseModel = true
		c.Suggester = s
	}
}

func TestResolver_Model_ConfirmedAddPark(t *testing.T) {
	s := suggesting(domain.Suggestion{
		Action:      domain.ActionAddPark,
		Params:      map[string]any{"name": "Capitol Reef", "state": "UT"},
		Explanation: "Adds Capitol Reef.",
	})
	r, h := newHarness(t, "yes\n", withModel(s))

	_, err := r.Handle(context.Background(), "I want to track capitol reef")

	require.NoError(t, err)
	parks := h.doc(t).Parks
	require.Len(t, parks, 1)
	assert.Equal(t, "Capitol Reef", parks[0].Name)
	assert.Equal(t, "UT", parks[0].StateOrEmpty())
	out := h.out.String()
	assert.Contains(t, out, "Adds Capitol Reef.")
	assert.Contains(t, out, "Suggested action: add_park")
}

func TestResolver_Model_DeclinedEndsTurn(t *testing.T) {
	s := suggesting(domain.Suggestion{Action: domain.ActionAddPark, Params: map[string]any{"name": "Bar"}})
	r, h := newHarness(t, "n\n", withModel(s))

	_, err := r.Handle(context.Background(), "add park Foo")

	require.NoError(t, err)
	assert.Empty(t, h.doc(t).Parks, "neither the suggestion nor the local rule may run")
	assert.Zero(t, *h.calls)
}

func TestResolver_Model_EndOfInputDeclines(t *testing.T) {
	s := suggesting(domain.Suggestion{Action: domain.ActionImportParks, Params: map[string]any{}})
	r, h := newHarness(t, "", withModel(s))

	_, err := r.Handle(context.Background(), "import")

	require.NoError(t, err)
	assert.Zero(t, *h.calls)
}

func TestResolver_Model_DisallowedActionInvokesNothing(t *testing.T) {
	for _, action := range []string{"delete_all", "", "ADD_PARK", "clear_parks"} {
		t.Run(action, func(t *testing.T) {
			s := suggesting(domain.Suggestion{Action: action, Params: map[string]any{"name": "X"}})
			r, h := newHarness(t, "y\n", withModel(s))

			_, err := r.Handle(context.Background(), "do something clever")

			require.NoError(t, err)
			assert.Zero(t, *h.calls)
			assert.Contains(t, h.out.String(), "falling back to local rules")
			assert.Contains(t, h.out.String(), agent.UsageHint)
		})
	}
}

func TestResolver_Model_UnavailableFallsThrough(t *testing.T) {
	failing := &mockSuggester{suggest: func(context.Context, string) (domain.Suggestion, error) {
		return domain.Suggestion{}, domain.ErrModelUnavailable
	}}
	r, h := newHarness(t, "", withModel(failing))
	h.addPark(t, "Olympic", "WA")

	_, err := r.Handle(context.Background(), "list parks")

	require.NoError(t, err)
	out := h.out.String()
	assert.Contains(t, out, "falling back to local rules")
	assert.Contains(t, out, "Olympic")
}

func TestResolver_Model_NilSuggesterFallsThrough(t *testing.T) {
	r, h := newHarness(t, "", withModel(nil))

	_, err := r.Handle(context.Background(), "add park Zion UT")

	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "falling back to local rules")
	assert.Len(t, h.doc(t).Parks, 1)
}

func TestResolver_Model_NoneFallsThrough(t *testing.T) {
	s := suggesting(domain.Suggestion{Action: domain.ActionNone, Explanation: "not a park request"})
	r, h := newHarness(t, "", withModel(s))

	_, err := r.Handle(context.Background(), "add park Zion UT")

	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "not a park request")
	assert.NotContains(t, h.out.String(), "Execute suggested action?")
	assert.Len(t, h.doc(t).Parks, 1)
}

func TestResolver_Model_Timeout(t *testing.T) {
	slow := &mockSuggester{suggest: func(ctx context.Context, _ string) (domain.Suggestion, error) {
		<-ctx.Done()
		return domain.Suggestion{}, ctx.Err()
	}}
	r, h := newHarness(t, "", func(c *agent.Config) {
		withModel(slow)(c)
		c.ModelTimeout = 20 * time.Millisecond
	})

	start := time.Now()
	_, err := r.Handle(context.Background(), "hello there")

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Contains(t, h.out.String(), "falling back to local rules")
}

func TestResolver_Model_AddVisitMissingPark(t *testing.T) {
	s := suggesting(domain.Suggestion{Action: domain.ActionAddVisit, Params: map[string]any{"party": 2.0}})
	r, h := newHarness(t, "y\n", withModel(s))

	_, err := r.Handle(context.Background(), "log a trip")

	require.NoError(t, err)
	assert.Empty(t, h.doc(t).Visits)
	assert.Contains(t, h.out.String(), `missing required param "park"`)
}

func TestResolver_Model_AddVisit(t *testing.T) {
	s := suggesting(domain.Suggestion{
		Action: domain.ActionAddVisit,
		Params: map[string]any{"park": "Yellowstone", "trail": "Fairy Falls", "start": "2025-07-10", "party": "3"},
	})
	r, h := newHarness(t, "y\n", withModel(s))
	h.addPark(t, "Yellowstone", "WY")

	_, err := r.Handle(context.Background(), "log my Yellowstone hike")

	require.NoError(t, err)
	visits := h.doc(t).Visits
	require.Len(t, visits, 1)
	assert.Equal(t, "Fairy Falls", visits[0].TrailOrEmpty())
	assert.Equal(t, "2025-07-10", visits[0].StartOrEmpty())
	assert.Nil(t, visits[0].End)
	assert.Equal(t, 3, visits[0].PartySize)
}

func TestResolver_Model_ImportAndList(t *testing.T) {
	imp := suggesting(domain.Suggestion{Action: domain.ActionImportParks, Params: map[string]any{}})
	r, h := newHarness(t, "y\n", withModel(imp))
	writeListing(t, h.source, `[{"name": "Glacier", "state": "MT"}]`)

	_, err := r.Handle(context.Background(), "grab the official list")

	require.NoError(t, err)
	assert.Len(t, h.doc(t).Parks, 1)
}
