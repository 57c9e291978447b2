package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/render"
)

func TestCoord(t *testing.T) {
	v := 44.6
	assert.Equal(t, "44.600000", render.Coord(&v))
	assert.Equal(t, "", render.Coord(nil))
}

func TestTruncateNote(t *testing.T) {
	short := "lovely"
	assert.Equal(t, short, render.TruncateNote(short))

	exact := strings.Repeat("a", 60)
	assert.Equal(t, exact, render.TruncateNote(exact))

	long := strings.Repeat("b", 61)
	got := render.TruncateNote(long)
	assert.Len(t, got, 60)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("b", 57), strings.TrimSuffix(got, "..."))
}

func TestParks(t *testing.T) {
	lat, lon := 44.6, -110.5
	parks := []domain.Park{
		{ID: uuid.New(), Name: "Yellowstone", State: domain.StringPtr("WY"), Lat: &lat, Lon: &lon, Notes: domain.StringPtr("geysers")},
		{ID: uuid.New(), Name: "Zion"},
	}

	var buf bytes.Buffer
	require.NoError(t, render.Parks(&buf, parks, false))

	out := buf.String()
	assert.Contains(t, out, "Yellowstone")
	assert.Contains(t, out, "44.600000")
	assert.Contains(t, out, "-110.500000")
	assert.Contains(t, out, "Zion")
	assert.NotContains(t, out, "Notes")
	assert.NotContains(t, out, "geysers")
}

func TestParks_ShowNotes(t *testing.T) {
	parks := []domain.Park{{ID: uuid.New(), Name: "Acadia", Notes: domain.StringPtr(strings.Repeat("x", 80))}}

	var buf bytes.Buffer
	require.NoError(t, render.Parks(&buf, parks, true))

	out := buf.String()
	assert.Contains(t, out, "Notes")
	assert.Contains(t, out, strings.Repeat("x", 57)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 58))
}

func TestVisits(t *testing.T) {
	v := domain.NewVisit(domain.Visit{ParkID: uuid.New(), Trail: domain.StringPtr("Upper Loop"), PartySize: 3})
	details := []domain.VisitDetail{{Visit: v, ParkName: domain.UnknownParkName}}

	var buf bytes.Buffer
	require.NoError(t, render.Visits(&buf, details))

	out := buf.String()
	assert.Contains(t, out, v.ID.String())
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "Upper Loop")
	assert.Contains(t, out, "Party")
}
