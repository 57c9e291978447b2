package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnknownParkName is shown in place of a park name when a visit references
// a park id that is no longer in the store.
const UnknownParkName = "Unknown"

// Visit is a single trip to a park.
// ParkID is a weak reference: nothing guarantees that the park still exists.
// Start and End are free-form date-like strings and are never parsed by the store.
type Visit struct {
	ID        uuid.UUID `json:"id"`
	ParkID    uuid.UUID `json:"park_id"`
	Trail     *string   `json:"trail"`
	Start     *string   `json:"start"`
	End       *string   `json:"end"`
	PartySize int       `json:"party_size"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewVisit returns a Visit with a fresh ID and creation timestamp.
// A zero PartySize defaults to 1.
func NewVisit(attrs Visit) Visit {
	attrs.ID = uuid.New()
	attrs.CreatedAt = time.Now().UTC()
	if attrs.PartySize == 0 {
		attrs.PartySize = 1
	}
	return attrs
}

// TrailOrEmpty returns the trail name, or "" when absent.
func (v Visit) TrailOrEmpty() string { return deref(v.Trail) }

// StartOrEmpty returns the start marker, or "" when absent.
func (v Visit) StartOrEmpty() string { return deref(v.Start) }

// EndOrEmpty returns the end marker, or "" when absent.
func (v Visit) EndOrEmpty() string { return deref(v.End) }

// VisitDetail is a visit joined with the display name of its park.
// ParkName is UnknownParkName when the park no longer exists.
type VisitDetail struct {
	Visit
	ParkName string
}
