// Package domain contains the core data types for the park tracker.
// It is imported by every other internal package (repo, service, agent, cli)
// and holds no I/O of its own.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Park is a named place that visits are recorded against.
// ID and CreatedAt are assigned once by NewPark and never change afterwards.
// Name is the user-facing lookup key but is not guaranteed to be unique.
type Park struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	State     *string   `json:"state"`
	Lat       *float64  `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon       *float64  `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	SourceID  *string   `json:"source_id"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPark returns a Park with a fresh ID and creation timestamp.
// Optional attributes are copied from attrs; attrs.ID and attrs.CreatedAt are ignored.
func NewPark(attrs Park) Park {
	attrs.ID = uuid.New()
	attrs.CreatedAt = time.Now().UTC()
	return attrs
}

// StateOrEmpty returns the region code, or "" when absent.
func (p Park) StateOrEmpty() string { return deref(p.State) }

// NotesOrEmpty returns the note text, or "" when absent.
func (p Park) NotesOrEmpty() string { return deref(p.Notes) }

// SourceIDOrEmpty returns the external-source identifier, or "" when absent.
func (p Park) SourceIDOrEmpty() string { return deref(p.SourceID) }

// StringPtr returns nil for an empty string so that blank inputs are stored as absent.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
