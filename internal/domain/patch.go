package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParkField names one of the mutable attributes of a Park.
type ParkField string

const (
	FieldName     ParkField = "name"
	FieldState    ParkField = "state"
	FieldLat      ParkField = "lat"
	FieldLon      ParkField = "lon"
	FieldSourceID ParkField = "source_id"
	FieldNotes    ParkField = "notes"
)

// MutableParkFields is the complete set of park attributes that may be updated.
// ID and CreatedAt are immutable and so never appear here.
var MutableParkFields = []ParkField{FieldName, FieldState, FieldLat, FieldLon, FieldSourceID, FieldNotes}

// ParkPatch carries a partial park update. A nil field leaves the stored value unchanged.
// For the optional string fields, a pointer to "" clears the value.
type ParkPatch struct {
	Name     *string
	State    *string
	Lat      *float64
	Lon      *float64
	SourceID *string
	Notes    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ParkPatch) IsEmpty() bool {
	return p.Name == nil && p.State == nil && p.Lat == nil && p.Lon == nil &&
		p.SourceID == nil && p.Notes == nil
}

// Apply returns park with the patch's fields applied. ID and CreatedAt are untouched.
func (p ParkPatch) Apply(park Park) Park {
	if p.Name != nil {
		park.Name = *p.Name
	}
	if p.State != nil {
		park.State = StringPtr(*p.State)
	}
	if p.Lat != nil {
		lat := *p.Lat
		park.Lat = &lat
	}
	if p.Lon != nil {
		lon := *p.Lon
		park.Lon = &lon
	}
	if p.SourceID != nil {
		park.SourceID = StringPtr(*p.SourceID)
	}
	if p.Notes != nil {
		park.Notes = StringPtr(*p.Notes)
	}
	return park
}

// ParseParkPatch builds a patch from string key/value pairs such as those given
// on the command line. Keys outside MutableParkFields are ignored and returned
// (sorted) so the caller can report them; they are never an error.
// A lat/lon value that is not a number is a validation error.
func ParseParkPatch(values map[string]string) (ParkPatch, []string, error) {
	var (
		patch   ParkPatch
		ignored []string
	)
	for key, raw := range values {
		v := raw
		switch ParkField(strings.ToLower(strings.TrimSpace(key))) {
		case FieldName:
			patch.Name = &v
		case FieldState:
			patch.State = &v
		case FieldSourceID:
			patch.SourceID = &v
		case FieldNotes:
			patch.Notes = &v
		case FieldLat:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return ParkPatch{}, nil, fmt.Errorf("%w: lat must be a number", ErrValidation)
			}
			patch.Lat = &f
		case FieldLon:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return ParkPatch{}, nil, fmt.Errorf("%w: lon must be a number", ErrValidation)
			}
			patch.Lon = &f
		default:
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)
	return patch, ignored, nil
}
