package domain

import "github.com/google/uuid"

// Document is the whole persisted store: every park and every visit, in
// insertion order. It is always read and written as one unit.
type Document struct {
	Parks  []Park  `json:"parks"`
	Visits []Visit `json:"visits"`
}

// NewDocument returns an empty document whose slices encode as [] rather than null.
func NewDocument() Document {
	return Document{Parks: []Park{}, Visits: []Visit{}}
}

// ParkIndex returns the position of the first park with the given id, or -1.
func (d Document) ParkIndex(id uuid.UUID) int {
	for i := range d.Parks {
		if d.Parks[i].ID == id {
			return i
		}
	}
	return -1
}

// VisitedParkIDs returns the set of park ids referenced by at least one visit.
func (d Document) VisitedParkIDs() map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{}, len(d.Visits))
	for _, v := range d.Visits {
		if v.ParkID == uuid.Nil {
			continue
		}
		ids[v.ParkID] = struct{}{}
	}
	return ids
}

// ParkName returns the name of the park with the given id, or UnknownParkName
// when the reference dangles.
func (d Document) ParkName(id uuid.UUID) string {
	if i := d.ParkIndex(id); i >= 0 {
		return d.Parks[i].Name
	}
	return UnknownParkName
}

// ParkIndexByName returns the position of the first park whose name equals
// name exactly, or -1.
func (d Document) ParkIndexByName(name string) int {
	for i := range d.Parks {
		if d.Parks[i].Name == name {
			return i
		}
	}
	return -1
}
