package domain

// VisitedFilter partitions parks by whether any visit references them.
type VisitedFilter int

const (
	// AllParks applies no visited/unvisited partition.
	AllParks VisitedFilter = iota
	// VisitedOnly keeps parks referenced by at least one visit.
	VisitedOnly
	// UnvisitedOnly keeps parks that no visit references.
	UnvisitedOnly
)

// ParkFilter narrows a park listing. The zero value matches every park.
type ParkFilter struct {
	Visited VisitedFilter
	// State, when non-empty, keeps parks whose region contains it
	// (case-insensitive substring). Parks without a region never match.
	State string
}
