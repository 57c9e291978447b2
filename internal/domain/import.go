package domain

// ImportRecord is one park-like entry from an external listing after its
// heterogeneous keys have been normalized. Absent values are nil.
type ImportRecord struct {
	Name     string
	State    *string
	Lat      *float64
	Lon      *float64
	SourceID *string
}

// ImportResult reports what an import did. Added counts new parks plus
// existing parks that had missing fields backfilled; Skipped counts existing
// parks that needed nothing. Records without a name are not counted.
type ImportResult struct {
	Added   int
	Skipped int
}
