package dataset

// Table is an immutable snapshot of canonicalized rows. Read handlers share a
// single Table; all narrowing produces new values and never mutates the
// backing slice contents.
type Table struct {
	rows []Row
}

// NewTable wraps rows in a Table. The caller hands over ownership of the
// slice.
func NewTable(rows []Row) Table {
	return Table{rows: rows}
}

// Len reports the number of rows, NOT the number of incidents.
func (t Table) Len() int {
	return len(t.rows)
}

// Rows returns the backing rows. Callers must treat the result as read-only.
func (t Table) Rows() []Row {
	return t.rows
}

// Each calls fn for every row.
func (t Table) Each(fn func(Row)) {
	for _, r := range t.rows {
		fn(r)
	}
}

// Filter returns a new Table holding the rows for which pred is true.
func (t Table) Filter(pred func(Row) bool) Table {
	out := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return Table{rows: out}
}

// DistinctIncidents counts unique incident ids across all rows.
func (t Table) DistinctIncidents() int {
	seen := make(map[int64]struct{}, len(t.rows))
	for _, r := range t.rows {
		seen[r.IncidentID] = struct{}{}
	}
	return len(seen)
}
