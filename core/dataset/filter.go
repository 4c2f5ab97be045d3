package dataset

import (
	"time"

	"citracker/core/geo"
)

// Selection is the upstream view narrowing chosen by a user: geography,
// slider year and date range. Zero values mean "no constraint".
type Selection struct {
	Geography string
	// Year 0 means all years.
	Year int
	// From/To bound StartDate inclusively; a zero time leaves that side
	// open.
	From time.Time
	To   time.Time
}

// IsGlobal reports whether the selection narrows nothing.
func (s Selection) IsGlobal() bool {
	return (s.Geography == "" || s.Geography == geo.SelectorGlobal) &&
		s.Year == 0 && s.From.IsZero() && s.To.IsZero()
}

// Apply narrows t to the rows matching s. It is pure; the input table is
// never mutated. A reversed date range matches nothing. An unrecognized
// geography selector also matches nothing rather than failing.
func Apply(t Table, s Selection) Table {
	if !s.From.IsZero() && !s.To.IsZero() && s.To.Before(s.From) {
		return NewTable(nil)
	}

	var matchGeo func(Row) bool
	switch {
	case s.Geography == "" || s.Geography == geo.SelectorGlobal:
		matchGeo = func(Row) bool { return true }
	case geo.IsRegionSelector(s.Geography):
		code, _ := geo.RegionCode(s.Geography)
		matchGeo = func(r Row) bool { return r.RegionName == code }
	default:
		country := s.Geography
		matchGeo = func(r Row) bool { return r.ReceiverCountry == country }
	}

	return t.Filter(func(r Row) bool {
		if !matchGeo(r) {
			return false
		}
		if s.Year != 0 && r.StartDate.Year() != s.Year {
			return false
		}
		if !s.From.IsZero() && r.StartDate.Before(s.From) {
			return false
		}
		if !s.To.IsZero() && r.StartDate.After(s.To) {
			return false
		}
		return true
	})
}

// ApplySubtypes narrows the secondary subtype table by geography only; the
// subtype view carries no date dimension.
func ApplySubtypes(rows []SubtypeRow, s Selection) []SubtypeRow {
	if s.Geography == "" || s.Geography == geo.SelectorGlobal {
		out := make([]SubtypeRow, len(rows))
		copy(out, rows)
		return out
	}
	var match func(SubtypeRow) bool
	if geo.IsRegionSelector(s.Geography) {
		code, _ := geo.RegionCode(s.Geography)
		match = func(r SubtypeRow) bool { return r.RegionName == code }
	} else {
		match = func(r SubtypeRow) bool { return r.ReceiverCountry == s.Geography }
	}
	out := make([]SubtypeRow, 0, len(rows))
	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}
