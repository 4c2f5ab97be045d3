package dataset

import (
	"testing"

	"citracker/core/geo"
)

func filterFixture() Table {
	de := baseRow(1)
	fr := baseRow(2)
	fr.ReceiverCountry = "France"
	us := baseRow(3)
	us.ReceiverCountry = "United States"
	us.RegionName = "NATO"
	us.StartDate = mkDate("2021-03-15")
	return NewTable([]Row{de, fr, us})
}

func TestApplyGlobalIsNoOp(t *testing.T) {
	tab := filterFixture()
	for _, geography := range []string{"", geo.SelectorGlobal} {
		got := Apply(tab, Selection{Geography: geography})
		if got.Len() != tab.Len() {
			t.Fatalf("geography %q: got %d rows, want %d", geography, got.Len(), tab.Len())
		}
	}
}

func TestApplyRegionSelector(t *testing.T) {
	got := Apply(filterFixture(), Selection{Geography: "EU (member states)"})
	if got.Len() != 2 {
		t.Fatalf("expected 2 EU rows, got %d", got.Len())
	}
	got.Each(func(r Row) {
		if r.RegionName != "EU" {
			t.Fatalf("non-EU row passed the filter: %+v", r)
		}
	})
}

func TestApplyCountrySelector(t *testing.T) {
	got := Apply(filterFixture(), Selection{Geography: "France"})
	if got.Len() != 1 || got.Rows()[0].ReceiverCountry != "France" {
		t.Fatalf("country filter wrong: %+v", got.Rows())
	}
}

func TestApplyUnknownSelectorMatchesNothing(t *testing.T) {
	got := Apply(filterFixture(), Selection{Geography: "Atlantis"})
	if got.Len() != 0 {
		t.Fatalf("unknown selector must match nothing, got %d rows", got.Len())
	}
}

func TestApplyYear(t *testing.T) {
	got := Apply(filterFixture(), Selection{Year: 2021})
	if got.Len() != 1 || got.Rows()[0].IncidentID != 3 {
		t.Fatalf("year filter wrong: %+v", got.Rows())
	}
}

func TestApplyDateRangeInclusive(t *testing.T) {
	got := Apply(filterFixture(), Selection{
		From: mkDate("2022-06-01"),
		To:   mkDate("2022-06-01"),
	})
	if got.Len() != 2 {
		t.Fatalf("inclusive bounds: got %d rows, want 2", got.Len())
	}
}

func TestApplyReversedRangeMatchesNothing(t *testing.T) {
	got := Apply(filterFixture(), Selection{
		From: mkDate("2023-01-01"),
		To:   mkDate("2022-01-01"),
	})
	if got.Len() != 0 {
		t.Fatalf("reversed range must match nothing, got %d rows", got.Len())
	}
}

func TestApplyIsPure(t *testing.T) {
	tab := filterFixture()
	before := tab.Len()
	_ = Apply(tab, Selection{Geography: "France", Year: 2021})
	if tab.Len() != before {
		t.Fatalf("input table mutated")
	}
	if tab.Rows()[0].ReceiverCountry != "Germany" {
		t.Fatalf("input rows mutated: %+v", tab.Rows()[0])
	}
}

func TestApplySubtypesGeography(t *testing.T) {
	rows := []SubtypeRow{
		{IncidentID: 1, ReceiverSubcategory: "Health", CISubtype: "Hospital", ReceiverCountry: "Germany", RegionName: "EU"},
		{IncidentID: 2, ReceiverSubcategory: "Energy", CISubtype: "Grid", ReceiverCountry: "United States", RegionName: "NATO"},
	}
	got := ApplySubtypes(rows, Selection{Geography: "EU (member states)"})
	if len(got) != 1 || got[0].ReceiverCountry != "Germany" {
		t.Fatalf("region filter wrong: %+v", got)
	}

	all := ApplySubtypes(rows, Selection{Geography: geo.SelectorGlobal})
	if len(all) != 2 {
		t.Fatalf("global must keep everything, got %d", len(all))
	}
	all[0].CISubtype = "changed"
	if rows[0].CISubtype != "Hospital" {
		t.Fatalf("global result must be a copy")
	}
}

func TestSelectionIsGlobal(t *testing.T) {
	if !(Selection{}).IsGlobal() {
		t.Fatalf("zero selection must be global")
	}
	if (Selection{Year: 2022}).IsGlobal() {
		t.Fatalf("year-narrowed selection is not global")
	}
	if !(Selection{Geography: geo.SelectorGlobal}).IsGlobal() {
		t.Fatalf("global sentinel must be global")
	}
}
