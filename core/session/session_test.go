package session

import (
	"testing"
	"time"

	"citracker/core/crossfilter"
	"citracker/core/dataset"
)

func TestClickAndObserveRoundTrip(t *testing.T) {
	st := NewStore(time.Hour)
	id := st.NewID()
	sel := dataset.Selection{Geography: "Global (states)"}

	st.Observe(id, crossfilter.SectionOverview, sel)
	state, ok := st.Click(id, crossfilter.SectionOverview, crossfilter.ChartSectors, crossfilter.Element{Category: "Health"})
	if !ok || !state.Overview.Sectors.Active() {
		t.Fatalf("click not applied: %+v", state)
	}

	state = st.Observe(id, crossfilter.SectionOverview, sel)
	if !state.Overview.Sectors.Contains(crossfilter.Element{Category: "Health"}) {
		t.Fatalf("selection lost on re-observe: %+v", state)
	}
}

func TestUpstreamFilterChangeClearsSection(t *testing.T) {
	st := NewStore(time.Hour)
	id := st.NewID()
	sel := dataset.Selection{Geography: "Global (states)"}

	st.Observe(id, crossfilter.SectionOverview, sel)
	st.Click(id, crossfilter.SectionOverview, crossfilter.ChartSectors, crossfilter.Element{Category: "Health"})

	moved := sel
	moved.Year = 2023
	state := st.Observe(id, crossfilter.SectionOverview, moved)
	if state.Overview.Sectors.Active() {
		t.Fatalf("filter change must clear section state, got %+v", state.Overview)
	}
}

func TestFilterChangeInOtherSectionDoesNotClear(t *testing.T) {
	st := NewStore(time.Hour)
	id := st.NewID()
	sel := dataset.Selection{}

	st.Observe(id, crossfilter.SectionOverview, sel)
	st.Click(id, crossfilter.SectionOverview, crossfilter.ChartSectors, crossfilter.Element{Category: "Health"})

	other := dataset.Selection{Year: 2021}
	st.Observe(id, crossfilter.SectionTypes, other)

	state := st.Observe(id, crossfilter.SectionOverview, sel)
	if !state.Overview.Sectors.Active() {
		t.Fatalf("sibling section observation cleared overview state")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	st := NewStore(time.Hour)
	a, b := st.NewID(), st.NewID()
	if a == b {
		t.Fatalf("duplicate session ids")
	}

	st.Click(a, crossfilter.SectionOverview, crossfilter.ChartSectors, crossfilter.Element{Category: "Health"})
	state := st.Observe(b, crossfilter.SectionOverview, dataset.Selection{})
	if state.Overview.Sectors.Active() {
		t.Fatalf("state leaked across sessions")
	}
}

func TestTTLExpiry(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Unix(1700000000, 0)
	st.now = func() time.Time { return now }

	id := st.NewID()
	st.Click(id, crossfilter.SectionOverview, crossfilter.ChartSectors, crossfilter.Element{Category: "Health"})
	if st.Len() != 1 {
		t.Fatalf("expected one live session")
	}

	now = now.Add(2 * time.Minute)
	state := st.Observe(id, crossfilter.SectionOverview, dataset.Selection{})
	if state.Overview.Sectors.Active() {
		t.Fatalf("expired session state survived")
	}
}
