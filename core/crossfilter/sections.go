package crossfilter

// Section names as they appear in click events and reset requests.
const (
	SectionOverview   = "overview"
	SectionTypes      = "types"
	SectionInitiators = "initiators"
)

// Chart names within sections.
const (
	ChartSectors            = "sectors"
	ChartTypesBySector      = "types-by-sector"
	ChartImpact             = "impact"
	ChartConflicts          = "conflicts"
	ChartConflictSectors    = "conflict-sectors"
	ChartConflictInitiators = "conflict-initiators"
)

// OverviewState drives the overview section: the selected sector bars feed
// per-sector traces in the timeline chart.
type OverviewState struct {
	Sectors Multi
}

func (s OverviewState) Click(chart string, e Element) (OverviewState, bool) {
	if chart != ChartSectors {
		return s, false
	}
	s.Sectors = s.Sectors.Click(e)
	return s, true
}

func (OverviewState) Reset() OverviewState {
	return OverviewState{}
}

// TypesState drives the attack-types section. Selecting a (sector, type)
// segment in the stacked chart filters the impact drill-down; the drill-down
// selection sits below it, so a new stack selection discards it.
type TypesState struct {
	Stack  Single
	Impact Single
}

func (s TypesState) Click(chart string, e Element) (TypesState, bool) {
	switch chart {
	case ChartTypesBySector:
		s.Stack = s.Stack.Click(e)
		s.Impact = Single{}
		return s, true
	case ChartImpact:
		s.Impact = s.Impact.Click(e)
		return s, true
	}
	return s, false
}

func (TypesState) Reset() TypesState {
	return TypesState{}
}

// InitiatorsState drives the conflict drill-down chain: conflict selection
// feeds the sector breakdown, whose selection in turn feeds the initiator
// breakdown. A click upstream clears everything downstream; siblings are
// untouched.
type InitiatorsState struct {
	Conflict Single
	Sector   Single
}

func (s InitiatorsState) Click(chart string, e Element) (InitiatorsState, bool) {
	switch chart {
	case ChartConflicts:
		s.Conflict = s.Conflict.Click(e)
		s.Sector = Single{}
		return s, true
	case ChartConflictSectors:
		s.Sector = s.Sector.Click(e)
		return s, true
	}
	return s, false
}

func (InitiatorsState) Reset() InitiatorsState {
	return InitiatorsState{}
}

// State bundles the three sections for one browser session.
type State struct {
	Overview   OverviewState
	Types      TypesState
	Initiators InitiatorsState
}

// Click routes a chart click to its section. The second result is false for
// an unknown section/chart pair.
func (s State) Click(section, chart string, e Element) (State, bool) {
	switch section {
	case SectionOverview:
		next, ok := s.Overview.Click(chart, e)
		s.Overview = next
		return s, ok
	case SectionTypes:
		next, ok := s.Types.Click(chart, e)
		s.Types = next
		return s, ok
	case SectionInitiators:
		next, ok := s.Initiators.Click(chart, e)
		s.Initiators = next
		return s, ok
	}
	return s, false
}

// Reset clears one section, or all of them for section "".
func (s State) Reset(section string) (State, bool) {
	switch section {
	case "":
		return State{}, true
	case SectionOverview:
		s.Overview = OverviewState{}
		return s, true
	case SectionTypes:
		s.Types = TypesState{}
		return s, true
	case SectionInitiators:
		s.Initiators = InitiatorsState{}
		return s, true
	}
	return s, false
}
