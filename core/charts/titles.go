package charts

import (
	"fmt"
	"strconv"

	"citracker/core/dataset"
	"citracker/core/geo"
)

// Titles are the section headings, parametrized by the selected geography.
// Year carries the slider label so the client shows "All years" when the
// sentinel position is active.
type Titles struct {
	Year                string `json:"year"`
	OverviewMain        string `json:"overviewMain"`
	OverviewSectors     string `json:"overviewSectors"`
	TypesMain           string `json:"typesMain"`
	TypesAggregate      string `json:"typesAggregate"`
	TypesImpact         string `json:"typesImpact"`
	TypesTechniques     string `json:"typesTechniques"`
	InitiatorsMain      string `json:"initiatorsMain"`
	InitiatorsAggregate string `json:"initiatorsAggregate"`
	InitiatorsTable     string `json:"initiatorsTable"`
	InitiatorsConflicts string `json:"initiatorsConflicts"`
}

// YearLabel renders the year slider position for headings.
func YearLabel(year int) string {
	if year == 0 {
		return "All years"
	}
	return strconv.Itoa(year)
}

// GeographyLabel turns the raw selector into prose for titles.
func GeographyLabel(geography string) string {
	if geography == "" || geography == geo.SelectorGlobal {
		return "all countries"
	}
	return geography
}

// BuildTitles produces the headings for the given geography selector.
func BuildTitles(geography string) Titles {
	where := GeographyLabel(geography)
	return Titles{
		OverviewMain:        fmt.Sprintf("Targeted critical infrastructure sectors in %s", where),
		OverviewSectors:     fmt.Sprintf("Top targeted sectors in %s", where),
		TypesMain:           fmt.Sprintf("Types of attacks and techniques targeting %s", where),
		TypesAggregate:      fmt.Sprintf("Top attack types by sector in %s", where),
		TypesImpact:         fmt.Sprintf("Types of MITRE impact in %s", where),
		TypesTechniques:     fmt.Sprintf("MITRE Initial Access techniques used in attacks against %s", where),
		InitiatorsMain:      fmt.Sprintf("Top initiators of cyberattacks in %s", where),
		InitiatorsAggregate: fmt.Sprintf("Type of initiators by country of origin targeting %s", where),
		InitiatorsTable:     fmt.Sprintf("Top threat actors targeting %s", where),
		InitiatorsConflicts: fmt.Sprintf("Number of cyberattacks linked to offline conflicts in %s", where),
	}
}

// TimelineTitle matches the evolution chart heading for the current mode.
func TimelineTitle(geography string, cumulative bool) string {
	where := GeographyLabel(geography)
	if cumulative {
		return fmt.Sprintf("Cumulative number of attacks disclosed since Jan 2023 in %s", where)
	}
	return fmt.Sprintf("Rolling average number of attacks disclosed since Jan 2023 in %s", where)
}

// ConflictSectorsTitle names the conflict sector breakdown for the current
// conflict selection.
func ConflictSectorsTitle(geography, conflict string) string {
	where := GeographyLabel(geography)
	if conflict == "" {
		return fmt.Sprintf("Sectors targeted by cyber attacks linked to offline conflicts in %s", where)
	}
	return fmt.Sprintf("Sectors targeted by cyber attacks linked to the %s offline conflict in %s", conflict, where)
}

// Totals summarizes the current selection for the headline counters.
type Totals struct {
	Incidents int `json:"incidents"`
	Sectors   int `json:"sectors"`
	Actors    int `json:"actors"`
	Countries int `json:"countries"`
	Conflicts int `json:"conflicts"`
}

// BuildTotals computes the headline counters over the filtered table.
func BuildTotals(t dataset.Table) Totals {
	sectors := make(map[string]struct{})
	actors := make(map[string]struct{})
	countries := make(map[string]struct{})
	conflicts := make(map[string]struct{})
	t.Each(func(r dataset.Row) {
		if !excludedSector(r.ReceiverSubcategory) {
			sectors[r.ReceiverSubcategory] = struct{}{}
		}
		if !sentinelName(r.InitiatorName) {
			actors[r.InitiatorName] = struct{}{}
		}
		if r.ReceiverCountry != "" {
			countries[r.ReceiverCountry] = struct{}{}
		}
		if r.ConflictName != "" && r.ConflictName != dataset.NotAvailable {
			conflicts[r.ConflictName] = struct{}{}
		}
	})
	return Totals{
		Incidents: t.DistinctIncidents(),
		Sectors:   len(sectors),
		Actors:    len(actors),
		Countries: len(countries),
		Conflicts: len(conflicts),
	}
}
