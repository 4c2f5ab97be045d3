package charts

import (
	"fmt"
	"sort"

	"citracker/core/crossfilter"
	"citracker/core/dataset"
)

// Actor is one row of the top threat actor table.
type Actor struct {
	Name         string `json:"name"`
	Alpha2       string `json:"alpha2"`
	Category     string `json:"category"`
	TopType      string `json:"topType"`
	TopTechnique string `json:"topTechnique"`
	Total        int    `json:"total"`
}

func sentinelName(name string) bool {
	switch name {
	case dataset.NotAttributed, dataset.Unknown, dataset.NotAvailable:
		return true
	}
	return false
}

func actorScope(t dataset.Table, sector string, year int) dataset.Table {
	return t.Filter(func(r dataset.Row) bool {
		if sector != "" && r.ReceiverSubcategory != sector {
			return false
		}
		if year != 0 && r.StartDate.Year() != year {
			return false
		}
		return true
	})
}

// TopActors returns the five busiest named initiators, with their modal
// attributes, for the given sector ("" for all) and year (0 for all).
func TopActors(t dataset.Table, sector string, year int) []Actor {
	scoped := actorScope(t, sector, year)

	type identity struct {
		name, alpha2, category, topType, topTechnique string
	}
	groups := make(map[identity]map[int64]struct{})
	scoped.Each(func(r dataset.Row) {
		if sentinelName(r.InitiatorName) {
			return
		}
		id := identity{
			name:         r.InitiatorName,
			alpha2:       r.Alpha2Code,
			category:     r.InitiatorCategoryMostCommon,
			topType:      r.TypeCleanMostCommon,
			topTechnique: r.InitialAccessMostCommon,
		}
		if groups[id] == nil {
			groups[id] = make(map[int64]struct{})
		}
		groups[id][r.IncidentID] = struct{}{}
	})

	actors := make([]Actor, 0, len(groups))
	for id, set := range groups {
		actors = append(actors, Actor{
			Name:         id.name,
			Alpha2:       id.alpha2,
			Category:     id.category,
			TopType:      id.topType,
			TopTechnique: id.topTechnique,
			Total:        len(set),
		})
	}
	sort.Slice(actors, func(i, j int) bool {
		if actors[i].Total != actors[j].Total {
			return actors[i].Total > actors[j].Total
		}
		return actors[i].Name < actors[j].Name
	})
	if len(actors) > 5 {
		actors = actors[:5]
	}
	return actors
}

const originTopN = 10

// InitiatorOrigins builds the stacked country-of-origin bar: the ten
// countries with the most attributed incidents, stacked by initiator
// category in the fixed stack order, countries by ascending total for the
// horizontal layout.
func InitiatorOrigins(t dataset.Table, sector string, year int) Chart {
	scoped := actorScope(t, sector, year)
	return originsChart(scoped)
}

func originsChart(t dataset.Table) Chart {
	type key struct{ country, category string }
	groups := make(map[key]map[int64]struct{})
	countryTotals := make(incidentSet)
	t.Each(func(r dataset.Row) {
		k := key{country: r.InitiatorCountry, category: r.InitiatorCategory}
		if groups[k] == nil {
			groups[k] = make(map[int64]struct{})
		}
		groups[k][r.IncidentID] = struct{}{}
		countryTotals.add(r.InitiatorCountry, r.IncidentID)
	})
	if len(groups) == 0 {
		return emptyChart(KindStacked)
	}

	ranked := sortedCounts(countryTotals, false)
	if len(ranked) > originTopN {
		ranked = ranked[:originTopN]
	}
	// Ascending for the bar axis; ranking above picked the top N.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count < ranked[j].count
		}
		return ranked[i].label < ranked[j].label
	})
	countries := make([]string, len(ranked))
	for i, lc := range ranked {
		countries[i] = lc.label
	}

	chart := Chart{Kind: KindStacked, Stacked: true, CategoryOrder: countries}
	for _, category := range dataset.InitiatorStackOrder {
		series := Series{Name: category, Color: InitiatorTypeColors[category]}
		used := false
		for _, country := range countries {
			set := groups[key{country: country, category: category}]
			if len(set) == 0 {
				continue
			}
			used = true
			series.Points = append(series.Points, Point{
				Label:       country,
				Value:       float64(len(set)),
				Count:       len(set),
				Category:    country,
				SubCategory: category,
			})
		}
		if used {
			chart.Series = append(chart.Series, series)
		}
	}
	return chart
}

func conflictRows(t dataset.Table) dataset.Table {
	return t.Filter(func(r dataset.Row) bool {
		return r.ConflictName != dataset.NotAvailable && r.ConflictName != ""
	})
}

// ConflictPie builds the offline-conflict pie. The selected slice carries
// the highlight colors so the client can pull it out.
func ConflictPie(t dataset.Table, selected crossfilter.Single) Chart {
	groups := groupDistinct(conflictRows(t), func(r dataset.Row) (string, bool) {
		return r.ConflictName, true
	})
	if len(groups) == 0 {
		return emptyChart(KindPie)
	}

	points := make([]Point, 0, len(groups))
	for _, lc := range sortedCounts(groups, false) {
		p := Point{
			Label:     lc.label,
			Value:     float64(lc.count),
			Count:     lc.count,
			Category:  lc.label,
			Color:     barFill,
			LineColor: barLine,
		}
		if selected.Active && selected.Element.Category == lc.label {
			p.Color = highlightFill
			p.LineColor = highlightLine
		}
		points = append(points, p)
	}
	return Chart{Kind: KindPie, Series: []Series{{Points: points}}}
}

// ConflictSectors builds the single-row stacked sector share for
// conflict-linked incidents. Percentages are of the conflict subset being
// shown, not of the whole table.
func ConflictSectors(t dataset.Table, conflict crossfilter.Single) Chart {
	scoped := conflictRows(t)
	if conflict.Active {
		scoped = scoped.Filter(func(r dataset.Row) bool {
			return r.ConflictName == conflict.Element.Category
		})
	}
	groups := groupDistinct(scoped, func(r dataset.Row) (string, bool) {
		return foldSector(r.ReceiverSubcategory), true
	})
	if len(groups) == 0 {
		return emptyChart(KindStacked)
	}

	total := 0
	for _, set := range groups {
		total += len(set)
	}

	chart := Chart{Kind: KindStacked, Stacked: true}
	for _, lc := range sortedCounts(groups, false) {
		percent := float64(lc.count) / float64(total) * 100
		chart.Series = append(chart.Series, Series{
			Name:  lc.label,
			Color: sectorColor(lc.label),
			Points: []Point{{
				Label:    lc.label,
				Value:    percent,
				Count:    lc.count,
				Category: lc.label,
				Text:     fmt.Sprintf("%.2f%% (%d)", percent, lc.count),
			}},
		})
	}
	return chart
}

// ConflictInitiators builds the origins bar for conflict-linked incidents,
// narrowed by the selected conflict and the selected sector from the
// breakdown above it.
func ConflictInitiators(t dataset.Table, conflict, sector crossfilter.Single) Chart {
	scoped := conflictRows(t)
	if conflict.Active {
		scoped = scoped.Filter(func(r dataset.Row) bool {
			return r.ConflictName == conflict.Element.Category
		})
	}
	if sector.Active {
		scoped = scoped.Filter(func(r dataset.Row) bool {
			return foldSector(r.ReceiverSubcategory) == sector.Element.Category
		})
	}
	return originsChart(scoped)
}
