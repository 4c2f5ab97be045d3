package charts

import (
	"fmt"
	"sort"

	"citracker/core/crossfilter"
	"citracker/core/dataset"
)

// TypesBySector builds the percent-stacked attack-type chart. Percentages
// are computed within each sector; hover text still carries the absolute
// count. Sentinel sectors fold into "Other" here. A selected (sector, type)
// segment keeps its full color while everything else dims.
func TypesBySector(t dataset.Table, selected crossfilter.Single) Chart {
	type key struct{ sector, attackType string }
	groups := make(map[key]map[int64]struct{})
	t.Each(func(r dataset.Row) {
		sector := foldSector(r.ReceiverSubcategory)
		k := key{sector: sector, attackType: r.TypeClean}
		if groups[k] == nil {
			groups[k] = make(map[int64]struct{})
		}
		groups[k][r.IncidentID] = struct{}{}
	})
	if len(groups) == 0 {
		return emptyChart(KindStacked)
	}

	// The percentage denominator is the sum of per-type distinct counts, not
	// distinct incidents per sector: an incident coded with two attack types
	// contributes to both segments and each stack must still sum to 100%.
	totals := make(map[string]int, len(groups))
	for k, set := range groups {
		totals[k.sector] += len(set)
	}

	// Sector axis runs by ascending total for the horizontal layout.
	sectorOrder := make([]string, 0, len(totals))
	for sector := range totals {
		sectorOrder = append(sectorOrder, sector)
	}
	sort.Slice(sectorOrder, func(i, j int) bool {
		a, b := sectorOrder[i], sectorOrder[j]
		if totals[a] != totals[b] {
			return totals[a] < totals[b]
		}
		return a < b
	})

	chart := Chart{
		Kind:          KindStacked,
		XTitle:        "Percentage",
		Stacked:       true,
		CategoryOrder: sectorOrder,
	}
	for _, attackType := range dataset.AttackTypes {
		series := Series{Name: attackType, Color: AttackTypeColors[attackType]}
		used := false
		for _, sector := range sectorOrder {
			set := groups[key{sector: sector, attackType: attackType}]
			if len(set) > 0 {
				used = true
			}
			total := totals[sector]
			percent := 0.0
			if total > 0 {
				percent = float64(len(set)) / float64(total) * 100
			}
			p := Point{
				Label:       sector,
				Value:       percent,
				Count:       len(set),
				Category:    sector,
				SubCategory: attackType,
				Text:        fmt.Sprintf("Type: %s<br>Sector: %s<br>%.2f%% (%d)", attackType, sector, percent, len(set)),
				Color:       AttackTypeColors[attackType],
			}
			if selected.Active {
				el := crossfilter.Element{Category: sector, SubCategory: attackType}
				if selected.Element != el {
					p.Color = AttackTypeColorsDim[attackType]
				}
			}
			series.Points = append(series.Points, p)
		}
		if used {
			chart.Series = append(chart.Series, series)
		}
	}
	return chart
}

// stackFilter narrows t to the selected (sector, type) pair, if any. The
// sector identity uses the folded label the stacked chart displayed.
func stackFilter(t dataset.Table, stack crossfilter.Single) dataset.Table {
	if !stack.Active {
		return t
	}
	return t.Filter(func(r dataset.Row) bool {
		return foldSector(r.ReceiverSubcategory) == stack.Element.Category &&
			r.TypeClean == stack.Element.SubCategory
	})
}

// ImpactBreakdown builds the MITRE impact drill-down, narrowed to the
// selected stack segment when one is active. Sorted by count descending.
func ImpactBreakdown(t dataset.Table, stack crossfilter.Single) Chart {
	narrowed := stackFilter(t, stack)
	groups := groupDistinct(narrowed, func(r dataset.Row) (string, bool) {
		return r.Impact, r.Impact != ""
	})
	if len(groups) == 0 {
		return emptyChart(KindBar)
	}

	points := make([]Point, 0, len(groups))
	for _, lc := range sortedCounts(groups, false) {
		points = append(points, Point{
			Label:     lc.label,
			Value:     float64(lc.count),
			Count:     lc.count,
			Category:  lc.label,
			Color:     barFill,
			LineColor: barLine,
		})
	}
	return Chart{Kind: KindBar, YTitle: "Number of incidents", Series: []Series{{Points: points}}}
}

// impactDrill narrows t by the stack pair and/or the selected impact bar,
// mirroring the chained click behavior of the drill-down charts.
func impactDrill(t dataset.Table, stack, impact crossfilter.Single) dataset.Table {
	narrowed := stackFilter(t, stack)
	if !impact.Active {
		return narrowed
	}
	return narrowed.Filter(func(r dataset.Row) bool {
		return r.Impact == impact.Element.Category
	})
}

// IntelligenceImpact builds the intelligence-impact bar over its fixed
// severity axis.
func IntelligenceImpact(t dataset.Table, stack, impact crossfilter.Single) Chart {
	narrowed := impactDrill(t, stack, impact)

	texts := make(map[string]string)
	groups := groupDistinct(narrowed, func(r dataset.Row) (string, bool) {
		if r.IntelligenceImpact == "" {
			return "", false
		}
		texts[r.IntelligenceImpact] = r.IntelligenceImpactText
		return r.IntelligenceImpact, true
	})
	if len(groups) == 0 {
		return emptyChart(KindBar)
	}

	points := make([]Point, 0, len(groups))
	for label, set := range groups {
		points = append(points, Point{
			Label:     label,
			Value:     float64(len(set)),
			Count:     len(set),
			Category:  label,
			Text:      texts[label],
			Color:     intelligenceFill,
			LineColor: intelligenceLine,
		})
	}
	sortByAxis(points, dataset.IntelligenceImpactOrder)
	return Chart{
		Kind:          KindBar,
		CategoryOrder: dataset.IntelligenceImpactOrder,
		Series:        []Series{{Points: points}},
	}
}

// FunctionalImpact builds the functional-impact bar over its fixed duration
// axis.
func FunctionalImpact(t dataset.Table, stack, impact crossfilter.Single) Chart {
	narrowed := impactDrill(t, stack, impact)
	groups := groupDistinct(narrowed, func(r dataset.Row) (string, bool) {
		return r.FunctionalImpact, r.FunctionalImpact != ""
	})
	if len(groups) == 0 {
		return emptyChart(KindBar)
	}

	points := make([]Point, 0, len(groups))
	for label, set := range groups {
		points = append(points, Point{
			Label:     label,
			Value:     float64(len(set)),
			Count:     len(set),
			Category:  label,
			Color:     functionalFill,
			LineColor: functionalLine,
		})
	}
	sortByAxis(points, dataset.FunctionalImpactOrder)
	return Chart{
		Kind:          KindBar,
		CategoryOrder: dataset.FunctionalImpactOrder,
		Series:        []Series{{Points: points}},
	}
}

// sortByAxis orders points by their position on a fixed categorical axis.
// Labels off the axis sort last, alphabetically.
func sortByAxis(points []Point, axis []string) {
	rank := make(map[string]int, len(axis))
	for i, label := range axis {
		rank[label] = i
	}
	sort.Slice(points, func(i, j int) bool {
		ri, iOK := rank[points[i].Label]
		rj, jOK := rank[points[j].Label]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		}
		return points[i].Label < points[j].Label
	})
}

// AllSectorsOption and AllTypesOption are the dropdown sentinels for the
// techniques chart.
const (
	AllSectorsOption = "all"
	AllTypesOption   = "all"
)

// Techniques builds the MITRE initial-access bar, optionally narrowed to one
// sector and/or one attack type. "Not available" techniques are dropped.
func Techniques(t dataset.Table, sector, attackType string) Chart {
	groups := groupDistinct(t, func(r dataset.Row) (string, bool) {
		if sector != AllSectorsOption && r.ReceiverSubcategory != sector {
			return "", false
		}
		if attackType != AllTypesOption && r.TypeClean != attackType {
			return "", false
		}
		if r.InitialAccess == dataset.NotAvailable || r.InitialAccess == "" {
			return "", false
		}
		return r.InitialAccess, true
	})
	if len(groups) == 0 {
		return emptyChart(KindBar)
	}

	points := make([]Point, 0, len(groups))
	for _, lc := range sortedCounts(groups, false) {
		points = append(points, Point{
			Label:     lc.label,
			Value:     float64(lc.count),
			Count:     lc.count,
			Category:  lc.label,
			Color:     barFill,
			LineColor: barLine,
		})
	}
	return Chart{Kind: KindBar, YTitle: "Number of incidents", Series: []Series{{Points: points}}}
}
