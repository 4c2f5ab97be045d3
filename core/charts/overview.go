package charts

import (
	"fmt"
	"sort"
	"time"

	"citracker/core/crossfilter"
	"citracker/core/dataset"
)

// SectorTotals builds the horizontal top-sectors bar. Sentinel sectors are
// excluded outright here; selected bars get the highlight colors.
func SectorTotals(t dataset.Table, selected crossfilter.Multi) Chart {
	groups := groupDistinct(t, func(r dataset.Row) (string, bool) {
		if excludedSector(r.ReceiverSubcategory) {
			return "", false
		}
		return r.ReceiverSubcategory, true
	})
	if len(groups) == 0 {
		return emptyChart(KindBar)
	}

	points := make([]Point, 0, len(groups))
	for _, lc := range sortedCounts(groups, true) {
		p := Point{
			Label:     lc.label,
			Value:     float64(lc.count),
			Count:     lc.count,
			Category:  lc.label,
			Color:     barFill,
			LineColor: barLine,
		}
		if selected.Contains(crossfilter.Element{Category: lc.label}) {
			p.Color = highlightFill
			p.LineColor = highlightLine
		}
		points = append(points, p)
	}
	return Chart{
		Kind:   KindBar,
		YTitle: "Number of operations",
		Series: []Series{{Points: points}},
	}
}

type dayBucket struct {
	day        time.Time
	incidents  map[int64]struct{}
	intensity  float64
	intensityN int
}

// timelineBuckets groups by the added_to_db day, skipping rows without one.
func timelineBuckets(t dataset.Table, notBefore time.Time) []*dayBucket {
	byDay := make(map[time.Time]*dayBucket)
	t.Each(func(r dataset.Row) {
		if r.AddedToDB.IsZero() {
			return
		}
		day := r.AddedToDB.Truncate(24 * time.Hour)
		if !notBefore.IsZero() && day.Before(notBefore) {
			return
		}
		b, ok := byDay[day]
		if !ok {
			b = &dayBucket{day: day, incidents: make(map[int64]struct{})}
			byDay[day] = b
		}
		b.incidents[r.IncidentID] = struct{}{}
		if r.HasIntensity {
			b.intensity += r.WeightedIntensity
			b.intensityN++
		}
	})
	out := make([]*dayBucket, 0, len(byDay))
	for _, b := range byDay {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].day.Before(out[j].day) })
	return out
}

const rollingWindow = 30

// rollingSeries emits the trailing-window mean of daily distinct counts and
// daily mean intensity. The window is over observed days, matching a rolling
// mean with a one-observation minimum.
func rollingSeries(buckets []*dayBucket, name, color string) (Series, Series) {
	counts := Series{Name: name, Color: color}
	intensity := Series{Name: "Intensity", Color: color, Dash: "dot", Axis: "y2"}

	for i, b := range buckets {
		lo := i - rollingWindow + 1
		if lo < 0 {
			lo = 0
		}
		countSum, intSum := 0.0, 0.0
		intN := 0
		for _, w := range buckets[lo : i+1] {
			countSum += float64(len(w.incidents))
			if w.intensityN > 0 {
				intSum += w.intensity / float64(w.intensityN)
				intN++
			}
		}
		label := b.day.Format("2006-01-02")
		counts.Points = append(counts.Points, Point{
			Label: label,
			Value: countSum / float64(i-lo+1),
			Count: len(b.incidents),
		})
		if intN > 0 {
			intensity.Points = append(intensity.Points, Point{
				Label: label,
				Value: intSum / float64(intN),
			})
		}
	}
	return counts, intensity
}

// cumulativeSeries emits the running monthly total of distinct incidents and
// the monthly mean intensity.
func cumulativeSeries(buckets []*dayBucket, name, color string) (Series, Series) {
	type month struct {
		label      string
		count      int
		intensity  float64
		intensityN int
	}
	var months []month
	idx := make(map[string]int)
	for _, b := range buckets {
		label := b.day.Format("2006-01")
		i, ok := idx[label]
		if !ok {
			i = len(months)
			idx[label] = i
			months = append(months, month{label: label})
		}
		months[i].count += len(b.incidents)
		if b.intensityN > 0 {
			months[i].intensity += b.intensity
			months[i].intensityN += b.intensityN
		}
	}

	counts := Series{Name: name, Color: color}
	intensity := Series{Name: "Intensity", Color: color, Dash: "dot", Axis: "y2"}
	running := 0
	for _, m := range months {
		running += m.count
		counts.Points = append(counts.Points, Point{Label: m.label, Value: float64(running), Count: m.count})
		if m.intensityN > 0 {
			intensity.Points = append(intensity.Points, Point{Label: m.label, Value: m.intensity / float64(m.intensityN)})
		}
	}
	return counts, intensity
}

// Timeline builds the evolution chart. With sectors selected in the overview
// it emits one count/intensity pair per sector, otherwise a single pair over
// everything. Rolling mode is restricted to records added after cutover,
// reflecting the coding methodology change at that date.
func Timeline(t dataset.Table, selected crossfilter.Multi, cumulative bool, cutover time.Time) Chart {
	filtered := t.Filter(func(r dataset.Row) bool {
		return !excludedSector(r.ReceiverSubcategory)
	})
	if filtered.Len() == 0 {
		return emptyChart(KindLine)
	}

	build := func(sub dataset.Table, name, color string) (Series, Series) {
		if cumulative {
			return cumulativeSeries(timelineBuckets(sub, time.Time{}), name, color)
		}
		return rollingSeries(timelineBuckets(sub, cutover), name, color)
	}

	yTitle := fmt.Sprintf("Rolling average over %d days", rollingWindow)
	if cumulative {
		yTitle = "Cumulative count"
	}
	chart := Chart{Kind: KindLine, YTitle: yTitle}

	if selected.Active() {
		for _, el := range selected.Elements {
			sub := filtered.Filter(func(r dataset.Row) bool {
				return r.ReceiverSubcategory == el.Category
			})
			counts, intensity := build(sub, el.Category, sectorColor(el.Category))
			chart.Series = append(chart.Series, counts, intensity)
		}
	} else {
		counts, intensity := build(filtered, "All sectors", allSectorsColor)
		chart.Series = append(chart.Series, counts, intensity)
	}
	return chart
}

// SubtypeBreakdown builds the sector/subtype sunburst from the secondary
// organization-type table.
func SubtypeBreakdown(rows []dataset.SubtypeRow) Chart {
	type key struct{ sector, subtype string }
	groups := make(map[key]map[int64]struct{})
	for _, r := range rows {
		if excludedSector(r.ReceiverSubcategory) || r.CISubtype == "" {
			continue
		}
		k := key{sector: r.ReceiverSubcategory, subtype: r.CISubtype}
		if groups[k] == nil {
			groups[k] = make(map[int64]struct{})
		}
		groups[k][r.IncidentID] = struct{}{}
	}
	if len(groups) == 0 {
		return emptyChart(KindSunburst)
	}

	bySector := make(map[string][]Point)
	for k, set := range groups {
		bySector[k.sector] = append(bySector[k.sector], Point{
			Label:       k.subtype,
			Value:       float64(len(set)),
			Count:       len(set),
			Category:    k.sector,
			SubCategory: k.subtype,
		})
	}

	sectors := make([]string, 0, len(bySector))
	for sector := range bySector {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	chart := Chart{Kind: KindSunburst}
	for _, sector := range sectors {
		points := bySector[sector]
		sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
		chart.Series = append(chart.Series, Series{
			Name:   sector,
			Color:  sectorColor(sector),
			Points: points,
		})
	}
	return chart
}
