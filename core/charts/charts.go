// Package charts turns filtered fact tables into chart-ready series. Every
// builder is a pure function of the table and the current cross-filter state.
package charts

import (
	"sort"

	"citracker/core/dataset"
)

// Chart kinds understood by the frontend.
const (
	KindBar      = "bar"
	KindStacked  = "stacked-bar"
	KindLine     = "line"
	KindPie      = "pie"
	KindSunburst = "sunburst"
)

// Point is one mark. Category/SubCategory carry the mark's click identity so
// the client never has to parse it back out of hover text.
type Point struct {
	Label       string  `json:"label"`
	Value       float64 `json:"value"`
	Count       int     `json:"count,omitempty"`
	Text        string  `json:"text,omitempty"`
	Color       string  `json:"color,omitempty"`
	LineColor   string  `json:"lineColor,omitempty"`
	Category    string  `json:"category,omitempty"`
	SubCategory string  `json:"subCategory,omitempty"`
}

// Series is one trace.
type Series struct {
	Name   string  `json:"name,omitempty"`
	Color  string  `json:"color,omitempty"`
	Dash   string  `json:"dash,omitempty"`
	Axis   string  `json:"axis,omitempty"`
	Points []Point `json:"points"`
}

// Chart is the wire shape for one figure. Empty signals "no incidents
// corresponding to your selection" so the client can render its placeholder.
type Chart struct {
	Kind          string   `json:"kind"`
	Title         string   `json:"title,omitempty"`
	XTitle        string   `json:"xTitle,omitempty"`
	YTitle        string   `json:"yTitle,omitempty"`
	Stacked       bool     `json:"stacked,omitempty"`
	CategoryOrder []string `json:"categoryOrder,omitempty"`
	Series        []Series `json:"series"`
	Empty         bool     `json:"empty,omitempty"`
}

func emptyChart(kind string) Chart {
	return Chart{Kind: kind, Empty: true}
}

// incidentSet tracks distinct incident ids per group key.
type incidentSet map[string]map[int64]struct{}

func (s incidentSet) add(key string, id int64) {
	set, ok := s[key]
	if !ok {
		set = make(map[int64]struct{})
		s[key] = set
	}
	set[id] = struct{}{}
}

// groupDistinct counts distinct incidents per key. Rows where key returns
// false are skipped.
func groupDistinct(t dataset.Table, key func(dataset.Row) (string, bool)) incidentSet {
	groups := make(incidentSet)
	t.Each(func(r dataset.Row) {
		k, ok := key(r)
		if !ok {
			return
		}
		groups.add(k, r.IncidentID)
	})
	return groups
}

type labelCount struct {
	label string
	count int
}

func sortedCounts(groups incidentSet, ascending bool) []labelCount {
	out := make([]labelCount, 0, len(groups))
	for label, set := range groups {
		out = append(out, labelCount{label: label, count: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.count != b.count {
			if ascending {
				return a.count < b.count
			}
			return a.count > b.count
		}
		return a.label < b.label
	})
	return out
}

// excludedSector implements the overview inclusion policy: sentinel sectors
// never appear as top-level bars.
func excludedSector(sector string) bool {
	return sector == dataset.NotAvailable || sector == dataset.Other
}

// foldSector implements the breakdown inclusion policy: sentinel sectors are
// merged into "Other" instead of dropped.
func foldSector(sector string) string {
	if sector == dataset.NotAvailable {
		return dataset.Other
	}
	return sector
}
