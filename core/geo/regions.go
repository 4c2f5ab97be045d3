package geo

import "sort"

// SelectorGlobal is the geography selector meaning "no geography filter".
const SelectorGlobal = "Global (states)"

// regionSelectors maps the labels offered by the geography selector to the
// region codes carried on canonical rows. Labels absent from this map are
// treated as single-country selections by the filter.
var regionSelectors = map[string]string{
	"Africa (states)":                            "AFRICA",
	"Asia (states)":                              "ASIA",
	"Central America (states)":                   "CENTAM",
	"Central Asia (states)":                      "CENTAS",
	"Collective Security Treaty Organization (states)": "CSTO",
	"EU (member states)":                         "EU",
	"Eastern Asia (states)":                      "EASIA",
	"Europe (states)":                            "EUROPE",
	"Gulf Countries (states)":                    "GULFC",
	"Mena Region (states)":                       "MENA",
	"Middle East (states)":                       "MEA",
	"NATO (member states)":                       "NATO",
	"North Africa (states)":                      "NAF",
	"Northeast Asia (states)":                    "NEA",
	"Oceania (states)":                           "OC",
	"Shanghai Cooperation Organisation (states)": "SCO",
	"South Asia (states)":                        "SASIA",
	"South China Sea (states)":                   "SCS",
	"Southeast Asia (states)":                    "SEA",
	"Sub-Saharan Africa (states)":                "SSA",
	"Western Balkans (states)":                   "WBALKANS",
}

// RegionCode resolves a geography selector label to a region code.
func RegionCode(label string) (string, bool) {
	code, ok := regionSelectors[label]
	return code, ok
}

// IsRegionSelector reports whether the label names a multi-country region
// (or the global sentinel) rather than a single country.
func IsRegionSelector(label string) bool {
	if label == SelectorGlobal {
		return true
	}
	_, ok := regionSelectors[label]
	return ok
}

// SelectorLabels returns the full selector vocabulary for the control surface,
// global sentinel first, regions alphabetical.
func SelectorLabels() []string {
	labels := make([]string, 0, len(regionSelectors))
	for label := range regionSelectors {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return append([]string{SelectorGlobal}, labels...)
}
