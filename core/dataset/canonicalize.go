package dataset

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// intelligenceLabels maps original long-form intelligence-impact codings to
// their short display labels.
var intelligenceLabels = map[string]string{
	"No data breach/exfiltration or data corruption (deletion/altering) and/or leaking of data":                                                                                       "No data breach/corruption/leak",
	"Minor data breach/exfiltration (no critical/sensitive information), but no data corruption (deletion/altering) or leaking of data  ":                                             "Minor data breach",
	"Minor data breach/exfiltration (no critical/sensitive information), data corruption (deletion/altering) and/or leaking of data  ":                                                "Moderate data breach",
	"Data corruption (deletion/altering) but no leaking of data, no data breach/exfiltration OR major data breach / exfiltration, but no data corruption and/or leaking of data":      "Significant data breach",
	"Major data breach/exfiltration (critical/sensitive information) & data corruption (deletion/altering) and/or leaking of data ":                                                   "Major data breach",
	"Not available": "Unknown",
}

// intelligenceText maps short labels to the longer description shown on
// hover. Line breaks use <br> because the consumer renders HTML tooltips.
var intelligenceText = map[string]string{
	"No data breach/corruption/leak": "No data breach/exfiltration, data corruption<br>nor leaking of data",
	"Minor data breach":              "Data breach/exfiltration of non-critical/sensitive information<br>but no data corruption nor leaking of data",
	"Moderate data breach":           "Data breach/exfiltration of non-critical/sensitive information<br>and data corruption or leaking of data",
	"Significant data breach":        "Data corruption but no leaking of data<br>nor data breach/exfiltration<br>OR major data breach/exfiltration<br>but no data corruption nor leaking of data",
	"Major data breach":              "Data breach/exfiltration of critical/sensitive information<br>& data corruption or leaking of data",
	"Unknown":                        "Unknown intelligence impact",
}

var countryRenames = map[string]string{
	"Iran, Islamic Republic of":              "Iran",
	"Korea, Democratic People's Republic of": "North Korea",
}

// CarveOut drops receiver rows for one country that the upstream regional
// classification mislabels after a given date.
type CarveOut struct {
	Enabled bool
	Country string
	Region  string
	After   time.Time
}

// CountryCoder resolves a country name to a 2-letter code. Satisfied by the
// geo package.
type CountryCoder func(name string) string

// Canonicalizer turns raw joined fact rows into the canonical table. It runs
// its stages in a fixed order; the initiator identity stage is internally
// sequential and each stage leaves the table in a state where re-running the
// whole pipeline changes nothing.
type Canonicalizer struct {
	carve  CarveOut
	alpha2 CountryCoder
}

func NewCanonicalizer(carve CarveOut, alpha2 CountryCoder) *Canonicalizer {
	return &Canonicalizer{carve: carve, alpha2: alpha2}
}

// Run executes the pipeline. The input slice is consumed and must not be
// reused by the caller.
func (c *Canonicalizer) Run(rows []Row) Table {
	rows = dropUnusable(rows)
	rows = resolveSettled(rows)
	rows = remapImpactLabels(rows)
	rows = applyCarveOut(rows, c.carve)
	rows = resolveInitiatorIdentity(rows)
	rows = truncateNames(rows)
	rows = clampAttackTypes(rows)
	rows = coerceIntensity(rows)
	rows = attachMostCommon(rows)
	rows = joinCountryCodes(rows, c.alpha2)
	return NewTable(rows)
}

// dropUnusable removes join artifacts: rows without an incident id or a
// receiver sector. No error is raised; the pipeline is total over its input.
func dropUnusable(rows []Row) []Row {
	out := rows[:0]
	for _, r := range rows {
		if r.IncidentID == 0 || r.ReceiverSubcategory == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// resolveSettled handles the data-entry convention where an incident whose
// initiator records are uniformly unsettled means "defaults to settled on
// resolution": if every raw settled flag for an incident is false, promote
// them all to true. Rows still false afterwards are dropped, and the
// promotion can fan duplicate rows together, so the result is deduplicated.
func resolveSettled(rows []Row) []Row {
	anySettled := make(map[int64]bool, len(rows))
	for _, r := range rows {
		if r.SettledInitiator {
			anySettled[r.IncidentID] = true
		}
	}

	out := rows[:0]
	seen := make(map[Row]struct{}, len(rows))
	for _, r := range rows {
		if !anySettled[r.IncidentID] {
			r.SettledInitiator = true
		}
		if !r.SettledInitiator {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func remapImpactLabels(rows []Row) []Row {
	for i := range rows {
		r := &rows[i]
		if short, ok := intelligenceLabels[r.IntelligenceImpact]; ok {
			r.IntelligenceImpact = short
		}
		if r.IntelligenceImpact == "" {
			r.IntelligenceImpact = Unknown
		}
		r.IntelligenceImpactText = intelligenceText[r.IntelligenceImpact]
		if r.FunctionalImpact == NotAvailable || r.FunctionalImpact == "" {
			r.FunctionalImpact = Unknown
		}
		if r.Impact == NotAvailable || r.Impact == "" {
			r.Impact = Unknown
		}
	}
	return rows
}

func applyCarveOut(rows []Row, carve CarveOut) []Row {
	if !carve.Enabled || carve.After.IsZero() {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if r.ReceiverCountry == carve.Country && r.RegionName == carve.Region && r.StartDate.After(carve.After) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sentinel sets for the identity resolution below. Empty strings stand in for
// source nulls.
func nameAbsent(s string) bool {
	switch s {
	case "", "None", NotAvailable, Unknown:
		return true
	}
	return false
}

func countryAbsent(s string) bool {
	switch s {
	case "", Unknown, NotAvailable:
		return true
	}
	return false
}

func categoryAbsent(s string) bool {
	switch s {
	case "", "Unknown - not attributed", NotAvailable, Unknown:
		return true
	}
	return false
}

// resolveInitiatorIdentity backfills missing initiator identity with
// consistent sentinels. The rules are sequential: each reads the values the
// previous rules already rewrote, never the raw input, so they must not be
// reordered or collapsed.
func resolveInitiatorIdentity(rows []Row) []Row {
	for i := range rows {
		r := &rows[i]

		// All three signals absent: attribution failed outright.
		if nameAbsent(r.InitiatorName) && countryAbsent(r.InitiatorCountry) && categoryAbsent(r.InitiatorCategory) {
			r.InitiatorCountry = NotAttributed
		}

		if r.InitiatorCountry == NotAttributed {
			r.InitiatorCategory = NotAttributed
		}

		if r.InitiatorCategory == "Unknown - not attributed" {
			r.InitiatorCategory = Unknown
		}
		if r.InitiatorCountry == NotAvailable {
			r.InitiatorCountry = Unknown
		}

		// A known name survives even when country/category are unknown;
		// only a fully unattributed row forces the name down.
		if r.InitiatorCountry == NotAttributed {
			r.InitiatorName = NotAttributed
		} else if r.InitiatorName == NotAvailable || r.InitiatorName == "" || r.InitiatorName == "None" {
			r.InitiatorName = Unknown
		}

		if r.InitiatorCategory == "Non-state actor, state-affiliation suggested" {
			r.InitiatorCategory = "State affiliated actor"
		}

		if r.InitiatorCountry == Unknown && r.InitiatorName == Unknown && r.InitiatorCategory == NotAvailable {
			r.InitiatorCategory = NotAttributed
		}
		if r.InitiatorCategory == NotAvailable {
			r.InitiatorCategory = Unknown
		}
		if r.InitiatorCategory == "" {
			r.InitiatorCategory = NotAttributed
		}
		if r.InitiatorCountry == "" {
			r.InitiatorCountry = NotAttributed
		}

		// Close the loop: a row that resolved to Unknown/Unknown with a
		// Not attributed category is indistinguishable from full-unknown,
		// so the country follows.
		if r.InitiatorCountry == Unknown && r.InitiatorName == Unknown && r.InitiatorCategory == NotAttributed {
			r.InitiatorCountry = NotAttributed
		}

		if display, ok := countryRenames[r.InitiatorCountry]; ok {
			r.InitiatorCountry = display
		}
	}
	return rows
}

var nameTruncate = regexp.MustCompile(`^([^/]*/[^/]*)/.*$`)

// truncateNames shortens multi-segment alias chains ("APT28/Fancy Bear/...")
// to their first two segments.
func truncateNames(rows []Row) []Row {
	for i := range rows {
		if m := nameTruncate.FindStringSubmatch(rows[i].InitiatorName); m != nil {
			rows[i].InitiatorName = m[1]
		}
	}
	return rows
}

func clampAttackTypes(rows []Row) []Row {
	allowed := make(map[string]struct{}, len(AttackTypes))
	for _, t := range AttackTypes {
		allowed[t] = struct{}{}
	}
	for i := range rows {
		if _, ok := allowed[rows[i].TypeClean]; !ok {
			rows[i].TypeClean = Other
		}
	}
	return rows
}

func coerceIntensity(rows []Row) []Row {
	for i := range rows {
		r := &rows[i]
		f, err := strconv.ParseFloat(strings.TrimSpace(r.RawIntensity), 64)
		if err != nil {
			r.WeightedIntensity = 0
			r.HasIntensity = false
			continue
		}
		r.WeightedIntensity = f
		r.HasIntensity = true
	}
	return rows
}

type modeKey struct {
	incident int64
	name     string
	value    string
}

// attachMostCommon computes, per initiator name, the modal attack type,
// initial-access technique, country and category over deduplicated
// (incident, name, value) triples, then joins the result back onto every row
// for that name. Mode ties break toward the value first seen in row order.
func attachMostCommon(rows []Row) []Row {
	type accessor struct {
		get func(*Row) string
		set func(*Row, string)
		// excludeNA drops "Not available" observations before the mode.
		excludeNA bool
		// fallback is used when a name has no observations left.
		fallback string
	}
	features := []accessor{
		{get: func(r *Row) string { return r.TypeClean }, set: func(r *Row, v string) { r.TypeCleanMostCommon = v }, fallback: NotAvailable},
		{get: func(r *Row) string { return r.InitialAccess }, set: func(r *Row, v string) { r.InitialAccessMostCommon = v }, excludeNA: true, fallback: Unknown},
		{get: func(r *Row) string { return r.InitiatorCountry }, set: func(r *Row, v string) { r.InitiatorCountryMostCommon = v }, fallback: NotAvailable},
		{get: func(r *Row) string { return r.InitiatorCategory }, set: func(r *Row, v string) { r.InitiatorCategoryMostCommon = v }, fallback: NotAvailable},
	}

	for _, f := range features {
		counts := make(map[string]map[string]int)
		first := make(map[string][]string) // insertion order of values per name
		seen := make(map[modeKey]struct{})

		for i := range rows {
			v := f.get(&rows[i])
			// Empty strings are source nulls and never mode candidates.
			if v == "" || (f.excludeNA && v == NotAvailable) {
				continue
			}
			k := modeKey{incident: rows[i].IncidentID, name: rows[i].InitiatorName, value: v}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			if counts[k.name] == nil {
				counts[k.name] = make(map[string]int)
			}
			if counts[k.name][v] == 0 {
				first[k.name] = append(first[k.name], v)
			}
			counts[k.name][v]++
		}

		modes := make(map[string]string, len(counts))
		for name, byValue := range counts {
			best, bestN := "", -1
			for _, v := range first[name] {
				if byValue[v] > bestN {
					best, bestN = v, byValue[v]
				}
			}
			modes[name] = best
		}

		for i := range rows {
			v, ok := modes[rows[i].InitiatorName]
			if !ok {
				v = f.fallback
			}
			f.set(&rows[i], v)
		}
	}
	return rows
}

func joinCountryCodes(rows []Row, alpha2 CountryCoder) []Row {
	for i := range rows {
		rows[i].Alpha2Code = alpha2(rows[i].InitiatorCountryMostCommon)
	}
	return rows
}
