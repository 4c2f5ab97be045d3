package dataset

import "time"

// Sentinel category values standing in for missing or unresolvable data.
const (
	NotAvailable  = "Not available"
	NotAttributed = "Not attributed"
	Unknown       = "Unknown"
	Other         = "Other"
)

// AttackTypes is the fixed allow-list for type_clean. Values outside it are
// collapsed to "Other" during canonicalization; nothing else may reach the
// aggregation builders.
var AttackTypes = []string{
	"Data theft",
	"DDoS/Defacement",
	"Ransomware",
	"Wiper",
	"Hack and leak",
	"Other",
}

// InitiatorCategories in severity-neutral display order.
var InitiatorCategories = []string{
	"State",
	"State affiliated actor",
	"Non-state-group",
	"Individual hacker(s)",
	"Not attributed",
	"Unknown",
}

// InitiatorStackOrder is the fixed stacking order for origin charts. It is a
// visual ordering, not a sort of the display order above.
var InitiatorStackOrder = []string{
	"Non-state-group",
	"Individual hacker(s)",
	"State affiliated actor",
	"State",
	"Not attributed",
	"Unknown",
}

// IntelligenceImpactOrder is the severity-ordered axis for the
// intelligence-impact chart. Order is significant; alphabetical sorting would
// scramble the severity scale.
var IntelligenceImpactOrder = []string{
	"No data breach/corruption/leak",
	"Minor data breach",
	"Moderate data breach",
	"Significant data breach",
	"Major data breach",
	"Unknown",
}

// FunctionalImpactOrder is the severity-ordered axis for functional impact.
var FunctionalImpactOrder = []string{
	"No system interference/disruption",
	"Day (< 24h)",
	"Days (< 7 days)",
	"Weeks (< 4 weeks)",
	"Months",
	"Unknown",
}

// Row is one record of the denormalized fact table: one incident joined with
// one receiver, one initiator and one set of impact codings. Incident ids are
// therefore NOT unique per row; counting always means counting distinct
// incident ids.
type Row struct {
	IncidentID int64
	StartDate  time.Time // may be zero when the source left it empty
	AddedToDB  time.Time

	TypeClean string

	ReceiverName        string
	ReceiverCountry     string
	RegionName          string
	ReceiverCategory    string
	ReceiverSubcategory string

	InitiatorName     string
	InitiatorCountry  string
	InitiatorCategory string
	SettledInitiator  bool

	InitialAccess string

	Impact                 string
	FunctionalImpact       string
	IntelligenceImpact     string
	IntelligenceImpactText string

	ConflictName string

	// RawIntensity is the source value verbatim; it is known to contain
	// non-numeric garbage. WeightedIntensity/HasIntensity hold the coerced
	// result — absent values are excluded from means, never treated as zero.
	RawIntensity      string
	WeightedIntensity float64
	HasIntensity      bool

	// Per-initiator modal attributes, joined back onto every row carrying the
	// same initiator name.
	TypeCleanMostCommon         string
	InitialAccessMostCommon     string
	InitiatorCountryMostCommon  string
	InitiatorCategoryMostCommon string

	// Alpha2Code is the ISO code for InitiatorCountryMostCommon, "unknown"
	// when unmapped.
	Alpha2Code string
}

// SubtypeRow is one record of the secondary organization-type table:
// (incident, sector, ci subtype) with receiver geography for filtering.
type SubtypeRow struct {
	IncidentID          int64
	ReceiverSubcategory string
	CISubtype           string
	ReceiverCountry     string
	RegionName          string
}
