package geo

// Alpha2Unknown is returned for countries with no ISO mapping; the flag asset
// set ships an "unknown" placeholder under that name.
const Alpha2Unknown = "unknown"

// alpha2 maps country names to ISO 3166-1 alpha-2 codes. It carries both the
// formal ISO names and the display names the dashboard uses (Iran, North
// Korea), so the lookup stays total after display renaming.
var alpha2 = map[string]string{
	"Afghanistan":          "af",
	"Algeria":              "dz",
	"Argentina":            "ar",
	"Armenia":              "am",
	"Australia":            "au",
	"Austria":              "at",
	"Azerbaijan":           "az",
	"Bangladesh":           "bd",
	"Belarus":              "by",
	"Belgium":              "be",
	"Brazil":               "br",
	"Bulgaria":             "bg",
	"Canada":               "ca",
	"Chile":                "cl",
	"China":                "cn",
	"Colombia":             "co",
	"Croatia":              "hr",
	"Cuba":                 "cu",
	"Czech Republic":       "cz",
	"Czechia":              "cz",
	"Denmark":              "dk",
	"Egypt":                "eg",
	"Estonia":              "ee",
	"Finland":              "fi",
	"France":               "fr",
	"Georgia":              "ge",
	"Germany":              "de",
	"Greece":               "gr",
	"Hungary":              "hu",
	"India":                "in",
	"Indonesia":            "id",
	"Iran":                 "ir",
	"Iran, Islamic Republic of": "ir",
	"Iraq":                 "iq",
	"Ireland":              "ie",
	"Israel":               "il",
	"Italy":                "it",
	"Japan":                "jp",
	"Jordan":               "jo",
	"Kazakhstan":           "kz",
	"Kenya":                "ke",
	"Korea, Democratic People's Republic of": "kp",
	"Korea, Republic of":   "kr",
	"Kuwait":               "kw",
	"Latvia":               "lv",
	"Lebanon":              "lb",
	"Lithuania":            "lt",
	"Malaysia":             "my",
	"Mexico":               "mx",
	"Moldova, Republic of": "md",
	"Morocco":              "ma",
	"Myanmar":              "mm",
	"Netherlands":          "nl",
	"New Zealand":          "nz",
	"Nigeria":              "ng",
	"North Korea":          "kp",
	"Norway":               "no",
	"Pakistan":             "pk",
	"Palestine, State of":  "ps",
	"Philippines":          "ph",
	"Poland":               "pl",
	"Portugal":             "pt",
	"Qatar":                "qa",
	"Romania":              "ro",
	"Russia":               "ru",
	"Russian Federation":   "ru",
	"Saudi Arabia":         "sa",
	"Serbia":               "rs",
	"Singapore":            "sg",
	"Slovakia":             "sk",
	"Slovenia":             "si",
	"South Africa":         "za",
	"South Korea":          "kr",
	"Spain":                "es",
	"Sweden":               "se",
	"Switzerland":          "ch",
	"Syrian Arab Republic": "sy",
	"Taiwan":               "tw",
	"Thailand":             "th",
	"Tunisia":              "tn",
	"Turkey":               "tr",
	"Türkiye":              "tr",
	"Ukraine":              "ua",
	"United Arab Emirates": "ae",
	"United Kingdom":       "gb",
	"United States":        "us",
	"United States of America": "us",
	"Uzbekistan":           "uz",
	"Venezuela, Bolivarian Republic of": "ve",
	"Viet Nam":             "vn",
	"Vietnam":              "vn",
	"Yemen":                "ye",
}

// Alpha2 resolves a country name to its lowercase ISO alpha-2 code, falling
// back to the Alpha2Unknown sentinel for unmapped names.
func Alpha2(countryName string) string {
	if code, ok := alpha2[countryName]; ok {
		return code
	}
	return Alpha2Unknown
}
