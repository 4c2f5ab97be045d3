package charts

// Colors follow the EuRepoC visual identity.

const (
	barFill       = "#668088"
	barLine       = "#002C38"
	highlightFill = "#d63459"
	highlightLine = "#cc0130"

	intelligenceFill = "#e06783"
	intelligenceLine = "#cc0130"
	functionalFill   = "#99c3ce"
	functionalLine   = "#33869d"

	allSectorsColor = "#002C38"
)

var SectorColors = map[string]string{
	"Finance":                "#002C38",
	"Health":                 "#CC0130",
	"Transportation":         "#79443b",
	"Energy":                 "#0094bd",
	"Telecommunications":     "#89BD9E",
	"Defence industry":       "#f4b942",
	"Critical Manufacturing": "#7272AB",
	"Digital Provider":       "#CB904D",
	"Chemicals":              "#F7F0F5",
	"Food":                   "#3E1929",
	"Research":               "#847e89",
	"Space":                  "#F5E0B7",
	"Water":                  "#eb99ac",
	"Waste Water Management": "#779FA1",
}

var InitiatorTypeColors = map[string]string{
	"State affiliated actor": "#6e977e",
	"Non-state-group":        "#cc0130",
	"Not attributed":         "#847e89",
	"Unknown":                "#cecbd0",
	"Individual hacker(s)":   "#e06783",
	"State":                  "#002C38",
}

var AttackTypeColors = map[string]string{
	"Data theft":      "rgba(0,44,56,1)",
	"DDoS/Defacement": "rgba(204,1,48,1)",
	"Ransomware":      "rgba(137,189,158,1)",
	"Wiper":           "rgba(51,134,157,1)",
	"Hack and leak":   "rgba(244,185,66,1)",
	"Other":           "rgba(157,152,161,1)",
}

var AttackTypeColorsDim = map[string]string{
	"Data theft":      "rgba(0,44,56,0.4)",
	"DDoS/Defacement": "rgba(204,1,48,0.4)",
	"Ransomware":      "rgba(137,189,158,0.4)",
	"Wiper":           "rgba(51,134,157,0.4)",
	"Hack and leak":   "rgba(244,185,66,0.4)",
	"Other":           "rgba(157,152,161,0.4)",
}

func sectorColor(sector string) string {
	if c, ok := SectorColors[sector]; ok {
		return c
	}
	return "#000000"
}
