package handlers

import (
	"net/http"
	"strconv"
	"time"

	"citracker/config"
	"citracker/core/dataset"
)

const dateLayout = "2006-01-02"

// parseSelection reads the upstream filter query params. The year slider's
// maximum means "all years" and the default date range means "no range";
// both map to the zero value so the filter treats them as no-ops.
func parseSelection(r *http.Request, controls config.ControlsConfig) (dataset.Selection, error) {
	q := r.URL.Query()
	sel := dataset.Selection{Geography: q.Get("geography")}

	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return dataset.Selection{}, errBadParam("year", raw)
		}
		if year < controls.YearMax {
			sel.Year = year
		}
	}

	from, to := q.Get("from"), q.Get("to")
	if from != "" || to != "" {
		today := time.Now().UTC().Format(dateLayout)
		if from == controls.RangeStart && to == today {
			return sel, nil
		}
		if from != "" {
			t, err := time.Parse(dateLayout, from)
			if err != nil {
				return dataset.Selection{}, errBadParam("from", from)
			}
			sel.From = t
		}
		if to != "" {
			t, err := time.Parse(dateLayout, to)
			if err != nil {
				return dataset.Selection{}, errBadParam("to", to)
			}
			sel.To = t
		}
	}
	return sel, nil
}

type paramError struct {
	name, value string
}

func (e paramError) Error() string {
	return "invalid " + e.name + " parameter: " + e.value
}

func errBadParam(name, value string) error {
	return paramError{name: name, value: value}
}
