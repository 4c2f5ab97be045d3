package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"citracker/config"
	"citracker/core/charts"
	"citracker/core/crossfilter"
	"citracker/core/dataset"
	"citracker/core/geo"
	"citracker/core/metrics"
	"citracker/core/session"
	"citracker/core/utils"
)

// SessionHeader carries the dashboard session id. The handler mints one when
// the client arrives without it and always echoes it back.
const SessionHeader = "X-Session-ID"

// DashboardHandler serves every chart endpoint off the shared canonical
// table. The table is immutable; all request state lives in the session
// store.
type DashboardHandler struct {
	controls config.ControlsConfig
	cutover  time.Time
	table    dataset.Table
	subtypes []dataset.SubtypeRow
	sessions *session.Store
	metrics  *metrics.Metrics
	logger   *utils.Logger
}

func NewDashboardHandler(
	cfg *config.AppConfig,
	table dataset.Table,
	subtypes []dataset.SubtypeRow,
	sessions *session.Store,
	m *metrics.Metrics,
	logger *utils.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		controls: cfg.Controls,
		cutover:  cfg.Dataset.AddedCutoverTime(),
		table:    table,
		subtypes: subtypes,
		sessions: sessions,
		metrics:  m,
		logger:   logger,
	}
}

func (h *DashboardHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = h.sessions.NewID()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

// observe parses the selection, syncs it with the session's section state
// and returns the narrowed table plus the current cross-filter state.
func (h *DashboardHandler) observe(w http.ResponseWriter, r *http.Request, section string) (dataset.Table, crossfilter.State, bool) {
	sel, err := parseSelection(r, h.controls)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return dataset.Table{}, crossfilter.State{}, false
	}
	id := h.sessionID(w, r)
	state := h.sessions.Observe(id, section, sel)
	return dataset.Apply(h.table, sel), state, true
}

func (h *DashboardHandler) writeChart(w http.ResponseWriter, chart charts.Chart) {
	if chart.Empty && h.metrics != nil {
		h.metrics.EmptyResults.Inc()
	}
	writeJSON(w, http.StatusOK, chart)
}

// Overview section.

func (h *DashboardHandler) OverviewSectors(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionOverview)
	if !ok {
		return
	}
	h.writeChart(w, charts.SectorTotals(filtered, state.Overview.Sectors))
}

func (h *DashboardHandler) OverviewTimeline(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionOverview)
	if !ok {
		return
	}
	cumulative := r.URL.Query().Get("mode") == "cumulative"
	chart := charts.Timeline(filtered, state.Overview.Sectors, cumulative, h.cutover)
	chart.Title = charts.TimelineTitle(r.URL.Query().Get("geography"), cumulative)
	h.writeChart(w, chart)
}

func (h *DashboardHandler) OverviewSubtypes(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r, h.controls)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.sessionID(w, r)
	h.writeChart(w, charts.SubtypeBreakdown(dataset.ApplySubtypes(h.subtypes, sel)))
}

// Types section.

func (h *DashboardHandler) TypesBySector(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionTypes)
	if !ok {
		return
	}
	h.writeChart(w, charts.TypesBySector(filtered, state.Types.Stack))
}

func (h *DashboardHandler) TypesImpact(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionTypes)
	if !ok {
		return
	}
	h.writeChart(w, charts.ImpactBreakdown(filtered, state.Types.Stack))
}

func (h *DashboardHandler) TypesIntelligence(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionTypes)
	if !ok {
		return
	}
	h.writeChart(w, charts.IntelligenceImpact(filtered, state.Types.Stack, state.Types.Impact))
}

func (h *DashboardHandler) TypesFunctional(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionTypes)
	if !ok {
		return
	}
	h.writeChart(w, charts.FunctionalImpact(filtered, state.Types.Stack, state.Types.Impact))
}

func (h *DashboardHandler) TypesTechniques(w http.ResponseWriter, r *http.Request) {
	filtered, _, ok := h.observe(w, r, crossfilter.SectionTypes)
	if !ok {
		return
	}
	sector := r.URL.Query().Get("sector")
	if sector == "" {
		sector = charts.AllSectorsOption
	}
	attackType := r.URL.Query().Get("type")
	if attackType == "" {
		attackType = charts.AllTypesOption
	}
	h.writeChart(w, charts.Techniques(filtered, sector, attackType))
}

// Initiators section.

func initiatorScope(r *http.Request) (string, int, error) {
	q := r.URL.Query()
	sector := q.Get("sector")
	year := 0
	if raw := q.Get("actorYear"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return "", 0, errBadParam("actorYear", raw)
		}
		year = y
	}
	return sector, year, nil
}

func (h *DashboardHandler) InitiatorOrigins(w http.ResponseWriter, r *http.Request) {
	filtered, _, ok := h.observe(w, r, crossfilter.SectionInitiators)
	if !ok {
		return
	}
	sector, year, err := initiatorScope(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeChart(w, charts.InitiatorOrigins(filtered, sector, year))
}

func (h *DashboardHandler) TopActors(w http.ResponseWriter, r *http.Request) {
	filtered, _, ok := h.observe(w, r, crossfilter.SectionInitiators)
	if !ok {
		return
	}
	sector, year, err := initiatorScope(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"actors": charts.TopActors(filtered, sector, year),
	})
}

func (h *DashboardHandler) Conflicts(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionInitiators)
	if !ok {
		return
	}
	h.writeChart(w, charts.ConflictPie(filtered, state.Initiators.Conflict))
}

func (h *DashboardHandler) ConflictSectors(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionInitiators)
	if !ok {
		return
	}
	chart := charts.ConflictSectors(filtered, state.Initiators.Conflict)
	conflict := ""
	if state.Initiators.Conflict.Active {
		conflict = state.Initiators.Conflict.Element.Category
	}
	chart.Title = charts.ConflictSectorsTitle(r.URL.Query().Get("geography"), conflict)
	h.writeChart(w, chart)
}

func (h *DashboardHandler) ConflictInitiators(w http.ResponseWriter, r *http.Request) {
	filtered, state, ok := h.observe(w, r, crossfilter.SectionInitiators)
	if !ok {
		return
	}
	h.writeChart(w, charts.ConflictInitiators(filtered, state.Initiators.Conflict, state.Initiators.Sector))
}

// Summary endpoints.

func (h *DashboardHandler) Totals(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r, h.controls)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.sessionID(w, r)
	writeJSON(w, http.StatusOK, charts.BuildTotals(dataset.Apply(h.table, sel)))
}

func (h *DashboardHandler) Titles(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r, h.controls)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	titles := charts.BuildTitles(sel.Geography)
	titles.Year = charts.YearLabel(sel.Year)
	writeJSON(w, http.StatusOK, titles)
}

// Controls serves the control-surface vocabulary: geography selectors, the
// year slider bounds and the default range start.
func (h *DashboardHandler) Controls(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"geographies": geo.SelectorLabels(),
		"yearMin":     h.controls.YearMin,
		"yearMax":     h.controls.YearMax,
		"rangeStart":  h.controls.RangeStart,
	})
}

// Interaction endpoints.

type clickRequest struct {
	Section string              `json:"section"`
	Chart   string              `json:"chart"`
	Element crossfilter.Element `json:"element"`
}

// ClickEvent applies a chart click to the session's cross-filter state and
// returns the updated state so the client can re-request dependent charts.
func (h *DashboardHandler) ClickEvent(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid click payload")
		return
	}
	if req.Element.Category == "" {
		writeError(w, http.StatusBadRequest, "element category is required")
		return
	}
	id := h.sessionID(w, r)
	state, ok := h.sessions.Click(id, req.Section, req.Chart, req.Element)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown section or chart")
		return
	}
	if h.metrics != nil {
		h.metrics.Interactions.WithLabelValues(req.Section, "click").Inc()
	}
	writeJSON(w, http.StatusOK, stateResponse(state))
}

// ResetSection clears the cross-filter state for one section.
func (h *DashboardHandler) ResetSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	id := h.sessionID(w, r)
	state, ok := h.sessions.Reset(id, section)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown section")
		return
	}
	if h.metrics != nil {
		h.metrics.Interactions.WithLabelValues(section, "reset").Inc()
	}
	writeJSON(w, http.StatusOK, stateResponse(state))
}

type sectionState struct {
	Selected []crossfilter.Element `json:"selected"`
}

func stateResponse(state crossfilter.State) map[string]sectionState {
	out := map[string]sectionState{
		crossfilter.SectionOverview:   {Selected: state.Overview.Sectors.Elements},
		crossfilter.SectionTypes:      {},
		crossfilter.SectionInitiators: {},
	}
	types := sectionState{}
	if state.Types.Stack.Active {
		types.Selected = append(types.Selected, state.Types.Stack.Element)
	}
	if state.Types.Impact.Active {
		types.Selected = append(types.Selected, state.Types.Impact.Element)
	}
	out[crossfilter.SectionTypes] = types

	initiators := sectionState{}
	if state.Initiators.Conflict.Active {
		initiators.Selected = append(initiators.Selected, state.Initiators.Conflict.Element)
	}
	if state.Initiators.Sector.Active {
		initiators.Selected = append(initiators.Selected, state.Initiators.Sector.Element)
	}
	out[crossfilter.SectionInitiators] = initiators
	return out
}
