package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"citracker/api"
	"citracker/api/handlers"
	"citracker/config"
	"citracker/core/charts"
	"citracker/core/dataset"
	"citracker/core/geo"
	"citracker/core/session"
	"citracker/core/utils"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		ListenAddr: "127.0.0.1:0",
		SessionTTL: time.Hour,
		Controls: config.ControlsConfig{
			YearMin:    2010,
			YearMax:    2025,
			RangeStart: "2000-01-01",
		},
		Dataset: config.DatasetConfig{AddedCutover: "2023-01-01"},
	}
}

func fixtureTable() dataset.Table {
	mk := func(id int64, sector, country, region, typ string, start string) dataset.Row {
		day, _ := time.Parse("2006-01-02", start)
		return dataset.Row{
			IncidentID:          id,
			StartDate:           day,
			AddedToDB:           day.AddDate(0, 0, 7),
			TypeClean:           typ,
			ReceiverCountry:     country,
			RegionName:          region,
			ReceiverSubcategory: sector,
			InitiatorName:       "LockBit",
			InitiatorCountry:    "Russia",
			InitiatorCategory:   "Non-state-group",
			SettledInitiator:    true,
			InitialAccess:       "T1566 Phishing",
			Impact:              "Disruption",
			FunctionalImpact:    "Day (< 24h)",
			IntelligenceImpact:  "Minor data breach",
		}
	}
	rows := []dataset.Row{
		mk(1, "Health", "Germany", "EU", "Ransomware", "2023-02-01"),
		mk(2, "Health", "Germany", "EU", "Ransomware", "2023-03-01"),
		mk(3, "Health", "France", "EU", "Wiper", "2023-04-01"),
		mk(4, "Energy", "France", "EU", "Data theft", "2023-05-01"),
		mk(5, "Energy", "United States", "NATO", "Ransomware", "2023-06-01"),
	}
	return dataset.NewTable(rows)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := testConfig()
	srv := api.NewServer(api.ServerDeps{
		Cfg:      cfg,
		Table:    fixtureTable(),
		Subtypes: []dataset.SubtypeRow{{IncidentID: 1, ReceiverSubcategory: "Health", CISubtype: "Hospital", ReceiverCountry: "Germany", RegionName: "EU"}},
		Sessions: session.NewStore(cfg.EffectiveSessionTTL()),
		Logger:   utils.NewLogger(),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func getChart(t *testing.T, ts *httptest.Server, path, sessionID string) (charts.Chart, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if sessionID != "" {
		req.Header.Set(handlers.SessionHeader, sessionID)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	var chart charts.Chart
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return chart, resp.Header.Get(handlers.SessionHeader)
}

func postClick(t *testing.T, ts *httptest.Server, sessionID, section, chartName, category, subCategory string) int {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"section": section,
		"chart":   chartName,
		"element": map[string]string{"category": category, "subCategory": subCategory},
	})
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/dashboard/events/click", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set(handlers.SessionHeader, sessionID)
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestSectorsEndpointAssignsSession(t *testing.T) {
	ts := newTestServer(t)
	chart, sid := getChart(t, ts, "/api/dashboard/overview/sectors", "")
	if sid == "" {
		t.Fatalf("expected a minted session id")
	}
	if chart.Empty || len(chart.Series) != 1 {
		t.Fatalf("unexpected chart: %+v", chart)
	}
	points := chart.Series[0].Points
	if len(points) != 2 {
		t.Fatalf("expected Health and Energy bars, got %+v", points)
	}
	// Ascending: Energy (2 incidents) before Health (3).
	if points[0].Label != "Energy" || points[1].Label != "Health" {
		t.Fatalf("bar order wrong: %+v", points)
	}
}

func TestClickHighlightAndFilterReset(t *testing.T) {
	ts := newTestServer(t)
	_, sid := getChart(t, ts, "/api/dashboard/overview/sectors", "")

	if status := postClick(t, ts, sid, "overview", "sectors", "Health", ""); status != http.StatusOK {
		t.Fatalf("click status %d", status)
	}

	chart, _ := getChart(t, ts, "/api/dashboard/overview/sectors", sid)
	var healthHighlighted bool
	for _, p := range chart.Series[0].Points {
		if p.Label == "Health" && p.Color != "" && p.Color != chart.Series[0].Points[0].Color {
			healthHighlighted = true
		}
	}
	if !healthHighlighted {
		t.Fatalf("selected bar not highlighted: %+v", chart.Series[0].Points)
	}

	// Changing the upstream filter clears the selection.
	chart, _ = getChart(t, ts, "/api/dashboard/overview/sectors?year=2023", sid)
	first := chart.Series[0].Points[0].Color
	for _, p := range chart.Series[0].Points {
		if p.Color != first {
			t.Fatalf("selection survived a filter change: %+v", chart.Series[0].Points)
		}
	}
}

func TestGeographyFilterAppliesToCharts(t *testing.T) {
	ts := newTestServer(t)
	chart, _ := getChart(t, ts, "/api/dashboard/overview/sectors?geography=United+States", "")
	points := chart.Series[0].Points
	if len(points) != 1 || points[0].Label != "Energy" {
		t.Fatalf("geography filter wrong: %+v", points)
	}

	chart, _ = getChart(t, ts, "/api/dashboard/overview/sectors?geography=EU+%28member+states%29", "")
	if len(chart.Series[0].Points) != 2 {
		t.Fatalf("region filter wrong: %+v", chart.Series[0].Points)
	}
}

func TestUnknownClickTargetRejected(t *testing.T) {
	ts := newTestServer(t)
	_, sid := getChart(t, ts, "/api/dashboard/overview/sectors", "")
	if status := postClick(t, ts, sid, "nonsense", "sectors", "Health", ""); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown section, got %d", status)
	}
	if status := postClick(t, ts, sid, "overview", "nonsense", "Health", ""); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown chart, got %d", status)
	}
}

func TestSectionResetEndpoint(t *testing.T) {
	ts := newTestServer(t)
	_, sid := getChart(t, ts, "/api/dashboard/overview/sectors", "")
	postClick(t, ts, sid, "overview", "sectors", "Health", "")

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/dashboard/sections/overview/reset", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set(handlers.SessionHeader, sid)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status %d", resp.StatusCode)
	}

	chart, _ := getChart(t, ts, "/api/dashboard/overview/sectors", sid)
	first := chart.Series[0].Points[0].Color
	for _, p := range chart.Series[0].Points {
		if p.Color != first {
			t.Fatalf("reset did not clear selection: %+v", chart.Series[0].Points)
		}
	}
}

func TestTypesDrillDownFlow(t *testing.T) {
	ts := newTestServer(t)
	_, sid := getChart(t, ts, "/api/dashboard/types/sectors", "")

	if status := postClick(t, ts, sid, "types", "types-by-sector", "Health", "Ransomware"); status != http.StatusOK {
		t.Fatalf("stack click status %d", status)
	}

	impact, _ := getChart(t, ts, "/api/dashboard/types/impact", sid)
	if impact.Empty {
		t.Fatalf("expected impacts for the selected pair")
	}
	total := 0
	for _, p := range impact.Series[0].Points {
		total += p.Count
	}
	if total != 2 {
		t.Fatalf("impact drill must narrow to the pair's incidents, got %d", total)
	}
}

func TestConflictEndpointsEmptyWithoutLinkage(t *testing.T) {
	ts := newTestServer(t)
	chart, _ := getChart(t, ts, "/api/dashboard/initiators/conflicts", "")
	if !chart.Empty {
		t.Fatalf("fixture has no conflict-linked rows, expected empty chart")
	}
}

func TestTotalsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/api/dashboard/totals")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var totals charts.Totals
	if err := json.NewDecoder(resp.Body).Decode(&totals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if totals.Incidents != 5 || totals.Sectors != 2 {
		t.Fatalf("totals wrong: %+v", totals)
	}
}

func TestTitlesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/api/dashboard/titles?geography=" + url.QueryEscape(geo.SelectorGlobal))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var titles charts.Titles
	if err := json.NewDecoder(resp.Body).Decode(&titles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if titles.OverviewSectors != "Top targeted sectors in all countries" {
		t.Fatalf("title wrong: %q", titles.OverviewSectors)
	}
	if titles.Year != "All years" {
		t.Fatalf("year label wrong: %q", titles.Year)
	}
}

func TestControlsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/api/dashboard/controls")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var controls struct {
		Geographies []string `json:"geographies"`
		YearMin     int      `json:"yearMin"`
		YearMax     int      `json:"yearMax"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&controls); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if controls.YearMin != 2010 || controls.YearMax != 2025 {
		t.Fatalf("year bounds wrong: %+v", controls)
	}
	if len(controls.Geographies) == 0 || controls.Geographies[0] != geo.SelectorGlobal {
		t.Fatalf("global sentinel must lead the selector list: %v", controls.Geographies)
	}
}
