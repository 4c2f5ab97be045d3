package store

import (
	"context"
	"path/filepath"
	"testing"

	"citracker/config"
	"citracker/core/utils"
)

func testDB(t *testing.T) *FactsStore {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.AppConfig{DBDriver: "sqlite", DBPath: filepath.Join(dir, "facts.db")}
	db, err := NewDB(cfg, utils.NewLogger())
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := ApplyTestSchema(context.Background(), db); err != nil {
		t.Fatalf("schema: %v", err)
	}

	seed := []string{
		`INSERT INTO incidents_main_data (id, start_date, added_to_db) VALUES
			(1, '2023-03-01 00:00:00', '2023-03-10 00:00:00'),
			(2, '2023-04-01 00:00:00', '2023-04-05 00:00:00'),
			(3, '2023-05-01 00:00:00', '2023-05-02 00:00:00')`,
		`INSERT INTO clean_types (incident_id, type_clean) VALUES
			(1, 'Ransomware'), (2, 'Data theft'), (3, 'Wiper')`,
		`INSERT INTO receivers (incident_id, name, country, category, subcategory) VALUES
			(1, 'Hospital A', 'Germany', 'Critical infrastructure', 'Health'),
			(2, 'Grid Co', 'France', 'Critical infrastructure', 'Energy'),
			(3, 'Some Corp', 'France', 'Corporate targets', 'Retail')`,
		`INSERT INTO initiators (id, incident_id, name, country, settled) VALUES
			(10, 1, 'LockBit', 'Russia', 1),
			(11, 2, NULL, 'Not available', 1)`,
		`INSERT INTO initiator_categories (initiator_id, category) VALUES
			(10, 'Non-state-group')`,
		`INSERT INTO mitre_initial_access (incident_id, initial_access) VALUES
			(1, 'T1566 Phishing')`,
		`INSERT INTO cyber_intensity (incident_id, weighted_intensity) VALUES
			(1, '7.5'), (2, 'not coded')`,
		`INSERT INTO impact_indicator (incident_id, functional_impact, intelligence_impact) VALUES
			(1, 'Day (< 24h)', 'Minor data breach')`,
		`INSERT INTO countries (country_id, country_name) VALUES (1, 'Germany'), (2, 'France')`,
		`INSERT INTO regions (region_id, region_name) VALUES (1, 'EU')`,
		`INSERT INTO country_regions (country_id, region_id) VALUES (1, 1), (2, 1)`,
		`INSERT INTO ci_subtypes (incident_id, receiver_subcategory, ci_subtype) VALUES
			(1, 'Health', 'Hospital'),
			(2, 'Energy', NULL)`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewFactsStore(db)
}

func TestLoadFactsJoinsAndFilters(t *testing.T) {
	facts := testDB(t)
	rows, err := facts.LoadFacts(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	byID := map[int64]int{}
	for _, r := range rows {
		byID[r.IncidentID]++
	}
	if byID[3] != 0 {
		t.Fatalf("non critical infrastructure receiver must be filtered out")
	}
	if byID[1] == 0 || byID[2] == 0 {
		t.Fatalf("expected incidents 1 and 2, got %v", byID)
	}

	for _, r := range rows {
		if r.IncidentID != 1 {
			continue
		}
		if r.InitiatorName != "LockBit" || r.InitiatorCategory != "Non-state-group" {
			t.Fatalf("initiator join broken: %+v", r)
		}
		if r.RegionName != "EU" {
			t.Fatalf("region join broken: %+v", r)
		}
		if r.RawIntensity != "7.5" {
			t.Fatalf("intensity text scan broken: %+v", r)
		}
		if !r.SettledInitiator {
			t.Fatalf("settled flag lost: %+v", r)
		}
		if r.StartDate.IsZero() || r.AddedToDB.IsZero() {
			t.Fatalf("timestamps not scanned: %+v", r)
		}
	}

	for _, r := range rows {
		if r.IncidentID == 2 && r.InitiatorCountry != "Not available" {
			t.Fatalf("null-name initiator row mangled: %+v", r)
		}
		if r.IncidentID == 2 && r.RawIntensity != "not coded" {
			t.Fatalf("garbage intensity must pass through raw: %+v", r)
		}
	}
}

func TestLoadSubtypesDropsUncoded(t *testing.T) {
	facts := testDB(t)
	rows, err := facts.LoadSubtypes(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the coded subtype row, got %+v", rows)
	}
	r := rows[0]
	if r.IncidentID != 1 || r.ReceiverSubcategory != "Health" || r.CISubtype != "Hospital" {
		t.Fatalf("subtype row wrong: %+v", r)
	}
	if r.ReceiverCountry != "Germany" || r.RegionName != "EU" {
		t.Fatalf("geography join broken: %+v", r)
	}
}
