package store

import (
	"context"
	"database/sql"
	"fmt"
)

// testSchema mirrors the slice of the upstream schema the fact queries touch.
// Applied only against sqlite; the postgres schema belongs to the upstream
// coding team.
var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS incidents_main_data (
		id INTEGER PRIMARY KEY,
		start_date TIMESTAMP,
		added_to_db TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS clean_types (
		incident_id INTEGER,
		type_clean TEXT,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS receivers (
		incident_id INTEGER,
		name TEXT,
		country TEXT,
		category TEXT,
		subcategory TEXT,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS initiators (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		incident_id INTEGER,
		name TEXT,
		country TEXT,
		settled INTEGER,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS initiator_categories (
		initiator_id INTEGER,
		category TEXT,
		FOREIGN KEY(initiator_id) REFERENCES initiators(id)
	);`,
	`CREATE TABLE IF NOT EXISTS mitre_initial_access (
		incident_id INTEGER,
		initial_access TEXT,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS mitre_impact (
		incident_id INTEGER,
		impact TEXT,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS offline_conflict_issues (
		incident_id INTEGER,
		issue TEXT,
		conflict_name TEXT,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS cyber_intensity (
		incident_id INTEGER,
		weighted_intensity TEXT,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS impact_indicator (
		incident_id INTEGER,
		functional_impact TEXT,
		intelligence_impact TEXT,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS ci_subtypes (
		incident_id INTEGER,
		receiver_subcategory TEXT,
		ci_subtype TEXT,
		FOREIGN KEY(incident_id) REFERENCES incidents_main_data(id)
	);`,
	`CREATE TABLE IF NOT EXISTS countries (
		country_id INTEGER PRIMARY KEY AUTOINCREMENT,
		country_name TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS regions (
		region_id INTEGER PRIMARY KEY AUTOINCREMENT,
		region_name TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS country_regions (
		country_id INTEGER,
		region_id INTEGER,
		FOREIGN KEY(country_id) REFERENCES countries(country_id),
		FOREIGN KEY(region_id) REFERENCES regions(region_id)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_receivers_incident ON receivers(incident_id);`,
	`CREATE INDEX IF NOT EXISTS idx_initiators_incident ON initiators(incident_id);`,
}

// ApplyTestSchema creates the fixture tables for sqlite-backed tests.
func ApplyTestSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range testSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("test schema statement #%d failed: %w", i+1, err)
		}
	}
	return nil
}
