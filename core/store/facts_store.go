package store

import (
	"context"
	"database/sql"
	"fmt"

	"citracker/core/dataset"
)

// FactsStore reads the denormalized incident fact rows from the upstream
// research database. The schema is owned by the upstream coding team; this
// store only reads.
type FactsStore struct {
	db *sql.DB
}

func NewFactsStore(db *sql.DB) *FactsStore {
	return &FactsStore{db: db}
}

const factsQuery = `
SELECT DISTINCT
	i.id,
	i.start_date,
	i.added_to_db,
	ct.type_clean,
	r.name,
	r.country,
	reg.region_name,
	r.category,
	r.subcategory,
	ini.name,
	ini.country,
	ic.category,
	ini.settled,
	mia.initial_access,
	ci.weighted_intensity,
	mi.impact,
	oci.conflict_name,
	ii.functional_impact,
	ii.intelligence_impact
FROM incidents_main_data i
LEFT JOIN clean_types ct ON i.id = ct.incident_id
LEFT JOIN receivers r ON i.id = r.incident_id
LEFT JOIN initiators ini ON i.id = ini.incident_id
LEFT JOIN initiator_categories ic ON ini.id = ic.initiator_id
LEFT JOIN mitre_initial_access mia ON i.id = mia.incident_id
LEFT JOIN mitre_impact mi ON i.id = mi.incident_id
LEFT JOIN offline_conflict_issues oci ON i.id = oci.incident_id
LEFT JOIN cyber_intensity ci ON i.id = ci.incident_id
LEFT JOIN impact_indicator ii ON i.id = ii.incident_id
LEFT JOIN countries c ON c.country_name = r.country
LEFT JOIN country_regions cr ON cr.country_id = c.country_id
LEFT JOIN regions reg ON reg.region_id = cr.region_id
WHERE r.category = 'Critical infrastructure'`

// LoadFacts fetches every raw fact row. Cleaning is the canonicalization
// pipeline's job; this only maps nulls to zero values.
func (s *FactsStore) LoadFacts(ctx context.Context) ([]dataset.Row, error) {
	rows, err := s.db.QueryContext(ctx, factsQuery)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}
	defer rows.Close()

	var out []dataset.Row
	for rows.Next() {
		r, err := scanFactRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facts: %w", err)
	}
	return out, nil
}

func scanFactRow(rows *sql.Rows) (dataset.Row, error) {
	var (
		r            dataset.Row
		startDate    sql.NullTime
		addedToDB    sql.NullTime
		typeClean    sql.NullString
		recvName     sql.NullString
		recvCountry  sql.NullString
		regionName   sql.NullString
		recvCategory sql.NullString
		recvSubcat   sql.NullString
		iniName      sql.NullString
		iniCountry   sql.NullString
		iniCategory  sql.NullString
		settled      sql.NullBool
		access       sql.NullString
		// weighted_intensity carries non-numeric garbage in the source, so
		// it is scanned as text and coerced later.
		intensity  sql.NullString
		impact     sql.NullString
		conflict   sql.NullString
		functional sql.NullString
		intel      sql.NullString
	)
	if err := rows.Scan(
		&r.IncidentID, &startDate, &addedToDB, &typeClean,
		&recvName, &recvCountry, &regionName, &recvCategory, &recvSubcat,
		&iniName, &iniCountry, &iniCategory, &settled,
		&access, &intensity, &impact, &conflict, &functional, &intel,
	); err != nil {
		return dataset.Row{}, fmt.Errorf("scan fact row: %w", err)
	}

	if startDate.Valid {
		r.StartDate = startDate.Time.UTC()
	}
	if addedToDB.Valid {
		r.AddedToDB = addedToDB.Time.UTC()
	}
	r.TypeClean = typeClean.String
	r.ReceiverName = recvName.String
	r.ReceiverCountry = recvCountry.String
	r.RegionName = regionName.String
	r.ReceiverCategory = recvCategory.String
	r.ReceiverSubcategory = recvSubcat.String
	r.InitiatorName = iniName.String
	r.InitiatorCountry = iniCountry.String
	r.InitiatorCategory = iniCategory.String
	r.SettledInitiator = settled.Valid && settled.Bool
	r.InitialAccess = access.String
	r.RawIntensity = intensity.String
	r.Impact = impact.String
	r.ConflictName = conflict.String
	r.FunctionalImpact = functional.String
	r.IntelligenceImpact = intel.String
	return r, nil
}

const subtypesQuery = `
SELECT DISTINCT
	i.id,
	cs.receiver_subcategory,
	cs.ci_subtype,
	r.country,
	reg.region_name
FROM incidents_main_data i
LEFT JOIN ci_subtypes cs ON i.id = cs.incident_id
LEFT JOIN receivers r ON i.id = r.incident_id
LEFT JOIN countries c ON c.country_name = r.country
LEFT JOIN country_regions cr ON cr.country_id = c.country_id
LEFT JOIN regions reg ON reg.region_id = cr.region_id`

// LoadSubtypes fetches the secondary organization-type table. Rows without a
// subtype coding are dropped here; nothing downstream can use them.
func (s *FactsStore) LoadSubtypes(ctx context.Context) ([]dataset.SubtypeRow, error) {
	rows, err := s.db.QueryContext(ctx, subtypesQuery)
	if err != nil {
		return nil, fmt.Errorf("query subtypes: %w", err)
	}
	defer rows.Close()

	var out []dataset.SubtypeRow
	for rows.Next() {
		var (
			r       dataset.SubtypeRow
			subcat  sql.NullString
			subtype sql.NullString
			country sql.NullString
			region  sql.NullString
		)
		if err := rows.Scan(&r.IncidentID, &subcat, &subtype, &country, &region); err != nil {
			return nil, fmt.Errorf("scan subtype row: %w", err)
		}
		if !subcat.Valid || !subtype.Valid {
			continue
		}
		r.ReceiverSubcategory = subcat.String
		r.CISubtype = subtype.String
		r.ReceiverCountry = country.String
		r.RegionName = region.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subtypes: %w", err)
	}
	return out, nil
}
