package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS zones (
	zone_id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	track_type    TEXT CHECK(track_type IN ('Single Line', 'Double Line')) NOT NULL,
	congestion    TEXT CHECK(congestion IN ('Low', 'Medium', 'High')) NOT NULL,
	block_state   TEXT CHECK(block_state IN ('Free', 'Occupied', 'Under Maintenance')) NOT NULL,
	power_state   TEXT CHECK(power_state IN ('Normal', 'Power Block', 'Tripped')) NOT NULL,
	signal_state  TEXT CHECK(signal_state IN ('Normal', 'Failure', 'Manual Working')) NOT NULL,
	weather       TEXT CHECK(weather IN ('Clear', 'Fog', 'Rain', 'Storm')) NOT NULL
);

CREATE TABLE IF NOT EXISTS vehicles (
	vehicle_id        INTEGER PRIMARY KEY AUTOINCREMENT,
	number            TEXT NOT NULL,
	category          TEXT CHECK(category IN ('Superfast', 'Express', 'Passenger', 'Freight')) NOT NULL,
	priority          INTEGER NOT NULL,
	status            TEXT CHECK(status IN ('On Time', 'Delayed', 'Halted')) NOT NULL,
	delay_minutes     INTEGER DEFAULT 0,
	crew_status       TEXT,
	loco_health       TEXT,
	linked_vehicle_id INTEGER,
	FOREIGN KEY (linked_vehicle_id) REFERENCES vehicles(vehicle_id)
);

CREATE TABLE IF NOT EXISTS stations (
	station_id       INTEGER PRIMARY KEY AUTOINCREMENT,
	zone_id          INTEGER NOT NULL,
	platforms        INTEGER NOT NULL,
	yard_capacity    INTEGER NOT NULL,
	occupancy        INTEGER DEFAULT 0,
	special_facility TEXT,
	FOREIGN KEY (zone_id) REFERENCES zones(zone_id)
);

CREATE TABLE IF NOT EXISTS external_factors (
	factor_id  INTEGER PRIMARY KEY AUTOINCREMENT,
	zone_id    INTEGER NOT NULL,
	type       TEXT CHECK(type IN ('Festival', 'Strike', 'Exam Rush', 'Natural Disaster')) NOT NULL,
	severity   TEXT CHECK(severity IN ('Low', 'Medium', 'High')) NOT NULL,
	remarks    TEXT,
	FOREIGN KEY (zone_id) REFERENCES zones(zone_id)
);

CREATE TABLE IF NOT EXISTS incidents (
	incident_id INTEGER PRIMARY KEY AUTOINCREMENT,
	vehicle_id  INTEGER,
	zone_id     INTEGER NOT NULL,
	type        TEXT CHECK(type IN ('Accident', 'Derailment', 'Level Crossing', 'Fire', 'Security', 'Technical Failure')) NOT NULL,
	timestamp   TEXT NOT NULL,
	resolution  TEXT,
	FOREIGN KEY (vehicle_id) REFERENCES vehicles(vehicle_id),
	FOREIGN KEY (zone_id) REFERENCES zones(zone_id)
);

CREATE TABLE IF NOT EXISTS decisions (
	decision_id INTEGER PRIMARY KEY AUTOINCREMENT,
	issue_id    INTEGER,
	zone_id     INTEGER NOT NULL,
	action      TEXT NOT NULL,
	timestamp   TEXT NOT NULL,
	outcome     TEXT CHECK(outcome IN ('Resolved', 'Partially Resolved', 'Escalated')) NOT NULL,
	FOREIGN KEY (zone_id) REFERENCES zones(zone_id)
);
`

// #endregion schema

// #region store-struct

// Store holds the operational state of the network in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for packages that issue their own
// queries (e.g. history).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region zone-reads

// ZoneByID retrieves one zone. Returns (nil, nil) when the id is unknown so
// callers can degrade to a partial snapshot instead of failing.
func (s *Store) ZoneByID(id int64) (*Zone, error) {
	var z Zone
	err := s.db.QueryRow(
		`SELECT zone_id, name, track_type, congestion, block_state, power_state, signal_state, weather
		 FROM zones WHERE zone_id = ?`, id,
	).Scan(&z.ID, &z.Name, &z.TrackType, &z.Congestion, &z.Block, &z.Power, &z.Signal, &z.Weather)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("zone %d: %w", id, err)
	}
	return &z, nil
}

// Zones lists all zones ordered by id.
func (s *Store) Zones() ([]Zone, error) {
	rows, err := s.db.Query(
		`SELECT zone_id, name, track_type, congestion, block_state, power_state, signal_state, weather
		 FROM zones ORDER BY zone_id`)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var zones []Zone
	for rows.Next() {
		var z Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.TrackType, &z.Congestion, &z.Block, &z.Power, &z.Signal, &z.Weather); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// #endregion zone-reads

// #region vehicle-reads

// TopVehicles returns the most urgent vehicles network-wide, ordered by
// ascending priority then descending delay. The query is deliberately not
// zone-filtered; vehicles carry no zone column in the schema.
func (s *Store) TopVehicles(limit int) ([]Vehicle, error) {
	rows, err := s.db.Query(
		`SELECT vehicle_id, number, category, priority, status, delay_minutes, crew_status, loco_health, linked_vehicle_id
		 FROM vehicles
		 ORDER BY priority ASC, delay_minutes DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top vehicles: %w", err)
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func scanVehicles(rows *sql.Rows) ([]Vehicle, error) {
	var vehicles []Vehicle
	for rows.Next() {
		var v Vehicle
		var crew, loco sql.NullString
		var linked sql.NullInt64
		if err := rows.Scan(&v.ID, &v.Number, &v.Category, &v.Priority, &v.Status, &v.DelayMinutes, &crew, &loco, &linked); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		v.CrewStatus = crew.String
		v.LocoHealth = loco.String
		v.LinkedVehicleID = linked.Int64
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// #endregion vehicle-reads

// #region zone-owned-reads

// StationsByZone lists the stations owned by a zone.
func (s *Store) StationsByZone(zoneID int64) ([]Station, error) {
	rows, err := s.db.Query(
		`SELECT station_id, zone_id, platforms, yard_capacity, occupancy, special_facility
		 FROM stations WHERE zone_id = ?`, zoneID)
	if err != nil {
		return nil, fmt.Errorf("stations for zone %d: %w", zoneID, err)
	}
	defer rows.Close()

	var stations []Station
	for rows.Next() {
		var st Station
		var facility sql.NullString
		if err := rows.Scan(&st.ID, &st.ZoneID, &st.Platforms, &st.YardCapacity, &st.Occupancy, &facility); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		st.SpecialFacility = facility.String
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// FactorsByZone lists the external factors affecting a zone.
func (s *Store) FactorsByZone(zoneID int64) ([]ExternalFactor, error) {
	rows, err := s.db.Query(
		`SELECT factor_id, zone_id, type, severity, remarks
		 FROM external_factors WHERE zone_id = ?`, zoneID)
	if err != nil {
		return nil, fmt.Errorf("factors for zone %d: %w", zoneID, err)
	}
	defer rows.Close()

	var factors []ExternalFactor
	for rows.Next() {
		var f ExternalFactor
		var remarks sql.NullString
		if err := rows.Scan(&f.ID, &f.ZoneID, &f.Type, &f.Severity, &remarks); err != nil {
			return nil, fmt.Errorf("scan factor: %w", err)
		}
		f.Remarks = remarks.String
		factors = append(factors, f)
	}
	return factors, rows.Err()
}

// IncidentsSince lists a zone's incidents newer than the given time,
// newest first.
func (s *Store) IncidentsSince(zoneID int64, since time.Time) ([]Incident, error) {
	rows, err := s.db.Query(
		`SELECT incident_id, vehicle_id, zone_id, type, timestamp, resolution
		 FROM incidents
		 WHERE zone_id = ? AND timestamp > ?
		 ORDER BY timestamp DESC`,
		zoneID, since.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("incidents for zone %d: %w", zoneID, err)
	}
	defer rows.Close()

	var incidents []Incident
	for rows.Next() {
		var in Incident
		var vehicleID sql.NullInt64
		var resolution sql.NullString
		var ts string
		if err := rows.Scan(&in.ID, &vehicleID, &in.ZoneID, &in.Type, &ts, &resolution); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		in.VehicleID = vehicleID.Int64
		in.Resolution = resolution.String
		in.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		incidents = append(incidents, in)
	}
	return incidents, rows.Err()
}

// #endregion zone-owned-reads

// #region writes

// InsertZone creates a zone record and returns its id.
func (s *Store) InsertZone(z Zone) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO zones (name, track_type, congestion, block_state, power_state, signal_state, weather)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		z.Name, z.TrackType, z.Congestion, z.Block, z.Power, z.Signal, z.Weather)
	if err != nil {
		return 0, fmt.Errorf("insert zone: %w", err)
	}
	return res.LastInsertId()
}

// InsertVehicle creates a vehicle record and returns its id. Priority is
// derived from the category, never taken from the caller.
func (s *Store) InsertVehicle(v Vehicle) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO vehicles (number, category, priority, status, delay_minutes, crew_status, loco_health, linked_vehicle_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Number, v.Category, v.Category.Priority(), v.Status, v.DelayMinutes,
		nullIfEmpty(v.CrewStatus), nullIfEmpty(v.LocoHealth), nullIfZero(v.LinkedVehicleID))
	if err != nil {
		return 0, fmt.Errorf("insert vehicle: %w", err)
	}
	return res.LastInsertId()
}

// InsertStation creates a station record and returns its id.
func (s *Store) InsertStation(st Station) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO stations (zone_id, platforms, yard_capacity, occupancy, special_facility)
		 VALUES (?, ?, ?, ?, ?)`,
		st.ZoneID, st.Platforms, st.YardCapacity, st.Occupancy, nullIfEmpty(st.SpecialFacility))
	if err != nil {
		return 0, fmt.Errorf("insert station: %w", err)
	}
	return res.LastInsertId()
}

// InsertFactor creates an external factor record and returns its id.
func (s *Store) InsertFactor(f ExternalFactor) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO external_factors (zone_id, type, severity, remarks)
		 VALUES (?, ?, ?, ?)`,
		f.ZoneID, f.Type, f.Severity, nullIfEmpty(f.Remarks))
	if err != nil {
		return 0, fmt.Errorf("insert factor: %w", err)
	}
	return res.LastInsertId()
}

// InsertIncident creates an incident record and returns its id.
func (s *Store) InsertIncident(in Incident) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO incidents (vehicle_id, zone_id, type, timestamp, resolution)
		 VALUES (?, ?, ?, ?, ?)`,
		nullIfZero(in.VehicleID), in.ZoneID, in.Type,
		in.Timestamp.UTC().Format(time.RFC3339Nano), nullIfEmpty(in.Resolution))
	if err != nil {
		return 0, fmt.Errorf("insert incident: %w", err)
	}
	return res.LastInsertId()
}

// InsertDecision persists an operator decision and returns its id. Every
// call creates a new row; there is no upsert path.
func (s *Store) InsertDecision(d Decision) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO decisions (issue_id, zone_id, action, timestamp, outcome)
		 VALUES (?, ?, ?, ?, ?)`,
		nullIfZero(d.IssueID), d.ZoneID, d.Action,
		d.Timestamp.UTC().Format(time.RFC3339Nano), d.Outcome)
	if err != nil {
		return 0, fmt.Errorf("insert decision: %w", err)
	}
	return res.LastInsertId()
}

// #endregion writes

// #region helpers

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(n int64) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

// #endregion helpers
