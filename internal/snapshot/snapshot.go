// Package snapshot assembles a point-in-time view of one zone's operational
// state from multiple store reads.
package snapshot

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"railops/internal/store"
)

// #region types

// Snapshot is the aggregated read of a zone and its related entities. All
// values are copies; the aggregator never mutates source records.
type Snapshot struct {
	Zone            *store.Zone // nil when the zone id is unknown
	Vehicles        []store.Vehicle
	Stations        []store.Station
	Factors         []store.ExternalFactor
	RecentIncidents []store.Incident
}

// Config bounds the aggregation queries.
type Config struct {
	VehicleLimit   int           // max vehicles surfaced per snapshot
	IncidentWindow time.Duration // lookback for recent incidents
}

// DefaultConfig returns the standard aggregation bounds.
func DefaultConfig() Config {
	return Config{
		VehicleLimit:   10,
		IncidentWindow: 24 * time.Hour,
	}
}

// #endregion types

// #region aggregator

// Aggregator builds zone snapshots.
type Aggregator struct {
	store  *store.Store
	config Config
	log    *zap.Logger
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(st *store.Store, config Config, log *zap.Logger) *Aggregator {
	return &Aggregator{store: st, config: config, log: log}
}

// #endregion aggregator

// #region take

// Take reads a zone's full relevant state in one pass. An unknown zone id
// yields a snapshot with a nil Zone rather than an error; downstream
// consumers degrade gracefully on missing zone data. Any store failure
// aborts the whole read, with no retry.
//
// The vehicle listing is network-wide, not zone-filtered: vehicles carry no
// zone association in the schema, so the most urgent vehicles surface
// regardless of zone.
func (a *Aggregator) Take(zoneID int64) (Snapshot, error) {
	var snap Snapshot

	zone, err := a.store.ZoneByID(zoneID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot zone: %w", err)
	}
	snap.Zone = zone
	if zone == nil {
		a.log.Warn("zone not found, building partial snapshot", zap.Int64("zone_id", zoneID))
	}

	snap.Vehicles, err = a.store.TopVehicles(a.config.VehicleLimit)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot vehicles: %w", err)
	}

	snap.Stations, err = a.store.StationsByZone(zoneID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot stations: %w", err)
	}

	snap.Factors, err = a.store.FactorsByZone(zoneID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot factors: %w", err)
	}

	since := time.Now().UTC().Add(-a.config.IncidentWindow)
	snap.RecentIncidents, err = a.store.IncidentsSince(zoneID, since)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot incidents: %w", err)
	}

	a.log.Debug("snapshot complete",
		zap.Int64("zone_id", zoneID),
		zap.Bool("zone_found", zone != nil),
		zap.Int("vehicles", len(snap.Vehicles)),
		zap.Int("stations", len(snap.Stations)),
		zap.Int("factors", len(snap.Factors)),
		zap.Int("incidents", len(snap.RecentIncidents)))

	return snap, nil
}

// #endregion take
