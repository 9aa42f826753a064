// Package seed loads a small, self-consistent sample network into the store
// for demos and local runs.
package seed

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"railops/internal/store"
)

// #region populate

// Populate clears all tables and loads the sample network: 3 zones,
// 6 stations, 15 vehicles, external factors, recent incidents and a base of
// historical decisions for retrieval.
func Populate(st *store.Store, log *zap.Logger) error {
	if err := clear(st); err != nil {
		return err
	}

	zoneIDs, err := seedZones(st)
	if err != nil {
		return err
	}
	if err := seedStations(st, zoneIDs); err != nil {
		return err
	}
	vehicleIDs, err := seedVehicles(st)
	if err != nil {
		return err
	}
	if err := seedFactors(st, zoneIDs); err != nil {
		return err
	}
	if err := seedIncidents(st, zoneIDs, vehicleIDs); err != nil {
		return err
	}
	if err := seedDecisions(st, zoneIDs); err != nil {
		return err
	}

	log.Info("sample data loaded", zap.Int("zones", len(zoneIDs)), zap.Int("vehicles", len(vehicleIDs)))
	return nil
}

func clear(st *store.Store) error {
	// Break vehicle pair links first; mutually linked rows would otherwise
	// trip the self-referencing foreign key mid-delete.
	if _, err := st.DB().Exec(`UPDATE vehicles SET linked_vehicle_id = NULL`); err != nil {
		return fmt.Errorf("unlink vehicles: %w", err)
	}
	// Delete in dependency order so foreign keys hold.
	for _, table := range []string{"decisions", "incidents", "external_factors", "stations", "vehicles", "zones"} {
		if _, err := st.DB().Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// #endregion populate

// #region zones

func seedZones(st *store.Store) ([]int64, error) {
	zones := []store.Zone{
		{Name: "ZN-A-Delhi-Ghaziabad", TrackType: store.TrackDoubleLine, Congestion: store.CongestionMedium,
			Block: store.BlockOccupied, Power: store.PowerNormal, Signal: store.SignalNormal, Weather: store.WeatherClear},
		{Name: "ZN-B-Ghaziabad-Moradabad", TrackType: store.TrackSingleLine, Congestion: store.CongestionHigh,
			Block: store.BlockOccupied, Power: store.PowerNormal, Signal: store.SignalFailure, Weather: store.WeatherFog},
		{Name: "ZN-C-Moradabad-Bareilly", TrackType: store.TrackDoubleLine, Congestion: store.CongestionLow,
			Block: store.BlockFree, Power: store.PowerBlocked, Signal: store.SignalManualWorking, Weather: store.WeatherRain},
	}

	ids := make([]int64, 0, len(zones))
	for _, z := range zones {
		id, err := st.InsertZone(z)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// #endregion zones

// #region stations

func seedStations(st *store.Store, zoneIDs []int64) error {
	stations := []store.Station{
		{ZoneID: zoneIDs[0], Platforms: 6, YardCapacity: 12, Occupancy: 8, SpecialFacility: "Relief Loco Available"},
		{ZoneID: zoneIDs[0], Platforms: 4, YardCapacity: 8, Occupancy: 5, SpecialFacility: "Crew Base"},
		{ZoneID: zoneIDs[1], Platforms: 3, YardCapacity: 6, Occupancy: 6, SpecialFacility: "Limited Facilities"},
		{ZoneID: zoneIDs[1], Platforms: 2, YardCapacity: 4, Occupancy: 3},
		{ZoneID: zoneIDs[2], Platforms: 5, YardCapacity: 10, Occupancy: 2, SpecialFacility: "Maintenance Depot"},
		{ZoneID: zoneIDs[2], Platforms: 3, YardCapacity: 6, Occupancy: 1},
	}
	for _, s := range stations {
		if _, err := st.InsertStation(s); err != nil {
			return err
		}
	}
	return nil
}

// #endregion stations

// #region vehicles

func seedVehicles(st *store.Store) ([]int64, error) {
	vehicles := []store.Vehicle{
		{Number: "12951", Category: store.CategorySuperfast, Status: store.StatusOnTime, CrewStatus: "Fresh Crew", LocoHealth: "Good"},
		{Number: "12952", Category: store.CategorySuperfast, Status: store.StatusDelayed, DelayMinutes: 25, CrewStatus: "Tired Crew", LocoHealth: "Fair"},
		{Number: "12003", Category: store.CategorySuperfast, Status: store.StatusOnTime, CrewStatus: "Fresh Crew", LocoHealth: "Excellent"},
		{Number: "15707", Category: store.CategoryExpress, Status: store.StatusDelayed, DelayMinutes: 15, CrewStatus: "Fresh Crew", LocoHealth: "Good"},
		{Number: "15708", Category: store.CategoryExpress, Status: store.StatusOnTime, CrewStatus: "Fresh Crew", LocoHealth: "Good"},
		{Number: "14005", Category: store.CategoryExpress, Status: store.StatusHalted, DelayMinutes: 45, CrewStatus: "Crew Change Required", LocoHealth: "Poor"},
		{Number: "14006", Category: store.CategoryExpress, Status: store.StatusDelayed, DelayMinutes: 30, CrewStatus: "Fresh Crew", LocoHealth: "Fair"},
		{Number: "54251", Category: store.CategoryPassenger, Status: store.StatusOnTime, CrewStatus: "Local Crew", LocoHealth: "Good"},
		{Number: "54252", Category: store.CategoryPassenger, Status: store.StatusDelayed, DelayMinutes: 10, CrewStatus: "Local Crew", LocoHealth: "Fair"},
		{Number: "54253", Category: store.CategoryPassenger, Status: store.StatusOnTime, CrewStatus: "Local Crew", LocoHealth: "Good"},
		{Number: "54254", Category: store.CategoryPassenger, Status: store.StatusDelayed, DelayMinutes: 20, CrewStatus: "Local Crew", LocoHealth: "Good"},
		{Number: "FRT001", Category: store.CategoryFreight, Status: store.StatusHalted, DelayMinutes: 60, CrewStatus: "Fresh Crew", LocoHealth: "Good"},
		{Number: "FRT002", Category: store.CategoryFreight, Status: store.StatusDelayed, DelayMinutes: 90, CrewStatus: "Tired Crew", LocoHealth: "Fair"},
		{Number: "FRT003", Category: store.CategoryFreight, Status: store.StatusDelayed, DelayMinutes: 90, CrewStatus: "Tired Crew", LocoHealth: "Fair"},
		{Number: "FRT004", Category: store.CategoryFreight, Status: store.StatusOnTime, CrewStatus: "Fresh Crew", LocoHealth: "Good"},
	}

	ids := make([]int64, 0, len(vehicles))
	for _, v := range vehicles {
		id, err := st.InsertVehicle(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	// FRT002 and FRT003 run as a coupled pair.
	if _, err := st.DB().Exec(`UPDATE vehicles SET linked_vehicle_id = ? WHERE vehicle_id = ?`, ids[13], ids[12]); err != nil {
		return nil, fmt.Errorf("link vehicles: %w", err)
	}
	if _, err := st.DB().Exec(`UPDATE vehicles SET linked_vehicle_id = ? WHERE vehicle_id = ?`, ids[12], ids[13]); err != nil {
		return nil, fmt.Errorf("link vehicles: %w", err)
	}

	return ids, nil
}

// #endregion vehicles

// #region factors-incidents

func seedFactors(st *store.Store, zoneIDs []int64) error {
	factors := []store.ExternalFactor{
		{ZoneID: zoneIDs[0], Type: store.FactorFestival, Severity: store.SeverityHigh,
			Remarks: "Diwali rush, expect 30% more passenger traffic"},
		{ZoneID: zoneIDs[1], Type: store.FactorStrike, Severity: store.SeverityMedium,
			Remarks: "Local transport strike affecting crew availability"},
		{ZoneID: zoneIDs[2], Type: store.FactorDisaster, Severity: store.SeverityLow,
			Remarks: "Recent flooding cleared, track inspected and safe"},
	}
	for _, f := range factors {
		if _, err := st.InsertFactor(f); err != nil {
			return err
		}
	}
	return nil
}

func seedIncidents(st *store.Store, zoneIDs, vehicleIDs []int64) error {
	base := time.Now().UTC().Add(-2 * time.Hour)
	incidents := []store.Incident{
		{ZoneID: zoneIDs[1], VehicleID: vehicleIDs[5], Type: store.IncidentTechnicalFailure, Timestamp: base,
			Resolution: "Brake failure resolved, vehicle cleared for movement"},
		{ZoneID: zoneIDs[1], Type: store.IncidentLevelCrossing, Timestamp: base.Add(30 * time.Minute),
			Resolution: "Gate jam cleared, normal operations resumed"},
		{ZoneID: zoneIDs[0], VehicleID: vehicleIDs[11], Type: store.IncidentSecurity, Timestamp: base.Add(time.Hour),
			Resolution: "Security check completed, vehicle released"},
		{ZoneID: zoneIDs[2], Type: store.IncidentFire, Timestamp: base.Add(90 * time.Minute),
			Resolution: "Track-side fire extinguished, line clear"},
	}
	for _, in := range incidents {
		if _, err := st.InsertIncident(in); err != nil {
			return err
		}
	}
	return nil
}

// #endregion factors-incidents

// #region decisions

func seedDecisions(st *store.Store, zoneIDs []int64) error {
	base := time.Now().UTC().Add(-3 * time.Hour)
	decisions := []store.Decision{
		{ZoneID: zoneIDs[0], Timestamp: base, Outcome: store.OutcomeResolved,
			Action: "Priority given to Superfast 12951, held Freight FRT001 at station"},
		{ZoneID: zoneIDs[1], Timestamp: base.Add(45 * time.Minute), Outcome: store.OutcomePartiallyResolved,
			Action: "Diverted Express 14005 to loop line due to signal failure, arranged crew change"},
		{ZoneID: zoneIDs[0], Timestamp: base.Add(time.Hour), Outcome: store.OutcomeResolved,
			Action: "Coordinated with adjacent zone for power restoration, held all vehicles temporarily"},
		{ZoneID: zoneIDs[1], Timestamp: base.Add(90 * time.Minute), Outcome: store.OutcomeResolved,
			Action: "Arranged alternate route for passenger services due to gate jam at level crossing"},
		{ZoneID: zoneIDs[2], Timestamp: base.Add(2 * time.Hour), Outcome: store.OutcomeResolved,
			Action: "Implemented speed restriction due to track-side fire, all vehicles to proceed cautiously"},
	}
	for _, d := range decisions {
		if _, err := st.InsertDecision(d); err != nil {
			return err
		}
	}
	return nil
}

// #endregion decisions
