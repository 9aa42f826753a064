package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testZone() Zone {
	return Zone{
		Name:       "ZN-Test",
		TrackType:  TrackDoubleLine,
		Congestion: CongestionMedium,
		Block:      BlockFree,
		Power:      PowerNormal,
		Signal:     SignalNormal,
		Weather:    WeatherClear,
	}
}

func TestZoneRoundTrip(t *testing.T) {
	s := tempDB(t)

	id, err := s.InsertZone(testZone())
	require.NoError(t, err)

	z, err := s.ZoneByID(id)
	require.NoError(t, err)
	require.NotNil(t, z)
	assert.Equal(t, "ZN-Test", z.Name)
	assert.Equal(t, TrackDoubleLine, z.TrackType)
}

func TestZoneByIDUnknown(t *testing.T) {
	s := tempDB(t)

	z, err := s.ZoneByID(999)
	require.NoError(t, err)
	assert.Nil(t, z)
}

func TestInsertVehicleDerivesPriority(t *testing.T) {
	s := tempDB(t)

	_, err := s.InsertVehicle(Vehicle{Number: "FRT001", Category: CategoryFreight, Status: StatusOnTime})
	require.NoError(t, err)

	vehicles, err := s.TopVehicles(10)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, 4, vehicles[0].Priority)
}

func TestTopVehiclesOrdering(t *testing.T) {
	s := tempDB(t)

	for _, v := range []Vehicle{
		{Number: "F1", Category: CategoryFreight, Status: StatusDelayed, DelayMinutes: 90},
		{Number: "S1", Category: CategorySuperfast, Status: StatusOnTime},
		{Number: "S2", Category: CategorySuperfast, Status: StatusDelayed, DelayMinutes: 30},
		{Number: "E1", Category: CategoryExpress, Status: StatusDelayed, DelayMinutes: 10},
	} {
		_, err := s.InsertVehicle(v)
		require.NoError(t, err)
	}

	vehicles, err := s.TopVehicles(3)
	require.NoError(t, err)
	require.Len(t, vehicles, 3)

	// Priority ascending, delay descending within the same priority.
	assert.Equal(t, "S2", vehicles[0].Number)
	assert.Equal(t, "S1", vehicles[1].Number)
	assert.Equal(t, "E1", vehicles[2].Number)
}

func TestIncidentsSinceFiltersAndOrders(t *testing.T) {
	s := tempDB(t)
	zoneID, err := s.InsertZone(testZone())
	require.NoError(t, err)

	now := time.Now().UTC()
	old := Incident{ZoneID: zoneID, Type: IncidentFire, Timestamp: now.Add(-30 * time.Hour)}
	recent := Incident{ZoneID: zoneID, Type: IncidentSecurity, Timestamp: now.Add(-2 * time.Hour)}
	newest := Incident{ZoneID: zoneID, Type: IncidentAccident, Timestamp: now.Add(-1 * time.Hour)}
	for _, in := range []Incident{old, recent, newest} {
		_, err := s.InsertIncident(in)
		require.NoError(t, err)
	}

	got, err := s.IncidentsSince(zoneID, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, IncidentAccident, got[0].Type)
	assert.Equal(t, IncidentSecurity, got[1].Type)
}

func TestStationsAndFactorsAreZoneOwned(t *testing.T) {
	s := tempDB(t)
	zoneA, err := s.InsertZone(testZone())
	require.NoError(t, err)
	zoneB, err := s.InsertZone(testZone())
	require.NoError(t, err)

	_, err = s.InsertStation(Station{ZoneID: zoneA, Platforms: 4, YardCapacity: 8, Occupancy: 2})
	require.NoError(t, err)
	_, err = s.InsertStation(Station{ZoneID: zoneB, Platforms: 2, YardCapacity: 4})
	require.NoError(t, err)
	_, err = s.InsertFactor(ExternalFactor{ZoneID: zoneB, Type: FactorStrike, Severity: SeverityMedium})
	require.NoError(t, err)

	stations, err := s.StationsByZone(zoneA)
	require.NoError(t, err)
	assert.Len(t, stations, 1)

	factors, err := s.FactorsByZone(zoneA)
	require.NoError(t, err)
	assert.Empty(t, factors)

	factors, err = s.FactorsByZone(zoneB)
	require.NoError(t, err)
	assert.Len(t, factors, 1)
}

func TestInsertDecisionAlwaysNewRow(t *testing.T) {
	s := tempDB(t)
	zoneID, err := s.InsertZone(testZone())
	require.NoError(t, err)

	d := Decision{ZoneID: zoneID, Action: "held freight", Timestamp: time.Now().UTC(), Outcome: OutcomeResolved}
	first, err := s.InsertDecision(d)
	require.NoError(t, err)
	second, err := s.InsertDecision(d)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVehiclePriorityTotalOrder(t *testing.T) {
	order := []Category{CategorySuperfast, CategoryExpress, CategoryPassenger, CategoryFreight}
	for i, c := range order {
		assert.Equal(t, i+1, c.Priority())
	}
}
