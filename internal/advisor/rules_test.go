package advisor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railops/internal/snapshot"
	"railops/internal/store"
)

func zoneWith(signal store.SignalState, power store.PowerState, congestion store.CongestionLevel) *store.Zone {
	return &store.Zone{
		ID:         1,
		Name:       "ZN-Rules",
		TrackType:  store.TrackSingleLine,
		Congestion: congestion,
		Block:      store.BlockOccupied,
		Power:      power,
		Signal:     signal,
		Weather:    store.WeatherClear,
	}
}

func TestRulesSignalFailure(t *testing.T) {
	snap := snapshot.Snapshot{Zone: zoneWith(store.SignalFailure, store.PowerNormal, store.CongestionLow)}

	text, err := NewRules().Suggest(context.Background(), snap, nil, "signal failure at main line")
	require.NoError(t, err)
	assert.Contains(t, text, "manual working procedures")
	assert.Contains(t, text, "signal maintainer")
}

func TestRulesHighCongestionOnly(t *testing.T) {
	snap := snapshot.Snapshot{Zone: zoneWith(store.SignalNormal, store.PowerNormal, store.CongestionHigh)}

	text, err := NewRules().Suggest(context.Background(), snap, nil, "platform crowding reported")
	require.NoError(t, err)
	assert.Contains(t, text, "Hold freight")
	assert.Contains(t, text, "high-priority")
	assert.NotContains(t, text, "manual working")
	assert.NotContains(t, text, "traction power")
}

func TestRulesSignalMentionWithHealthySignals(t *testing.T) {
	snap := snapshot.Snapshot{Zone: zoneWith(store.SignalNormal, store.PowerNormal, store.CongestionLow)}

	text, err := NewRules().Suggest(context.Background(), snap, nil, "signal check requested")
	require.NoError(t, err)
	// Signals are normal, so the signal rule stays quiet and the generic
	// advice fires instead.
	assert.NotContains(t, text, "manual working")
	assert.Contains(t, text, "adjacent zones")
}

func TestRulesPowerIssue(t *testing.T) {
	snap := snapshot.Snapshot{Zone: zoneWith(store.SignalNormal, store.PowerTripped, store.CongestionLow)}

	text, err := NewRules().Suggest(context.Background(), snap, nil, "power tripped between stations")
	require.NoError(t, err)
	assert.Contains(t, text, "traction power controller")
	assert.Contains(t, text, "diesel locomotives")
}

func TestRulesDelayedVehicleCount(t *testing.T) {
	snap := snapshot.Snapshot{
		Zone: zoneWith(store.SignalNormal, store.PowerNormal, store.CongestionLow),
		Vehicles: []store.Vehicle{
			{Number: "A", Status: store.StatusDelayed},
			{Number: "B", Status: store.StatusOnTime},
			{Number: "C", Status: store.StatusDelayed},
		},
	}

	text, err := NewRules().Suggest(context.Background(), snap, nil, "general disruption")
	require.NoError(t, err)
	assert.Contains(t, text, "Address 2 delayed vehicles")
}

func TestRulesWeather(t *testing.T) {
	snap := snapshot.Snapshot{Zone: zoneWith(store.SignalNormal, store.PowerNormal, store.CongestionLow)}

	text, err := NewRules().Suggest(context.Background(), snap, nil, "severe weather approaching")
	require.NoError(t, err)
	assert.Contains(t, text, "speed restrictions")
	assert.Contains(t, text, "vigilance")
}

func TestRulesAllFiringRulesConcatenate(t *testing.T) {
	snap := snapshot.Snapshot{
		Zone: zoneWith(store.SignalFailure, store.PowerTripped, store.CongestionHigh),
		Vehicles: []store.Vehicle{
			{Number: "A", Status: store.StatusDelayed},
		},
	}

	text, err := NewRules().Suggest(context.Background(), snap, nil, "signal and power trouble in bad weather")
	require.NoError(t, err)
	// Not first-match-only: every firing rule contributes, in table order.
	signalIdx := strings.Index(text, "manual working")
	powerIdx := strings.Index(text, "traction power")
	congestionIdx := strings.Index(text, "Hold freight")
	delayedIdx := strings.Index(text, "delayed vehicles")
	weatherIdx := strings.Index(text, "speed restrictions")
	for _, idx := range []int{signalIdx, powerIdx, congestionIdx, delayedIdx, weatherIdx} {
		require.GreaterOrEqual(t, idx, 0)
	}
	assert.Less(t, signalIdx, powerIdx)
	assert.Less(t, powerIdx, congestionIdx)
	assert.Less(t, congestionIdx, delayedIdx)
	assert.Less(t, delayedIdx, weatherIdx)
}

func TestRulesGenericWhenNothingFires(t *testing.T) {
	snap := snapshot.Snapshot{Zone: zoneWith(store.SignalNormal, store.PowerNormal, store.CongestionLow)}

	text, err := NewRules().Suggest(context.Background(), snap, nil, "routine inspection question")
	require.NoError(t, err)
	assert.Contains(t, text, "Assess the situation")
	assert.Contains(t, text, "adjacent zones")
}

func TestRulesMissingZoneDegrades(t *testing.T) {
	text, err := NewRules().Suggest(context.Background(), snapshot.Snapshot{}, nil, "signal failure somewhere")
	require.NoError(t, err)
	// Zone-dependent rules stay quiet without zone data.
	assert.NotContains(t, text, "manual working")
	assert.Contains(t, text, "RULE-BASED SUGGESTIONS")
}

func TestRulesDeterministic(t *testing.T) {
	snap := snapshot.Snapshot{
		Zone: zoneWith(store.SignalFailure, store.PowerNormal, store.CongestionHigh),
		Vehicles: []store.Vehicle{
			{Number: "A", Status: store.StatusDelayed},
		},
	}
	first, err := NewRules().Suggest(context.Background(), snap, nil, "signal failure")
	require.NoError(t, err)
	second, err := NewRules().Suggest(context.Background(), snap, nil, "signal failure")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
