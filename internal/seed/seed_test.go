package seed

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"railops/internal/history"
	"railops/internal/store"
)

func TestPopulate(t *testing.T) {
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, Populate(s, zap.NewNop()))

	zones, err := s.Zones()
	require.NoError(t, err)
	assert.Len(t, zones, 3)

	vehicles, err := s.TopVehicles(100)
	require.NoError(t, err)
	assert.Len(t, vehicles, 15)

	// Historical decisions are searchable right after seeding.
	matches, err := history.NewMatcher(s, zap.NewNop()).SearchByKeywords([]string{"signal"}, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func TestPopulateIsRepeatable(t *testing.T) {
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, Populate(s, zap.NewNop()))
	require.NoError(t, Populate(s, zap.NewNop()))

	zones, err := s.Zones()
	require.NoError(t, err)
	assert.Len(t, zones, 3, "reseeding must not duplicate data")
}
