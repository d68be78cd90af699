package diagstore

import (
	"context"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/refline/internal/candidate"
	"github.com/banshee-data/refline/internal/geom"
	"github.com/banshee-data/refline/internal/profile"
	"github.com/banshee-data/refline/internal/refline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "diag.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_AppliesMigrations(t *testing.T) {
	s := openTestStore(t)
	version, dirty, err := s.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// Already at latest.
	require.NoError(t, s.MigrateUp())
}

func TestMigrateDown(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.MigrateDown())

	version, _, err := s.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)

	err = s.Record(context.Background(), candidate.Record{CycleID: "c"})
	assert.Error(t, err, "table should be gone")

	require.NoError(t, s.MigrateUp())
	require.NoError(t, s.Record(context.Background(), candidate.Record{CycleID: "c"}))
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []candidate.Record{
		{
			CycleID: "cycle-1", CandidateID: "keep", ComposeLatency: 3 * time.Millisecond,
			ObstacleLatency: time.Millisecond, Obstacles: 2, SkippedObstacles: 1,
			Points: 101, Cost: 1.25, Viable: true, CreatedAt: 10,
		},
		{
			CycleID: "cycle-1", CandidateID: "change", Points: 0,
			Truncated: "lateral_domain", Cost: math.Inf(1), CreatedAt: 20,
		},
		{CycleID: "cycle-2", CandidateID: "keep", CreatedAt: 30},
	}
	for _, r := range recs {
		require.NoError(t, s.Record(ctx, r))
	}

	got, err := s.ListByCycle(ctx, "cycle-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.NotEmpty(t, got[0].RecordID)
	assert.Equal(t, "keep", got[0].CandidateID)
	assert.Equal(t, 3*time.Millisecond, got[0].ComposeLatency)
	assert.Equal(t, time.Millisecond, got[0].ObstacleLatency)
	assert.Equal(t, 2, got[0].Obstacles)
	assert.Equal(t, 1, got[0].SkippedObstacles)
	assert.Equal(t, 101, got[0].Points)
	assert.Equal(t, 1.25, got[0].Cost)
	assert.True(t, got[0].Viable)

	assert.Equal(t, "change", got[1].CandidateID)
	assert.Equal(t, "lateral_domain", got[1].Truncated)
	assert.True(t, math.IsInf(got[1].Cost, 1))
	assert.False(t, got[1].Viable)

	none, err := s.ListByCycle(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_AsCandidateSink(t *testing.T) {
	s := openTestStore(t)
	ref, err := refline.Straight(geom.Vec{}, 0, 50, 1, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			c := candidate.New(id, ref, candidate.WithSink(s))
			if err := c.SetPathProfile([]profile.FrenetSample{{S: 0}, {S: 50}}); err != nil {
				t.Error(err)
				return
			}
			if err := c.SetSpeedProfile([]profile.SpeedSample{{T: 0, V: 2}, {T: 5, S: 10, V: 2}}); err != nil {
				t.Error(err)
				return
			}
			c.CombinePathAndSpeedProfile(0.5, 0)
			if err := c.Flush(context.Background(), "parallel"); err != nil {
				t.Error(err)
			}
		}(id)
	}
	wg.Wait()

	got, err := s.ListByCycle(context.Background(), "parallel")
	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, r := range got {
		assert.Equal(t, 11, r.Points)
		assert.True(t, r.Viable)
	}
}
