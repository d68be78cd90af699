package main

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/refline/internal/candidate"
	"github.com/banshee-data/refline/internal/config"
	"github.com/banshee-data/refline/internal/diagstore"
)

func loadDemo(t *testing.T) *Scenario {
	t.Helper()
	sc, err := LoadScenario(filepath.Join("testdata", "cycle.json"))
	require.NoError(t, err)
	return sc
}

func TestLoadScenario(t *testing.T) {
	sc := loadDemo(t)
	assert.Equal(t, "demo-001", sc.CycleID)
	assert.Len(t, sc.Candidates, 3)
	assert.Len(t, sc.Obstacles, 2)
	require.NotNil(t, sc.find("lane-change"))
	assert.Nil(t, sc.find("missing"))
}

func TestLoadScenario_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScenario(filepath.Join(dir, "cycle.yaml"))
	assert.Error(t, err)

	_, err = LoadScenario(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadScenario(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"cycle_id":"x"}`), 0o644))
	_, err = LoadScenario(empty)
	assert.Error(t, err)
}

func TestReferenceSpec_Build(t *testing.T) {
	lanes := (*LaneSpec)(nil).provider(config.EmptyTuningConfig())

	ref, err := ReferenceSpec{Kind: "arc", Heading: 0, Kappa: 0.02, Length: 20, Step: 0.5}.Build(lanes)
	require.NoError(t, err)
	assert.InDelta(t, 20, ref.Length(), 1e-9)

	ref, err = ReferenceSpec{Kind: "points", Points: [][2]float64{{0, 0}, {1, 0}, {2, 0}}}.Build(lanes)
	require.NoError(t, err)
	assert.InDelta(t, 2, ref.Length(), 1e-9)

	_, err = ReferenceSpec{Kind: "spiral"}.Build(lanes)
	assert.Error(t, err)

	left, right, err := ref.LaneHalfWidths(1)
	require.NoError(t, err)
	assert.Equal(t, 1.75, left)
	assert.Equal(t, 1.75, right)

	w := 5.25
	custom := (&LaneSpec{Left: &w}).provider(config.EmptyTuningConfig())
	left, right, err = custom.LaneHalfWidths(0)
	require.NoError(t, err)
	assert.Equal(t, 5.25, left)
	assert.Equal(t, 1.75, right)
}

func TestEvaluate_SelectsLaneChange(t *testing.T) {
	sc := loadDemo(t)
	res, err := Evaluate(context.Background(), sc, config.EmptyTuningConfig())
	require.NoError(t, err)
	require.Len(t, res.Candidates, 3)
	require.NotNil(t, res.Best)
	assert.Equal(t, "lane-change", res.Best.ID())
	assert.InDelta(t, 6.5, res.Best.Cost(), 1e-9)

	byID := map[string]*candidate.Candidate{}
	for _, c := range res.Candidates {
		byID[c.ID()] = c
	}

	keep := byID["lane-keep"]
	assert.Equal(t, 101, keep.Trajectory().Len())
	assert.Equal(t, 1, keep.PathDecision().Len(), "obstacle behind start is skipped")
	assert.Equal(t, 1, keep.Debug().SkippedObstacles)
	assert.True(t, keep.IsViable())

	change := byID["lane-change"]
	end, err := change.Trajectory().EndPoint()
	require.NoError(t, err)
	assert.InDelta(t, 3.5, end.Y, 1e-6)
	assert.True(t, change.IsOnLeftLane(end.Position()))

	broken := byID["broken"]
	assert.False(t, broken.IsViable())
	assert.True(t, math.IsInf(broken.Cost(), 1))
}

func TestEvaluate_WithDiagnosticsStore(t *testing.T) {
	store, err := diagstore.Open(filepath.Join(t.TempDir(), "diag.db"))
	require.NoError(t, err)
	defer store.Close()

	sc := loadDemo(t)
	_, err = Evaluate(context.Background(), sc, config.EmptyTuningConfig(), candidate.WithSink(store))
	require.NoError(t, err)

	recs, err := store.ListByCycle(context.Background(), "demo-001")
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestRender(t *testing.T) {
	sc := loadDemo(t)
	res, err := Evaluate(context.Background(), sc, config.EmptyTuningConfig())
	require.NoError(t, err)

	dir := t.TempDir()
	png := filepath.Join(dir, "plan.png")
	require.NoError(t, RenderPlan(png, sc, res))
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	html := filepath.Join(dir, "profiles.html")
	require.NoError(t, RenderProfiles(html, sc.CycleID, res))
	body, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "lane-change *"))
}
