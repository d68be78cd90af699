package obstacle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/refline/internal/geom"
)

func TestNewVirtual(t *testing.T) {
	o := NewVirtual("stop_wall_1", geom.Vec{X: 20, Y: 0}, 0.1, 4, 2)

	assert.True(t, o.Virtual)
	assert.Equal(t, "stop_wall_1", o.ID)
	assert.Equal(t, 2.0, o.Height)

	poly := o.Polygon()
	require.Len(t, poly, 4)
	assert.InDelta(t, 19.95, poly[0].X, 1e-12)
	assert.InDelta(t, -2, poly[0].Y, 1e-12)
	assert.InDelta(t, 20.05, poly[2].X, 1e-12)
	assert.InDelta(t, 2, poly[2].Y, 1e-12)
}

func TestDecisionAxes(t *testing.T) {
	tests := []struct {
		d            Decision
		lateral      bool
		longitudinal bool
	}{
		{DecisionNone, false, false},
		{DecisionIgnore, true, true},
		{DecisionStop, false, true},
		{DecisionYield, false, true},
		{DecisionFollow, false, true},
		{DecisionOvertake, false, true},
		{DecisionNudge, true, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.lateral, tt.d.IsLateral(), "%s lateral", tt.d)
		assert.Equal(t, tt.longitudinal, tt.d.IsLongitudinal(), "%s longitudinal", tt.d)
	}
	assert.Equal(t, "decision(42)", Decision(42).String())
}

func TestPathObstacle_Decisions(t *testing.T) {
	o := New("car_7", geom.NewBox2d(geom.Vec{X: 10}, 0, 4.5, 1.8), 1.5)
	b := geom.SLBoundary{StartS: 7.75, EndS: 12.25, StartL: -0.9, EndL: 0.9}
	p := NewPathObstacle(o, b)

	assert.Equal(t, "car_7", p.ID())
	assert.Same(t, o, p.Obstacle())
	assert.Equal(t, b, p.SLBoundary())
	assert.False(t, p.HasLateralDecision())
	assert.Equal(t, DecisionNone, p.LongitudinalDecision())

	require.NoError(t, p.AddLongitudinalDecision("st_graph", DecisionFollow))
	require.NoError(t, p.AddLongitudinalDecision("crosswalk", DecisionStop))
	require.NoError(t, p.AddLateralDecision("path_bounds", DecisionNudge))

	assert.ErrorIs(t, p.AddLateralDecision("bad", DecisionStop), ErrWrongAxis)
	assert.ErrorIs(t, p.AddLongitudinalDecision("bad", DecisionNudge), ErrWrongAxis)

	assert.Equal(t, DecisionStop, p.LongitudinalDecision())
	assert.Equal(t, DecisionNudge, p.LateralDecision())

	lat, lon := p.Decisions()
	want := []TaggedDecision{
		{Tag: "st_graph", Decision: DecisionFollow},
		{Tag: "crosswalk", Decision: DecisionStop},
	}
	if diff := cmp.Diff(want, lon); diff != "" {
		t.Errorf("longitudinal decisions mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, lat, 1)

	// Returned history is a copy.
	lon[0].Decision = DecisionIgnore
	_, again := p.Decisions()
	assert.Equal(t, DecisionFollow, again[0].Decision)
}

func TestPathDecision_Ledger(t *testing.T) {
	d := NewPathDecision()
	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Find("missing"))

	for _, id := range []string{"b", "c", "a"} {
		d.Add(NewPathObstacle(New(id, geom.Box2d{}, 1), geom.SLBoundary{}))
	}
	assert.Equal(t, 3, d.Len())

	var ids []string
	for _, p := range d.Obstacles() {
		ids = append(ids, p.ID())
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, d.SetLongitudinalDecision("speed", "a", DecisionYield))
	require.NoError(t, d.SetLateralDecision("path", "b", DecisionIgnore))
	assert.Equal(t, DecisionYield, d.Find("a").LongitudinalDecision())
	assert.Equal(t, DecisionIgnore, d.Find("b").LateralDecision())

	assert.ErrorIs(t, d.SetLateralDecision("path", "zzz", DecisionNudge), ErrUnknownObstacle)
	assert.ErrorIs(t, d.SetLongitudinalDecision("speed", "zzz", DecisionStop), ErrUnknownObstacle)
}
