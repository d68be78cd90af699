package trajectory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrajectory() *Discretized {
	return NewDiscretized([]Point{
		{T: 0, X: 0, V: 1, S: 0},
		{T: 1, X: 1, V: 2, S: 1},
		{T: 2, X: 3, V: 3, S: 3},
	})
}

func TestDiscretized_Empty(t *testing.T) {
	var d *Discretized
	assert.Equal(t, 0, d.Len())
	assert.True(t, d.Empty())
	assert.Nil(t, d.Points())

	_, err := d.StartPoint()
	assert.ErrorIs(t, err, ErrEmptyTrajectory)
	_, err = NewDiscretized(nil).Evaluate(1)
	assert.ErrorIs(t, err, ErrEmptyTrajectory)
	assert.Equal(t, -1, NewDiscretized(nil).NearestIndex(0))
}

func TestDiscretized_Evaluate(t *testing.T) {
	d := sampleTrajectory()

	got, err := d.Evaluate(1.5)
	require.NoError(t, err)
	want := Point{T: 1.5, X: 2, V: 2.5, S: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate(1.5) mismatch (-want +got):\n%s", diff)
	}

	got, err = d.Evaluate(-1)
	require.NoError(t, err)
	assert.Equal(t, d.At(0), got)

	got, err = d.Evaluate(9)
	require.NoError(t, err)
	assert.Equal(t, d.At(2), got)
}

func TestDiscretized_Accessors(t *testing.T) {
	d := sampleTrajectory()
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 2.0, d.Duration())
	assert.InDelta(t, 3, d.Length(), 1e-12)
	assert.Equal(t, 1, d.NearestIndex(0.5))
	assert.Equal(t, 2, d.NearestIndex(99))

	pts := d.Points()
	pts[0].X = 42
	assert.Equal(t, 0.0, d.At(0).X, "Points returns a copy")
	assert.Contains(t, d.At(1).String(), "t=1.000 x=1.000")
}
