package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCube(t *testing.T) {
	v := Cube(0, 1024)

	require.Equal(t, Interval{Start: 0, End: 1024}, v.X)
	require.Equal(t, Interval{Start: 0, End: 1024}, v.Y)
	require.Equal(t, Interval{Start: 0, End: 1024}, v.Z)
}

func TestVolumeSplit(t *testing.T) {
	v := Volume{
		X: Interval{Start: 0, End: 1024},
		Y: Interval{Start: -16, End: 16},
		Z: Interval{Start: 100, End: 200},
	}
	sub := v.Split()

	lower := map[Interval]Interval{
		v.X: {Start: 0, End: 512},
		v.Y: {Start: -16, End: 0},
		v.Z: {Start: 100, End: 150},
	}
	upper := map[Interval]Interval{
		v.X: {Start: 512, End: 1024},
		v.Y: {Start: 0, End: 16},
		v.Z: {Start: 150, End: 200},
	}

	for o := Octant(0); o < OctantCount; o++ {
		expect := Volume{X: lower[v.X], Y: lower[v.Y], Z: lower[v.Z]}
		if o&1 != 0 {
			expect.X = upper[v.X]
		}
		if o&2 != 0 {
			expect.Y = upper[v.Y]
		}
		if o&4 != 0 {
			expect.Z = upper[v.Z]
		}
		require.Equal(t, expect, sub[o], "octant %d", o)
	}

	t.Run("octants tile the volume", func(t *testing.T) {
		// lower and upper halves share the midpoint and together
		// cover the parent extents on every axis.
		require.Equal(t, v.X.Start, sub[0].X.Start)
		require.Equal(t, v.X.End, sub[7].X.End)
		require.Equal(t, sub[0].X.End, sub[1].X.Start)
		require.Equal(t, v.Y.Start, sub[0].Y.Start)
		require.Equal(t, v.Y.End, sub[7].Y.End)
		require.Equal(t, sub[0].Y.End, sub[2].Y.Start)
		require.Equal(t, v.Z.Start, sub[0].Z.Start)
		require.Equal(t, v.Z.End, sub[7].Z.End)
		require.Equal(t, sub[0].Z.End, sub[4].Z.Start)
	})
}

func TestVolumeOctantOf(t *testing.T) {
	v := Cube(0, 1024)

	tests := []struct {
		point  Point
		octant Octant
	}{
		{Point{X: 100, Y: 100, Z: 100}, 0},
		{Point{X: 900, Y: 100, Z: 100}, 1},
		{Point{X: 100, Y: 900, Z: 100}, 2},
		{Point{X: 900, Y: 900, Z: 100}, 3},
		{Point{X: 100, Y: 100, Z: 900}, 4},
		{Point{X: 900, Y: 100, Z: 900}, 5},
		{Point{X: 100, Y: 900, Z: 900}, 6},
		{Point{X: 900, Y: 900, Z: 900}, 7},
	}

	for _, test := range tests {
		require.Equal(t, test.octant, v.OctantOf(test.point))
	}

	t.Run("midpoint belongs to the upper half", func(t *testing.T) {
		require.Equal(t, Octant(7), v.OctantOf(Point{X: 512, Y: 512, Z: 512}))
	})

	t.Run("classification is total", func(t *testing.T) {
		require.Equal(t, Octant(0), v.OctantOf(Point{X: -5000, Y: -5000, Z: -5000}))
		require.Equal(t, Octant(7), v.OctantOf(Point{X: 5000, Y: 5000, Z: 5000}))
	})

	t.Run("classification agrees with split", func(t *testing.T) {
		sub := v.Split()
		for o := Octant(0); o < OctantCount; o++ {
			center := Point{
				X: sub[o].X.Midpoint(),
				Y: sub[o].Y.Midpoint(),
				Z: sub[o].Z.Midpoint(),
			}
			require.Equal(t, o, v.OctantOf(center))
			require.True(t, sub[o].Contains(center))
		}
	})
}

func TestVolumeContains(t *testing.T) {
	v := Cube(0, 1024)

	require.True(t, v.Contains(Point{X: 0, Y: 0, Z: 0}))
	require.True(t, v.Contains(Point{X: 512, Y: 512, Z: 512}))
	require.False(t, v.Contains(Point{X: 1024, Y: 512, Z: 512}))
	require.False(t, v.Contains(Point{X: 512, Y: -1, Z: 512}))
}
