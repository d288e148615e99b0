package models

import (
	"testing"

	"github.com/aukilabs/yggdrasil/geometry"
	"github.com/stretchr/testify/require"
)

func TestBodyGenerator(t *testing.T) {
	volume := geometry.Cube(0, 1024)

	t.Run("bodies fall inside the volume", func(t *testing.T) {
		g := NewBodyGenerator(42, volume)

		for _, b := range g.Bodies(256) {
			require.True(t, volume.Contains(b.Location))
			require.GreaterOrEqual(t, b.Mass, float32(0))
			require.Less(t, b.Mass, float32(1))
		}
	})

	t.Run("same seed yields the same sequence", func(t *testing.T) {
		a := NewBodyGenerator(1313131313, volume)
		b := NewBodyGenerator(1313131313, volume)

		require.Equal(t, a.Bodies(64), b.Bodies(64))
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		a := NewBodyGenerator(1, volume)
		b := NewBodyGenerator(2, volume)

		require.NotEqual(t, a.Bodies(64), b.Bodies(64))
	})

	t.Run("batches continue the sequence", func(t *testing.T) {
		a := NewBodyGenerator(7, volume)
		b := NewBodyGenerator(7, volume)

		var split []Body
		split = append(split, a.Bodies(5)...)
		split = append(split, a.Bodies(3)...)

		require.Equal(t, b.Bodies(8), split)
	})

	t.Run("asymmetric volumes are sampled per axis", func(t *testing.T) {
		narrow := geometry.Volume{
			X: geometry.Interval{Start: -1, End: 1},
			Y: geometry.Interval{Start: 100, End: 200},
			Z: geometry.Interval{Start: 0, End: 0.5},
		}
		g := NewBodyGenerator(9, narrow)

		for _, b := range g.Bodies(128) {
			require.True(t, narrow.Contains(b.Location))
		}
	})
}
