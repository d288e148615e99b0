package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntervalMidpoint(t *testing.T) {
	require.Equal(t, 512.0, Interval{Start: 0, End: 1024}.Midpoint())
	require.Equal(t, 0.0, Interval{Start: -8, End: 8}.Midpoint())
	require.Equal(t, 2.5, Interval{Start: 2, End: 3}.Midpoint())

	// degenerate interval collapses onto its single value
	require.Equal(t, 7.0, Interval{Start: 7, End: 7}.Midpoint())
}

func TestIntervalContains(t *testing.T) {
	i := Interval{Start: 0, End: 1024}

	require.True(t, i.Contains(0))
	require.True(t, i.Contains(1023.999))
	require.False(t, i.Contains(1024))
	require.False(t, i.Contains(-0.001))
}
