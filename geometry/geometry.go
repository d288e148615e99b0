package geometry

// Point is a location in 3D space.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Interval is a range on a single axis. Start <= End is assumed, not
// enforced.
type Interval struct {
	Start float64
	End   float64
}

// Midpoint returns the arithmetic mean of the interval bounds.
func (i Interval) Midpoint() float64 {
	return (i.Start + i.End) / 2
}

// Contains reports whether v falls within [Start, End).
func (i Interval) Contains(v float64) bool {
	return v >= i.Start && v < i.End
}
