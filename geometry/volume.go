package geometry

// Octant addresses one of the 8 sub-volumes of a Volume. The index
// packs the per-axis halves into three bits: bit 0 is set when a
// position is in the upper half of the X axis, bit 1 for Y, bit 2 for
// Z. Split and OctantOf share the encoding, so Split()[v.OctantOf(p)]
// is the sub-volume p lands in.
type Octant uint8

const OctantCount = 8

type Volume struct {
	X Interval
	Y Interval
	Z Interval
}

// Cube returns a volume spanning the same interval on every axis.
func Cube(start, end float64) Volume {
	i := Interval{Start: start, End: end}
	return Volume{X: i, Y: i, Z: i}
}

// Split subdivides the volume into its 8 octants at the axis
// midpoints. The octants tile the volume exactly, sharing only
// boundary faces.
func (v Volume) Split() [OctantCount]Volume {
	var sub [OctantCount]Volume
	for o := Octant(0); o < OctantCount; o++ {
		sub[o] = v.SubVolume(o)
	}
	return sub
}

// SubVolume returns the octant o of the volume.
func (v Volume) SubVolume(o Octant) Volume {
	return Volume{
		X: half(v.X, o&1 != 0),
		Y: half(v.Y, o&2 != 0),
		Z: half(v.Z, o&4 != 0),
	}
}

func half(i Interval, upper bool) Interval {
	mid := i.Midpoint()
	if upper {
		return Interval{Start: mid, End: i.End}
	}
	return Interval{Start: i.Start, End: mid}
}

// OctantOf classifies p against the volume's axis midpoints:
// strictly below a midpoint selects the lower half, anything else the
// upper half. The classification is total: every point maps to exactly
// one octant, whether or not it is inside the volume.
func (v Volume) OctantOf(p Point) Octant {
	var o Octant
	if p.X >= v.X.Midpoint() {
		o |= 1
	}
	if p.Y >= v.Y.Midpoint() {
		o |= 2
	}
	if p.Z >= v.Z.Midpoint() {
		o |= 4
	}
	return o
}

// Contains reports whether p falls within the volume on all three
// axes.
func (v Volume) Contains(p Point) bool {
	return v.X.Contains(p.X) && v.Y.Contains(p.Y) && v.Z.Contains(p.Z)
}
