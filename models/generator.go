package models

import (
	"math/rand"

	"github.com/aukilabs/yggdrasil/geometry"
)

// BodyGenerator produces pseudo-random bodies spread uniformly over a
// volume. It owns its random source, so two generators created with
// the same seed and volume yield the same sequence.
type BodyGenerator struct {
	rand   *rand.Rand
	volume geometry.Volume
}

func NewBodyGenerator(seed int64, volume geometry.Volume) *BodyGenerator {
	return &BodyGenerator{
		rand:   rand.New(rand.NewSource(seed)),
		volume: volume,
	}
}

// Body returns the next body in the sequence. The mass is in [0, 1),
// the location uniform over the generator volume.
func (g *BodyGenerator) Body() Body {
	b := Body{
		Mass: g.rand.Float32(),
		Location: geometry.Point{
			X: g.sample(g.volume.X),
			Y: g.sample(g.volume.Y),
			Z: g.sample(g.volume.Z),
		},
	}
	instrumentGeneratedBody()
	return b
}

// Bodies returns the next n bodies in the sequence.
func (g *BodyGenerator) Bodies(n int) []Body {
	bodies := make([]Body, n)
	for i := range bodies {
		bodies[i] = g.Body()
	}
	return bodies
}

func (g *BodyGenerator) sample(i geometry.Interval) float64 {
	return i.Start + g.rand.Float64()*(i.End-i.Start)
}
