package octree

import (
	"github.com/aukilabs/yggdrasil/geometry"
	"github.com/aukilabs/yggdrasil/models"
)

// Build constructs a tree over the given volume and inserts bodies
// one at a time, in slice order. It stops at the first failed
// insertion and returns the partially built tree together with that
// insertion's error, so callers can still inspect what was stored.
func Build(volume geometry.Volume, bodies []models.Body, opts ...Option) (*Tree, error) {
	t := New(volume, opts...)
	for _, b := range bodies {
		if err := t.Insert(b); err != nil {
			return t, err
		}
	}
	return t, nil
}
