package models

import (
	"github.com/aukilabs/yggdrasil/geometry"
)

// Body is a point mass, the payload stored in a spatial index. Bodies
// are immutable once created; a body handed to a tree is owned by the
// tree from then on.
type Body struct {
	Mass     float32
	Location geometry.Point
}
