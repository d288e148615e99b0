package octree

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/yggdrasil/geometry"
	"github.com/aukilabs/yggdrasil/models"
)

const (
	// DefaultMaxDepth bounds how far below the root an insertion may
	// descend before it is rejected.
	DefaultMaxDepth = 64

	ErrTypeMaxDepthExceeded = "max_depth_exceeded"
	ErrTypeOutOfBounds      = "out_of_bounds"
)

// Node is one cell of the subdivision hierarchy. A node exclusively
// owns its subtree; it is created empty and mutated only by the
// owning tree's insert operation.
type Node struct {
	volume   geometry.Volume
	body     *models.Body
	children [8]*Node
}

// Volume returns the region of space the node covers.
func (n *Node) Volume() geometry.Volume {
	return n.volume
}

// Body returns the node's resident body and whether the node holds
// one.
func (n *Node) Body() (models.Body, bool) {
	if n.body == nil {
		return models.Body{}, false
	}
	return *n.body, true
}

// Child returns the child covering octant o, or nil when that octant
// was never materialized.
func (n *Node) Child(o geometry.Octant) *Node {
	return n.children[o]
}

// Children returns the node's child slots, indexed by octant.
func (n *Node) Children() [8]*Node {
	return n.children
}

func (n *Node) hasChildren() bool {
	for _, c := range n.children {
		if c != nil {
			return true
		}
	}
	return false
}

// Tree is an adaptive octree over point masses. Bodies are inserted
// one at a time and never move or leave afterwards; the tree is
// discarded as a whole when no longer needed.
//
// A tree is not safe for concurrent use.
type Tree struct {
	root        *Node
	maxDepth    int
	relocate    bool
	checkBounds bool

	bodyCount int
	nodeCount int
	depth     int
}

// Option configures a tree at creation.
type Option func(*Tree)

// WithMaxDepth sets how deep below the root an insertion may descend.
func WithMaxDepth(depth int) Option {
	return func(t *Tree) {
		t.maxDepth = depth
	}
}

// WithRelocation keeps at most one body per leaf: when an occupied
// leaf gains its first child, the resident body moves into its own
// octant instead of staying put. Without it a node keeps the body it
// first received and only newly arriving bodies descend.
func WithRelocation() Option {
	return func(t *Tree) {
		t.relocate = true
	}
}

// WithBoundsCheck makes insertions reject bodies located outside the
// root volume. Without it, classification is by midpoint comparison
// alone and an outside body is still stored somewhere in the tree.
func WithBoundsCheck() Option {
	return func(t *Tree) {
		t.checkBounds = true
	}
}

// New returns an empty tree whose root covers the given volume.
func New(volume geometry.Volume, opts ...Option) *Tree {
	t := &Tree{
		root:      &Node{volume: volume},
		maxDepth:  DefaultMaxDepth,
		nodeCount: 1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the tree's root node for read-only traversal.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of bodies stored in the tree.
func (t *Tree) Len() int {
	return t.bodyCount
}

// NodeCount returns the number of nodes materialized so far, the root
// included.
func (t *Tree) NodeCount() int {
	return t.nodeCount
}

// Depth returns the deepest level at which a body rests. The root is
// level 0.
func (t *Tree) Depth() int {
	return t.depth
}

// Insert routes b along its octant path and stores it at the first
// free node, lazily materializing one child per level as needed.
//
// The descent is bounded: a body that cannot come to rest within the
// tree's maximum depth is rejected with a max_depth_exceeded error
// instead of recursing forever, which is where coincident or
// precision-degenerate locations otherwise end up.
func (t *Tree) Insert(b models.Body) error {
	if t.checkBounds && !t.root.volume.Contains(b.Location) {
		err := errors.New("body is outside the indexed volume").
			WithType(ErrTypeOutOfBounds).
			WithTag("x", b.Location.X).
			WithTag("y", b.Location.Y).
			WithTag("z", b.Location.Z)
		instrumentInsertError(t.mode(), err)
		return err
	}

	n := t.root
	for depth := 0; ; depth++ {
		if n.body == nil && !n.hasChildren() {
			n.body = &b
			t.bodyCount++
			if depth > t.depth {
				t.depth = depth
			}
			instrumentInsert(t.mode(), depth)
			return nil
		}

		if depth == t.maxDepth {
			err := errors.New("body cannot rest within the maximum tree depth").
				WithType(ErrTypeMaxDepthExceeded).
				WithTag("max_depth", t.maxDepth).
				WithTag("x", b.Location.X).
				WithTag("y", b.Location.Y).
				WithTag("z", b.Location.Z)
			instrumentInsertError(t.mode(), err)
			return err
		}

		// An occupied leaf splitting under relocation sends its
		// resident one level down before the incoming body routes on.
		if t.relocate && n.body != nil {
			c := t.addChild(n, n.volume.OctantOf(n.body.Location))
			c.body = n.body
			n.body = nil
			if depth+1 > t.depth {
				t.depth = depth + 1
			}
		}

		o := n.volume.OctantOf(b.Location)
		c := n.children[o]
		if c == nil {
			c = t.addChild(n, o)
		}
		n = c
	}
}

// Walk visits nodes depth-first, parents before children. Returning
// false from visit skips the node's subtree.
func (t *Tree) Walk(visit func(n *Node, depth int) bool) {
	walk(t.root, 0, visit)
}

func walk(n *Node, depth int, visit func(*Node, int) bool) {
	if n == nil || !visit(n, depth) {
		return
	}
	for _, c := range n.children {
		walk(c, depth+1, visit)
	}
}

func (t *Tree) addChild(n *Node, o geometry.Octant) *Node {
	c := &Node{volume: n.volume.SubVolume(o)}
	n.children[o] = c
	t.nodeCount++
	instrumentNodeCreated(t.mode())
	return c
}

func (t *Tree) mode() string {
	if t.relocate {
		return "relocate"
	}
	return "retain"
}
