package widgets

import (
	"image"
	"maps"
	"slices"
	"time"

	"github.com/go-drift/nestedscroll/pkg/errors"
	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
	"github.com/go-drift/nestedscroll/pkg/physics"
	"github.com/go-drift/nestedscroll/pkg/viewtree"
)

// flinger is a scrollable with a running fling.
type flinger interface {
	node() nestedscroll.Node
	stepFling(dt float64)
	stopFling()
}

// Scene binds nested scroll widgets to the tree that contains them and
// drives their flings. Like the tree, it must only be used from the goroutine
// that owns the UI.
type Scene struct {
	Tree   *viewtree.Tree
	Spline physics.SplineFling

	children map[nestedscroll.Node]*NestedChild
	parents  map[nestedscroll.Node]*NestedParent
	flinging map[nestedscroll.Node]flinger
}

// NewScene creates a scene over tree. spline drives parent flings and the
// hand-off of their leftover distance.
func NewScene(tree *viewtree.Tree, spline physics.SplineFling) *Scene {
	return &Scene{
		Tree:     tree,
		Spline:   spline,
		children: make(map[nestedscroll.Node]*NestedChild),
		parents:  make(map[nestedscroll.Node]*NestedParent),
		flinging: make(map[nestedscroll.Node]flinger),
	}
}

// Child returns the NestedChild bound to n.
func (s *Scene) Child(n nestedscroll.Node) (*NestedChild, bool) {
	c, ok := s.children[n]
	return c, ok
}

// Parent returns the NestedParent bound to n.
func (s *Scene) Parent(n nestedscroll.Node) (*NestedParent, bool) {
	p, ok := s.parents[n]
	return p, ok
}

// HasActiveFlings reports whether any fling is running.
func (s *Scene) HasActiveFlings() bool {
	return len(s.flinging) > 0
}

// Step advances every running fling by dt, in node order.
func (s *Scene) Step(dt time.Duration) {
	if len(s.flinging) == 0 {
		return
	}
	seconds := dt.Seconds()
	for _, n := range slices.Sorted(maps.Keys(s.flinging)) {
		// A fling started during this step waits for the next one.
		if f, ok := s.flinging[n]; ok {
			f.stepFling(seconds)
		}
	}
}

// Settle steps flings at 60 frames per second until none are left or
// maxFrames have run. It returns the number of frames stepped.
func (s *Scene) Settle(maxFrames int) int {
	frames := 0
	for s.HasActiveFlings() && frames < maxFrames {
		s.Step(time.Second / 60)
		frames++
	}
	return frames
}

func (s *Scene) startFling(f flinger) {
	if prev, ok := s.flinging[f.node()]; ok && prev != f {
		prev.stopFling()
	}
	s.flinging[f.node()] = f
}

func (s *Scene) endFling(f flinger) {
	if cur, ok := s.flinging[f.node()]; ok && cur == f {
		delete(s.flinging, f.node())
	}
}

// bind registers the shared lifecycle of a nested widget: an enabled
// initiator that stops on detach, and removal from the scene.
func (s *Scene) bind(op string, n nestedscroll.Node, onDetach func()) (*nestedscroll.Initiator, error) {
	if !s.Tree.Contains(n) {
		return nil, &errors.ScrollError{Op: op, Kind: errors.KindTree, Node: uint32(n), Err: viewtree.ErrUnknownNode}
	}
	if _, taken := s.children[n]; taken {
		return nil, &errors.ScrollError{Op: op, Kind: errors.KindTree, Node: uint32(n), Err: errNodeBound}
	}
	if _, taken := s.parents[n]; taken {
		return nil, &errors.ScrollError{Op: op, Kind: errors.KindTree, Node: uint32(n), Err: errNodeBound}
	}
	in := nestedscroll.NewInitiator(s.Tree, n)
	in.SetEnabled(true)
	if _, err := s.Tree.OnDetach(n, func() {
		onDetach()
		in.OnDetached()
		delete(s.children, n)
		delete(s.parents, n)
	}); err != nil {
		return nil, err
	}
	return in, nil
}

// shiftChildren moves the tree children of n by -delta on y, keeping their
// on-screen positions in step with n's scroll offset.
func (s *Scene) shiftChildren(n nestedscroll.Node, delta int) {
	for _, c := range s.Tree.Children(n) {
		s.Tree.SetOffset(c, s.Tree.Offset(c).Sub(image.Pt(0, delta)))
	}
}

// atStart reports whether the scene widget bound to n is scrolled to its top.
// Nodes without a widget count as being at their top.
func (s *Scene) atStart(n nestedscroll.Node) bool {
	if c, ok := s.children[n]; ok {
		return c.position.AtStart()
	}
	if p, ok := s.parents[n]; ok {
		return p.position.AtStart()
	}
	return true
}
