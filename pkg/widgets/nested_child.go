package widgets

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
	"github.com/go-drift/nestedscroll/pkg/physics"
)

// NestedChild is a vertical scrollable that shares its motion with the
// nested scroll parents above it. Deltas are in scroll direction: positive
// values move the content toward its end.
type NestedChild struct {
	scene    *Scene
	self     nestedscroll.Node
	nested   *nestedscroll.Initiator
	position *ScrollPosition
	// dragRemainder holds sub-pixel drag motion not yet dispatched.
	dragRemainder fixed.Int26_6
	fling         *childFling
}

type childFling struct {
	motion    physics.Motion
	remainder fixed.Int26_6
}

// NewChild binds a NestedChild to n. The child can scroll content-viewport
// pixels.
func (s *Scene) NewChild(n nestedscroll.Node, viewport, content int) (*NestedChild, error) {
	c := &NestedChild{scene: s, self: n}
	in, err := s.bind("widgets.NewChild", n, c.stopFling)
	if err != nil {
		return nil, err
	}
	c.nested = in
	c.position = NewScrollPosition(func(delta int) { s.shiftChildren(n, delta) })
	c.position.SetExtents(0, contentExtent(viewport, content))
	s.children[n] = c
	return c, nil
}

// Node returns the tree node of the child.
func (c *NestedChild) Node() nestedscroll.Node {
	return c.self
}

// Position returns the child's own scroll position.
func (c *NestedChild) Position() *ScrollPosition {
	return c.position
}

// Initiator exposes the child's side of the protocol, e.g. to disable it.
func (c *NestedChild) Initiator() *nestedscroll.Initiator {
	return c.nested
}

// IsFlinging reports whether the child runs a fling.
func (c *NestedChild) IsFlinging() bool {
	return c.fling != nil
}

// DragStart begins a user drag. Any running fling stops. It reports whether
// a parent cooperates with the drag.
func (c *NestedChild) DragStart() bool {
	c.stopFling()
	c.dragRemainder = 0
	return c.nested.StartGesture(nestedscroll.AxisVertical, nestedscroll.User)
}

// DragUpdate applies a drag step of delta pixels and returns how many whole
// pixels the child itself scrolled.
func (c *NestedChild) DragUpdate(delta float64) int {
	c.dragRemainder += toFixed(delta)
	dy := c.dragRemainder.Round()
	c.dragRemainder -= fixed.I(dy)
	applied, _ := c.scrollStep(dy, nestedscroll.User)
	return applied
}

// DragEnd finishes a drag released at velocity px/s. Parents get the first
// chance at the fling; otherwise the child flings itself when it can.
func (c *NestedChild) DragEnd(velocity float64) {
	if velocity != 0 && !c.nested.DispatchPreFling(0, velocity) {
		canFling := c.position.CanScroll(sign(velocity))
		c.nested.DispatchFling(0, velocity, canFling)
		if canFling {
			c.Fling(velocity)
		}
	}
	c.nested.StopGesture(nestedscroll.User)
}

// Fling starts an inertial scroll at velocity px/s. Each frame is shared
// with the parents as programmatic motion.
func (c *NestedChild) Fling(velocity float64) {
	c.stopFling()
	if math.Abs(velocity) < physics.MinVelocity {
		return
	}
	c.flingWith(physics.NewBallistic(velocity))
}

// flingWith runs m as the child's fling.
func (c *NestedChild) flingWith(m physics.Motion) {
	c.stopFling()
	if m.Done() {
		return
	}
	c.nested.StartGesture(nestedscroll.AxisVertical, nestedscroll.Programmatic)
	c.fling = &childFling{motion: m}
	c.scene.startFling(c)
}

// scrollStep runs one pre-scroll/scroll round for dy and returns what the
// child applied and what the parents took in total.
func (c *NestedChild) scrollStep(dy int, class nestedscroll.GestureClass) (applied, parents int) {
	if dy == 0 {
		return 0, 0
	}
	var consumed image.Point
	if c.nested.DispatchPreScroll(0, dy, &consumed, nil, class) {
		dy -= consumed.Y
		parents += consumed.Y
	}
	applied = c.position.ScrollBy(dy)
	var taken image.Point
	c.nested.DispatchScroll(0, applied, 0, dy-applied, nil, class, &taken)
	return applied, parents + taken.Y
}

func (c *NestedChild) node() nestedscroll.Node {
	return c.self
}

func (c *NestedChild) stepFling(dt float64) {
	f := c.fling
	if f == nil {
		return
	}
	delta, done := f.motion.Step(dt)
	f.remainder += toFixed(delta)
	dy := f.remainder.Round()
	f.remainder -= fixed.I(dy)
	applied, parents := c.scrollStep(dy, nestedscroll.Programmatic)
	if done || (dy != 0 && applied == 0 && parents == 0) {
		c.stopFling()
	}
}

func (c *NestedChild) stopFling() {
	if c.fling == nil {
		return
	}
	c.fling.motion.Stop()
	c.fling = nil
	c.scene.endFling(c)
	c.nested.StopGesture(nestedscroll.Programmatic)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
