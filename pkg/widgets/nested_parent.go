package widgets

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
	"github.com/go-drift/nestedscroll/pkg/physics"
)

// NestedParent is a vertical scrollable that contains nested children and
// scrolls ahead of them: downward motion goes to the parent until it reaches
// its end, and upward motion comes back to it once the child is at its top.
//
// A NestedParent is itself an initiator, so parents can nest inside parents;
// motion it cannot use is passed further up.
type NestedParent struct {
	nestedscroll.Acceptor

	scene    *Scene
	self     nestedscroll.Node
	nested   *nestedscroll.Initiator
	position *ScrollPosition
	fling    *parentFling
}

type parentFling struct {
	motion    *physics.SplineMotion
	remainder fixed.Int26_6
	start     float64
	// applied is how far the parent actually scrolled.
	applied int
	// handOff is the child that receives what is left of the fling when
	// the parent reaches its end.
	handOff nestedscroll.Node
}

// NewParent binds a NestedParent to n and registers it as n's nested scroll
// hook.
func (s *Scene) NewParent(n nestedscroll.Node, viewport, content int) (*NestedParent, error) {
	p := &NestedParent{scene: s, self: n}
	in, err := s.bind("widgets.NewParent", n, p.stopFling)
	if err != nil {
		return nil, err
	}
	if err := s.Tree.SetParentHook(n, p); err != nil {
		return nil, err
	}
	p.nested = in
	p.position = NewScrollPosition(func(delta int) { s.shiftChildren(n, delta) })
	p.position.SetExtents(0, contentExtent(viewport, content))
	s.parents[n] = p
	return p, nil
}

// Node returns the tree node of the parent.
func (p *NestedParent) Node() nestedscroll.Node {
	return p.self
}

// Position returns the parent's scroll position.
func (p *NestedParent) Position() *ScrollPosition {
	return p.position
}

// Initiator exposes the parent's own initiator side.
func (p *NestedParent) Initiator() *nestedscroll.Initiator {
	return p.nested
}

// IsFlinging reports whether the parent runs a fling.
func (p *NestedParent) IsFlinging() bool {
	return p.fling != nil
}

// TryAccept cooperates on vertical motion from nested children and from
// nested parents below it.
func (p *NestedParent) TryAccept(child, originator nestedscroll.Node, axes nestedscroll.Axis, class nestedscroll.GestureClass) bool {
	if !axes.Has(nestedscroll.AxisVertical) {
		return false
	}
	_, isChild := p.scene.Child(originator)
	_, isParent := p.scene.Parent(originator)
	return isChild || isParent
}

// OnAccepted records the axes and joins its own parents for the same class.
func (p *NestedParent) OnAccepted(child, originator nestedscroll.Node, axes nestedscroll.Axis, class nestedscroll.GestureClass) {
	p.Acceptor.OnAccepted(child, originator, axes, class)
	if class == nestedscroll.User {
		p.stopFling()
	}
	p.nested.StartGesture(axes, class)
}

// OnStopped clears the axes and relays the stop one level up.
func (p *NestedParent) OnStopped(originator nestedscroll.Node, class nestedscroll.GestureClass) {
	p.Acceptor.OnStopped(originator, class)
	if class == nestedscroll.User {
		p.nested.OnChildStopped(originator)
		return
	}
	p.nested.StopGesture(class)
}

// OnNestedPreScroll takes downward motion until the parent's end, after
// outer parents had their turn. Upward motion is taken only once the
// originator sits at its top, and what the parent cannot use is offered to
// outer parents.
func (p *NestedParent) OnNestedPreScroll(originator nestedscroll.Node, dx, dy int, class nestedscroll.GestureClass, consumed *image.Point) {
	switch {
	case dy > 0:
		var outer image.Point
		if p.nested.DispatchPreScroll(dx, dy, &outer, nil, class) {
			dy -= outer.Y
		}
		consumed.Y = outer.Y + p.position.ScrollBy(dy)
	case dy < 0:
		if !p.scene.atStart(originator) {
			return
		}
		taken := p.position.ScrollBy(dy)
		var outer image.Point
		if rest := dy - taken; rest != 0 {
			p.nested.DispatchPreScroll(dx, rest, &outer, nil, class)
		}
		consumed.Y = taken + outer.Y
	}
}

// OnNestedScroll applies what the originator left over and passes the rest
// up.
func (p *NestedParent) OnNestedScroll(originator nestedscroll.Node, dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, class nestedscroll.GestureClass, consumed *image.Point) {
	applied := p.position.ScrollBy(dyUnconsumed)
	consumed.Y += applied
	p.nested.DispatchScroll(0, applied, dxUnconsumed, dyUnconsumed-applied, nil, class, consumed)
}

// OnNestedPreFling takes a fling toward the parent's end while the parent
// can still move; the rest of it is handed back to originator.
func (p *NestedParent) OnNestedPreFling(originator nestedscroll.Node, vx, vy float64) bool {
	if p.nested.DispatchPreFling(vx, vy) {
		return true
	}
	if vy <= 0 || p.position.AtEnd() {
		return false
	}
	p.Fling(vy, originator)
	return true
}

// OnNestedFling flings the parent when the originator could not.
func (p *NestedParent) OnNestedFling(originator nestedscroll.Node, vx, vy float64, consumed bool) bool {
	if !consumed && p.position.CanScroll(sign(vy)) {
		p.Fling(vy, nestedscroll.NoNode)
		return true
	}
	return p.nested.DispatchFling(vx, vy, consumed)
}

// Fling starts an inertial scroll at velocity px/s along the scene's spline
// model. When handOff is a nested child and the parent reaches its end
// first, the distance the parent did not scroll is converted back into a
// fling for that child.
func (p *NestedParent) Fling(velocity float64, handOff nestedscroll.Node) {
	p.stopFling()
	if math.Abs(velocity) < physics.MinVelocity {
		return
	}
	p.fling = &parentFling{
		motion:  p.scene.Spline.Start(velocity),
		start:   velocity,
		handOff: handOff,
	}
	p.scene.startFling(p)
}

func (p *NestedParent) node() nestedscroll.Node {
	return p.self
}

func (p *NestedParent) stepFling(dt float64) {
	f := p.fling
	if f == nil {
		return
	}
	delta, done := f.motion.Step(dt)
	f.remainder += toFixed(delta)
	dy := f.remainder.Round()
	f.remainder -= fixed.I(dy)
	applied := p.position.ScrollBy(dy)
	f.applied += applied
	if done {
		p.stopFling()
		return
	}
	if applied != dy {
		p.stopFling()
		p.handOffFling(f)
	}
}

// handOffFling gives the child the part of the fling distance the parent
// did not scroll. The child's fling follows the same spline, so it covers
// exactly that distance.
func (p *NestedParent) handOffFling(f *parentFling) {
	c, ok := p.scene.Child(f.handOff)
	if !ok || f.start <= 0 {
		return
	}
	remaining := f.motion.Distance() - float64(f.applied)
	if remaining <= 0 {
		return
	}
	c.flingWith(p.scene.Spline.Start(p.scene.Spline.Velocity(remaining)))
}

func (p *NestedParent) stopFling() {
	if p.fling == nil {
		return
	}
	p.fling.motion.Stop()
	p.fling = nil
	p.scene.endFling(p)
}

var _ nestedscroll.Parent = (*NestedParent)(nil)
