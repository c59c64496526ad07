package nestedscroll

import (
	"fmt"
	"image"

	"github.com/go-drift/nestedscroll/pkg/errors"
)

// Initiator is the scroll-source half of the protocol. An element that
// produces scroll motion holds one and forwards its nested scroll calls to it.
//
// An Initiator starts disabled. The zero value is not usable; create one with
// [NewInitiator].
type Initiator struct {
	tree    Tree
	self    Node
	enabled bool
	// active holds the bound acceptor per class, NoNode while idle.
	active  [numClasses]Node
	scratch image.Point
}

// NewInitiator creates an Initiator for the element self living in tree.
func NewInitiator(tree Tree, self Node) *Initiator {
	return &Initiator{tree: tree, self: self}
}

// Node returns the element this Initiator belongs to.
func (in *Initiator) Node() Node {
	return in.self
}

// Enabled reports whether the element takes part in nested scrolling.
func (in *Initiator) Enabled() bool {
	return in.enabled
}

// SetEnabled turns participation on or off. Disabling an enabled Initiator
// stops both gesture classes first, notifying the active acceptors.
// Enabling an already enabled Initiator leaves running gestures untouched.
func (in *Initiator) SetEnabled(enabled bool) {
	if in.enabled == enabled {
		return
	}
	if in.enabled {
		in.stopAll()
	}
	in.enabled = enabled
}

// HasActiveAcceptor reports whether an acceptor is bound for class.
func (in *Initiator) HasActiveAcceptor(class GestureClass) bool {
	_, ok := in.ActiveAcceptor(class)
	return ok
}

// ActiveAcceptor returns the acceptor bound for class.
func (in *Initiator) ActiveAcceptor(class GestureClass) (Node, bool) {
	if !class.Valid() {
		return NoNode, false
	}
	n := in.active[class]
	return n, n != NoNode
}

// StartGesture looks for an ancestor willing to cooperate on axes for class.
// Ancestors are asked nearest first and the first to accept is bound; more
// distant ancestors are never asked. It returns true when an acceptor is
// bound, including when one already was.
func (in *Initiator) StartGesture(axes Axis, class GestureClass) bool {
	if !in.checkClass("nestedscroll.StartGesture", class) {
		return false
	}
	if in.active[class] != NoNode {
		return true
	}
	if !in.enabled {
		return false
	}
	child := in.self
	p, ok := in.tree.ParentOf(in.self)
	for ok {
		if hook, isParent := in.tree.ParentFor(p); isParent && hook.TryAccept(child, in.self, axes, class) {
			in.active[class] = p
			hook.OnAccepted(child, in.self, axes, class)
			return true
		}
		child = p
		p, ok = in.tree.ParentOf(p)
	}
	return false
}

// StopGesture ends the gesture for class and notifies its acceptor. It does
// nothing when no acceptor is bound.
func (in *Initiator) StopGesture(class GestureClass) {
	if !in.checkClass("nestedscroll.StopGesture", class) {
		return
	}
	n := in.active[class]
	if n == NoNode {
		return
	}
	// Clear first so a re-entrant stop from the acceptor is a no-op.
	in.active[class] = NoNode
	if hook, ok := in.tree.ParentFor(n); ok {
		hook.OnStopped(in.self, class)
	}
}

// DispatchScroll reports a step in which the element consumed part of the
// motion itself and offers the rest to the acceptor bound for class.
//
// When offset is non-nil it receives how far the element moved on screen
// during the call. When consumed is nil an internal buffer is used and the
// acceptor's consumption is not surfaced. It returns false when nothing was
// dispatched.
func (in *Initiator) DispatchScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, offset *image.Point, class GestureClass, consumed *image.Point) bool {
	hook, ok := in.dispatchTarget("nestedscroll.DispatchScroll", class)
	if !ok {
		return false
	}
	if dxConsumed == 0 && dyConsumed == 0 && dxUnconsumed == 0 && dyUnconsumed == 0 {
		if offset != nil {
			*offset = image.Point{}
		}
		return false
	}
	var start image.Point
	if offset != nil {
		start = in.tree.PositionOnScreen(in.self)
	}
	if consumed == nil {
		in.scratch = image.Point{}
		consumed = &in.scratch
	}
	hook.OnNestedScroll(in.self, dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed, class, consumed)
	if offset != nil {
		*offset = in.tree.PositionOnScreen(in.self).Sub(start)
	}
	return true
}

// DispatchUserScroll is DispatchScroll for the User class without a consumed
// output.
func (in *Initiator) DispatchUserScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, offset *image.Point) bool {
	return in.DispatchScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed, offset, User, nil)
}

// DispatchPreScroll offers dx, dy to the acceptor bound for class before the
// element scrolls itself. What the acceptor takes is written to consumed,
// which is always reset first. It returns true when the acceptor consumed a
// non-zero amount on either axis.
func (in *Initiator) DispatchPreScroll(dx, dy int, consumed, offset *image.Point, class GestureClass) bool {
	hook, ok := in.dispatchTarget("nestedscroll.DispatchPreScroll", class)
	if !ok {
		return false
	}
	if dx == 0 && dy == 0 {
		if offset != nil {
			*offset = image.Point{}
		}
		return false
	}
	var start image.Point
	if offset != nil {
		start = in.tree.PositionOnScreen(in.self)
	}
	if consumed == nil {
		consumed = &in.scratch
	}
	*consumed = image.Point{}
	hook.OnNestedPreScroll(in.self, dx, dy, class, consumed)
	if offset != nil {
		*offset = in.tree.PositionOnScreen(in.self).Sub(start)
	}
	return *consumed != image.Point{}
}

// DispatchFling reports a fling to the User acceptor. consumed tells whether
// the element flung itself. The acceptor's answer is returned as is.
func (in *Initiator) DispatchFling(vx, vy float64, consumed bool) bool {
	hook, ok := in.dispatchTarget("nestedscroll.DispatchFling", User)
	if !ok {
		return false
	}
	return hook.OnNestedFling(in.self, vx, vy, consumed)
}

// DispatchPreFling offers a fling to the User acceptor before the element
// handles it. A true result means the acceptor took it.
func (in *Initiator) DispatchPreFling(vx, vy float64) bool {
	hook, ok := in.dispatchTarget("nestedscroll.DispatchPreFling", User)
	if !ok {
		return false
	}
	return hook.OnNestedPreFling(in.self, vx, vy)
}

// OnDetached stops both gesture classes. Call it when the element leaves the
// tree.
func (in *Initiator) OnDetached() {
	in.stopAll()
}

// OnChildStopped stops this element's own User gesture after a descendant
// stopped its nested scroll. It relays exactly one level.
func (in *Initiator) OnChildStopped(child Node) {
	in.StopGesture(User)
}

func (in *Initiator) stopAll() {
	in.StopGesture(User)
	in.StopGesture(Programmatic)
}

// dispatchTarget applies the shared dispatch guards and resolves the bound
// acceptor for class.
func (in *Initiator) dispatchTarget(op string, class GestureClass) (Parent, bool) {
	if !in.checkClass(op, class) || !in.enabled {
		return nil, false
	}
	n := in.active[class]
	if n == NoNode {
		return nil, false
	}
	return in.tree.ParentFor(n)
}

func (in *Initiator) checkClass(op string, class GestureClass) bool {
	if class.Valid() {
		return true
	}
	errors.Report(&errors.ScrollError{
		Op:   op,
		Kind: errors.KindGesture,
		Node: uint32(in.self),
		Err:  fmt.Errorf("unknown gesture class %d", int(class)),
	})
	return false
}
