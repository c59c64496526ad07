package nestedscroll

import (
	"fmt"
	"image"
	"strings"
)

// GestureClass partitions nested scroll state into independent tracks.
type GestureClass int

const (
	// User is motion driven directly by the user, such as a drag.
	User GestureClass = iota
	// Programmatic is inertial or code-driven motion, such as a fling
	// animation or an animated jump.
	Programmatic
)

// numClasses is the size of the per-class state arrays.
const numClasses = 2

// Valid reports whether c is one of the defined gesture classes.
func (c GestureClass) Valid() bool {
	return c >= User && c < numClasses
}

func (c GestureClass) String() string {
	switch c {
	case User:
		return "user"
	case Programmatic:
		return "programmatic"
	default:
		return fmt.Sprintf("GestureClass(%d)", int(c))
	}
}

// Axis is a bitmask of scroll directions.
type Axis uint8

const (
	// AxisNone means no cooperation on any axis.
	AxisNone Axis = 0
	// AxisHorizontal is the x axis.
	AxisHorizontal Axis = 1 << 0
	// AxisVertical is the y axis.
	AxisVertical Axis = 1 << 1
	// AxisBoth is both axes.
	AxisBoth = AxisHorizontal | AxisVertical
)

// Has reports whether every bit of other is set in a.
func (a Axis) Has(other Axis) bool {
	return a&other == other
}

func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "none"
	case AxisBoth:
		return "both"
	}
	var parts []string
	if a&AxisHorizontal != 0 {
		parts = append(parts, "horizontal")
	}
	if a&AxisVertical != 0 {
		parts = append(parts, "vertical")
	}
	if rest := a &^ AxisBoth; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// Node is a stable handle to an element in the surrounding tree.
// The zero value is [NoNode].
type Node uint32

// NoNode is the invalid handle.
const NoNode Node = 0

// Tree is the containment tree the protocol walks. It is owned by the caller.
type Tree interface {
	// ParentOf returns the container of n, or false at the root or for an
	// unknown handle.
	ParentOf(n Node) (Node, bool)
	// PositionOnScreen returns the on-screen origin of n in pixels.
	PositionOnScreen(n Node) image.Point
	// ParentFor resolves n to its nested scroll hook. Nodes that do not take
	// part in nested scrolling return false.
	ParentFor(n Node) (Parent, bool)
}

// Parent is implemented by elements that can cooperate with a descendant's
// scroll. The decision in TryAccept belongs to the element; bookkeeping is
// usually delegated to an embedded [Acceptor].
type Parent interface {
	// TryAccept reports whether the element will cooperate with originator on
	// axes. child is the element's direct child on the path to originator.
	TryAccept(child, originator Node, axes Axis, class GestureClass) bool
	// OnAccepted is called once TryAccept returned true and the element is
	// bound as the active acceptor for class.
	OnAccepted(child, originator Node, axes Axis, class GestureClass)
	// OnNestedScroll reports motion after the originator scrolled itself.
	// The element may record what it takes of the unconsumed part in consumed.
	OnNestedScroll(originator Node, dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, class GestureClass, consumed *image.Point)
	// OnNestedPreScroll offers motion before the originator scrolls. Whatever
	// the element takes must be written to consumed.
	OnNestedPreScroll(originator Node, dx, dy int, class GestureClass, consumed *image.Point)
	// OnStopped ends the cooperation for class.
	OnStopped(originator Node, class GestureClass)
	// OnNestedFling reports a fling; consumed tells whether the originator
	// flung itself. It returns whether the element reacted to it.
	OnNestedFling(originator Node, vx, vy float64, consumed bool) bool
	// OnNestedPreFling offers a fling before the originator handles it. It
	// returns true to claim it.
	OnNestedPreFling(originator Node, vx, vy float64) bool
}
