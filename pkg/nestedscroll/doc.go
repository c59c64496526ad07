// Package nestedscroll coordinates scroll motion between an element and the
// scrollable ancestors that contain it.
//
// Two roles take part in the protocol. An [Initiator] is held by an element
// that receives already-resolved scroll deltas and wants to share them. An
// [Acceptor] is held by an ancestor that may cooperate; it records which axes
// it is cooperating on. Elements compose these helpers as fields and forward
// their own methods to them:
//
//	type list struct {
//	    nested *nestedscroll.Initiator
//	}
//
//	func (l *list) onDrag(dy int) {
//	    var consumed image.Point
//	    if l.nested.DispatchPreScroll(0, dy, &consumed, nil, nestedscroll.User) {
//	        dy -= consumed.Y
//	    }
//	    applied := l.scrollBy(dy)
//	    l.nested.DispatchScroll(0, applied, 0, dy-applied, nil, nestedscroll.User, nil)
//	}
//
// # Gesture Classes
//
// State is tracked separately for [User] motion (direct manipulation) and
// [Programmatic] motion (inertial or driven by code). Each class binds at most
// one acceptor at a time. Flings are only ever offered to the User acceptor.
//
// # Tree
//
// The package never holds pointers to ancestors. Elements are addressed by
// [Node] handles and resolved through a [Tree] on every call, so a node that
// leaves the tree cannot be kept alive by an in-progress gesture.
//
// # Threading
//
// Nothing here is safe for concurrent use. All calls are expected on the
// goroutine that owns the tree, and callbacks run synchronously inside the
// dispatching call.
package nestedscroll
