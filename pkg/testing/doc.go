// Package testing provides helpers for testing nested scroll participants.
//
// # Quick Start
//
// Build a containment chain, hang recorders on the ancestors and drive an
// initiator from the innermost node:
//
//	func TestHandOff(t *testing.T) {
//	    h := nstest.NewHarnessWithT(t)
//	    nodes := h.Chain("outer", "middle", "list")
//	    middle := h.Recorder(nodes[1])
//	    middle.Accept = true
//
//	    in := h.Initiator(nodes[2])
//	    in.StartGesture(nestedscroll.AxisVertical, nestedscroll.User)
//
//	    middle.ExpectEvents(t, "accepted child=3 originator=3 axes=vertical class=user")
//	}
//
// # Reported Errors
//
// The harness installs its own error handler for the duration of the test,
// so diagnostics reported through pkg/errors are captured instead of printed.
// Recovered panics are captured too, with Kind errors.KindPanic:
//
//	if len(h.Reported()) != 1 {
//	    t.Fatal("expected one diagnostic")
//	}
//
// # Flings
//
// FrameClock drives anything with a Step(time.Duration) method, such as a
// widgets.Scene, in whole frames of fake time:
//
//	clock := nstest.NewFrameClock(scene, 0) // 60 fps
//	clock.Advance(100 * time.Millisecond)  // six frames
//
// # Snapshots
//
// CaptureTree records names, offsets and on-screen positions of a subtree.
// A trace can be attached with WithTrace and the result compared against a
// golden JSON file:
//
//	h.CaptureTree(root).WithTrace(out.String()).MatchesFile(t, "testdata/page.json")
//
// Set NESTEDSCROLL_UPDATE_SNAPSHOTS=1 to rewrite golden files.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import nstest "github.com/go-drift/nestedscroll/pkg/testing"
package testing
