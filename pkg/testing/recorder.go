package testing

import (
	"fmt"
	"image"
	"slices"
	"strings"
	"testing"

	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
)

// Recorder is a nestedscroll.Parent that logs every callback and answers
// with canned values. Bookkeeping is delegated to the embedded Acceptor.
type Recorder struct {
	nestedscroll.Acceptor

	// Self is the node the recorder is hooked to.
	Self nestedscroll.Node
	// Accept is returned from TryAccept when AcceptFunc is nil.
	Accept bool
	// AcceptFunc, when set, decides TryAccept.
	AcceptFunc func(child, originator nestedscroll.Node, axes nestedscroll.Axis, class nestedscroll.GestureClass) bool
	// PreConsume is written to the consumed buffer on pre-scroll.
	PreConsume image.Point
	// ScrollConsume is added to the consumed buffer on scroll.
	ScrollConsume image.Point
	// PreFlingResult and FlingResult are returned from the fling callbacks.
	PreFlingResult bool
	FlingResult    bool
	// OnScroll and OnPreScroll run inside the matching callback, after the
	// consumed buffer has been written.
	OnScroll    func()
	OnPreScroll func()
	// BeforeScroll runs on entry to OnNestedScroll with the consumed buffer
	// as the dispatcher passed it in.
	BeforeScroll func(consumed image.Point)

	events []string
}

// TryAccept implements nestedscroll.Parent.
func (r *Recorder) TryAccept(child, originator nestedscroll.Node, axes nestedscroll.Axis, class nestedscroll.GestureClass) bool {
	accept := r.Accept
	if r.AcceptFunc != nil {
		accept = r.AcceptFunc(child, originator, axes, class)
	}
	r.logf("try child=%d originator=%d axes=%s class=%s -> %t", child, originator, axes, class, accept)
	return accept
}

// OnAccepted implements nestedscroll.Parent.
func (r *Recorder) OnAccepted(child, originator nestedscroll.Node, axes nestedscroll.Axis, class nestedscroll.GestureClass) {
	r.Acceptor.OnAccepted(child, originator, axes, class)
	r.logf("accepted child=%d originator=%d axes=%s class=%s", child, originator, axes, class)
}

// OnNestedScroll implements nestedscroll.Parent.
func (r *Recorder) OnNestedScroll(originator nestedscroll.Node, dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, class nestedscroll.GestureClass, consumed *image.Point) {
	if r.BeforeScroll != nil {
		r.BeforeScroll(*consumed)
	}
	r.logf("scroll originator=%d consumed=(%d,%d) unconsumed=(%d,%d) class=%s", originator, dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed, class)
	*consumed = consumed.Add(r.ScrollConsume)
	if r.OnScroll != nil {
		r.OnScroll()
	}
}

// OnNestedPreScroll implements nestedscroll.Parent.
func (r *Recorder) OnNestedPreScroll(originator nestedscroll.Node, dx, dy int, class nestedscroll.GestureClass, consumed *image.Point) {
	r.logf("prescroll originator=%d d=(%d,%d) class=%s", originator, dx, dy, class)
	*consumed = r.PreConsume
	if r.OnPreScroll != nil {
		r.OnPreScroll()
	}
}

// OnStopped implements nestedscroll.Parent.
func (r *Recorder) OnStopped(originator nestedscroll.Node, class nestedscroll.GestureClass) {
	r.Acceptor.OnStopped(originator, class)
	r.logf("stopped originator=%d class=%s", originator, class)
}

// OnNestedFling implements nestedscroll.Parent.
func (r *Recorder) OnNestedFling(originator nestedscroll.Node, vx, vy float64, consumed bool) bool {
	r.logf("fling originator=%d v=(%g,%g) consumed=%t", originator, vx, vy, consumed)
	return r.FlingResult
}

// OnNestedPreFling implements nestedscroll.Parent.
func (r *Recorder) OnNestedPreFling(originator nestedscroll.Node, vx, vy float64) bool {
	r.logf("prefling originator=%d v=(%g,%g)", originator, vx, vy)
	return r.PreFlingResult
}

// Events returns the recorded callbacks, oldest first.
func (r *Recorder) Events() []string {
	return slices.Clone(r.events)
}

// Reset forgets the recorded callbacks.
func (r *Recorder) Reset() {
	r.events = nil
}

// Count returns how many recorded callbacks start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, e := range r.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

// ExpectEvents fails t unless the recorded callbacks equal want, ignoring
// "try" entries.
func (r *Recorder) ExpectEvents(t testing.TB, want ...string) {
	t.Helper()
	var got []string
	for _, e := range r.events {
		if !strings.HasPrefix(e, "try ") {
			got = append(got, e)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("node %d events:\n got  %q\n want %q", r.Self, got, want)
	}
}

func (r *Recorder) logf(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

var _ nestedscroll.Parent = (*Recorder)(nil)
