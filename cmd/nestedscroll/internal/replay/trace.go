package replay

import (
	"fmt"
	"image"
	"io"

	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
)

// tracer sits between the tree and a parent hook and prints every callback
// before delegating it.
type tracer struct {
	name  string
	out   io.Writer
	names func(nestedscroll.Node) string
	next  nestedscroll.Parent
}

func (t *tracer) logf(format string, args ...any) {
	fmt.Fprintf(t.out, "  %s: "+format+"\n", append([]any{t.name}, args...)...)
}

func (t *tracer) TryAccept(child, originator nestedscroll.Node, axes nestedscroll.Axis, class nestedscroll.GestureClass) bool {
	ok := t.next.TryAccept(child, originator, axes, class)
	t.logf("try child=%s originator=%s axes=%s class=%s -> %t", t.names(child), t.names(originator), axes, class, ok)
	return ok
}

func (t *tracer) OnAccepted(child, originator nestedscroll.Node, axes nestedscroll.Axis, class nestedscroll.GestureClass) {
	t.logf("accepted child=%s originator=%s axes=%s class=%s", t.names(child), t.names(originator), axes, class)
	t.next.OnAccepted(child, originator, axes, class)
}

func (t *tracer) OnNestedScroll(originator nestedscroll.Node, dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, class nestedscroll.GestureClass, consumed *image.Point) {
	before := *consumed
	t.next.OnNestedScroll(originator, dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed, class, consumed)
	t.logf("scroll originator=%s consumed=(%d,%d) unconsumed=(%d,%d) class=%s took=%v",
		t.names(originator), dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed, class, consumed.Sub(before))
}

func (t *tracer) OnNestedPreScroll(originator nestedscroll.Node, dx, dy int, class nestedscroll.GestureClass, consumed *image.Point) {
	t.next.OnNestedPreScroll(originator, dx, dy, class, consumed)
	t.logf("prescroll originator=%s d=(%d,%d) class=%s took=%v", t.names(originator), dx, dy, class, *consumed)
}

func (t *tracer) OnStopped(originator nestedscroll.Node, class nestedscroll.GestureClass) {
	t.logf("stopped originator=%s class=%s", t.names(originator), class)
	t.next.OnStopped(originator, class)
}

func (t *tracer) OnNestedFling(originator nestedscroll.Node, vx, vy float64, consumed bool) bool {
	ok := t.next.OnNestedFling(originator, vx, vy, consumed)
	t.logf("fling originator=%s v=(%g,%g) consumed=%t -> %t", t.names(originator), vx, vy, consumed, ok)
	return ok
}

func (t *tracer) OnNestedPreFling(originator nestedscroll.Node, vx, vy float64) bool {
	ok := t.next.OnNestedPreFling(originator, vx, vy)
	t.logf("prefling originator=%s v=(%g,%g) -> %t", t.names(originator), vx, vy, ok)
	return ok
}

var _ nestedscroll.Parent = (*tracer)(nil)
