package testing

import (
	"testing"

	"github.com/go-drift/nestedscroll/pkg/errors"
	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
	"github.com/go-drift/nestedscroll/pkg/viewtree"
)

// Harness owns a tree and the recorders attached to it, and captures errors
// reported through pkg/errors while it is active.
type Harness struct {
	Tree *viewtree.Tree

	recorders  map[nestedscroll.Node]*Recorder
	reported   []*errors.ScrollError
	prevHandle errors.ErrorHandler
}

// NewHarness creates a harness with an empty tree. Call Cleanup when done,
// or use NewHarnessWithT instead.
func NewHarness() *Harness {
	h := &Harness{
		Tree:      viewtree.New(),
		recorders: make(map[nestedscroll.Node]*Recorder),
	}
	h.prevHandle = errors.SetHandler(h)
	return h
}

// NewHarnessWithT creates a harness and registers Cleanup with t.
func NewHarnessWithT(t testing.TB) *Harness {
	t.Helper()
	h := NewHarness()
	t.Cleanup(h.Cleanup)
	return h
}

// Cleanup restores the error handler that was active before the harness.
func (h *Harness) Cleanup() {
	errors.SetHandler(h.prevHandle)
}

// Chain adds a linear chain of nodes, outermost first, and returns their
// handles in the same order.
func (h *Harness) Chain(names ...string) []nestedscroll.Node {
	if len(names) == 0 {
		return nil
	}
	nodes := []nestedscroll.Node{h.Tree.AddRoot(names[0])}
	for _, name := range names[1:] {
		n, err := h.Tree.Add(nodes[len(nodes)-1], name)
		if err != nil {
			panic(err)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// Recorder returns the recorder hooked to n, creating and registering it on
// first use.
func (h *Harness) Recorder(n nestedscroll.Node) *Recorder {
	if r, ok := h.recorders[n]; ok {
		return r
	}
	r := &Recorder{Self: n}
	if err := h.Tree.SetParentHook(n, r); err != nil {
		panic(err)
	}
	h.recorders[n] = r
	return r
}

// Initiator creates an enabled initiator for n whose OnDetached is wired to
// the tree's detach notification.
func (h *Harness) Initiator(n nestedscroll.Node) *nestedscroll.Initiator {
	in := nestedscroll.NewInitiator(h.Tree, n)
	in.SetEnabled(true)
	if _, err := h.Tree.OnDetach(n, in.OnDetached); err != nil {
		panic(err)
	}
	return in
}

// Reported returns the errors captured since the harness was created.
// Recovered panics appear with Kind errors.KindPanic.
func (h *Harness) Reported() []*errors.ScrollError {
	return h.reported
}

// HandleError implements errors.ErrorHandler.
func (h *Harness) HandleError(err *errors.ScrollError) {
	h.reported = append(h.reported, err)
}

// HandlePanic implements errors.ErrorHandler.
func (h *Harness) HandlePanic(err *errors.PanicError) {
	h.reported = append(h.reported, &errors.ScrollError{
		Op:         err.Op,
		Kind:       errors.KindPanic,
		Err:        err,
		StackTrace: err.StackTrace,
		Timestamp:  err.Timestamp,
	})
}
