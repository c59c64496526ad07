package testing

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/nestedscroll/pkg/errors"
)

func TestHarness_CapturesReports(t *testing.T) {
	h := NewHarnessWithT(t)

	errors.Report(&errors.ScrollError{Op: "viewtree.Add", Kind: errors.KindTree, Err: stderrors.New("unknown parent")})
	func() {
		defer errors.RecoverWithCallback("replay.Play", nil)
		panic("boom")
	}()

	got := h.Reported()
	if len(got) != 2 {
		t.Fatalf("Reported() has %d entries, want 2", len(got))
	}
	tests := []struct {
		op   string
		kind errors.ErrorKind
	}{
		{"viewtree.Add", errors.KindTree},
		{"replay.Play", errors.KindPanic},
	}
	for i, tt := range tests {
		if got[i].Op != tt.op || got[i].Kind != tt.kind {
			t.Errorf("Reported()[%d] = %s/%v, want %s/%v", i, got[i].Op, got[i].Kind, tt.op, tt.kind)
		}
	}
	var pe *errors.PanicError
	if !stderrors.As(got[1], &pe) || pe.Value != "boom" {
		t.Errorf("panic entry does not unwrap to the recovered value: %v", got[1])
	}
}

func TestHarness_CleanupRestoresHandler(t *testing.T) {
	prev := errors.SetHandler(errors.DiscardHandler{})
	defer errors.SetHandler(prev)

	h := NewHarness()
	if errors.DefaultHandler != errors.ErrorHandler(h) {
		t.Errorf("DefaultHandler = %T, want the harness", errors.DefaultHandler)
	}
	h.Cleanup()
	if _, ok := errors.DefaultHandler.(errors.DiscardHandler); !ok {
		t.Errorf("DefaultHandler after Cleanup = %T, want DiscardHandler", errors.DefaultHandler)
	}
}
