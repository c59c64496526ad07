package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestScrollErrorString(t *testing.T) {
	err := &ScrollError{
		Op:   "viewtree.Add",
		Kind: KindTree,
		Err:  stderrors.New("unknown parent"),
	}
	got := err.Error()
	want := "viewtree.Add [tree]: unknown parent"
	if got != want {
		t.Errorf("ScrollError.Error() = %q, want %q", got, want)
	}
}

func TestScrollErrorWithNode(t *testing.T) {
	err := &ScrollError{
		Op:   "viewtree.Detach",
		Kind: KindTree,
		Node: 7,
		Err:  stderrors.New("not attached"),
	}
	got := err.Error()
	if !strings.Contains(got, "node=7") {
		t.Errorf("error string %q should contain %q", got, "node=7")
	}
}

func TestScrollErrorUnwrap(t *testing.T) {
	base := stderrors.New("boom")
	err := New("replay.Run", KindReplay, base)
	if !stderrors.Is(err, base) {
		t.Error("errors.Is should see the wrapped error")
	}
	var target *ScrollError
	if !stderrors.As(error(err), &target) || target.Kind != KindReplay {
		t.Errorf("errors.As = %v, want kind %v", target, KindReplay)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindTree, "tree"},
		{KindGesture, "gesture"},
		{KindConfig, "config"},
		{KindReplay, "replay"},
		{KindPanic, "panic"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "replay.Run"
	if got, want := err.Error(), "panic in replay.Run: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestParseErrorString(t *testing.T) {
	err := &ParseError{File: "demo.yaml", Field: "steps[2].class", Got: "touch"}
	want := "demo.yaml: invalid steps[2].class: got touch"
	if got := err.Error(); got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
	err.File = ""
	if got := err.Error(); got != "invalid steps[2].class: got touch" {
		t.Errorf("ParseError.Error() without file = %q", got)
	}
}

func TestReport(t *testing.T) {
	var captured *ScrollError
	handler := &testHandler{onError: func(err *ScrollError) { captured = err }}

	old := SetHandler(handler)
	defer SetHandler(old)

	Report(&ScrollError{Op: "test.op", Kind: KindGesture, Err: stderrors.New("bad class")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	old := SetHandler(&testHandler{
		onError: func(*ScrollError) { called = true },
		onPanic: func(*PanicError) { called = true },
	})
	defer SetHandler(old)

	Report(nil)
	ReportPanic(nil)
	if called {
		t.Error("nil reports should not reach the handler")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	old := SetHandler(DiscardHandler{})
	defer SetHandler(old)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := SetHandler(nil)
	defer SetHandler(old)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&ScrollError{Op: "viewtree.Add", Kind: KindTree, Node: 3, Err: stderrors.New("unknown parent")})
	if got, want := buf.String(), "[nestedscroll error] viewtree.Add: unknown parent\n"; got != want {
		t.Errorf("terse output = %q, want %q", got, want)
	}

	buf.Reset()
	h.Verbose = true
	h.HandleError(&ScrollError{Op: "viewtree.Add", Kind: KindTree, Node: 3, Err: stderrors.New("unknown parent")})
	if got := buf.String(); !strings.Contains(got, "[tree] node=3") {
		t.Errorf("verbose output = %q, want kind and node", got)
	}

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "replay.Run", Value: "boom"})
	if got := buf.String(); !strings.HasPrefix(got, "[nestedscroll panic] replay.Run: boom") {
		t.Errorf("panic output = %q", got)
	}
}

type testHandler struct {
	onError func(*ScrollError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *ScrollError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
