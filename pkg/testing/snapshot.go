package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
	"github.com/go-drift/nestedscroll/pkg/viewtree"
)

// UpdateSnapshotsEnv names the environment variable that rewrites golden
// files instead of comparing against them.
const UpdateSnapshotsEnv = "NESTEDSCROLL_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the view tree layout and, optionally, a callback trace.
type Snapshot struct {
	Tree  *TreeNode `json:"tree"`
	Trace []string  `json:"trace,omitempty"`
}

// TreeNode represents a node in the serialized view tree.
type TreeNode struct {
	Name     string      `json:"name"`
	Handle   uint32      `json:"handle"`
	Offset   [2]int      `json:"offset"`
	Screen   [2]int      `json:"screen"`
	Children []*TreeNode `json:"children,omitempty"`
}

// CaptureTree captures the subtree of tree rooted at root. It returns a
// snapshot with a nil Tree when root is not in the tree.
func CaptureTree(tree *viewtree.Tree, root nestedscroll.Node) *Snapshot {
	snap := &Snapshot{}
	if tree.Contains(root) {
		snap.Tree = captureNode(tree, root)
	}
	return snap
}

// CaptureTree captures the harness tree from root.
func (h *Harness) CaptureTree(root nestedscroll.Node) *Snapshot {
	return CaptureTree(h.Tree, root)
}

// WithTrace attaches trace, split into lines, and returns s. Trailing
// newlines are dropped.
func (s *Snapshot) WithTrace(trace string) *Snapshot {
	trace = strings.TrimRight(trace, "\n")
	if trace == "" {
		s.Trace = nil
		return s
	}
	s.Trace = strings.Split(trace, "\n")
	return s
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// NESTEDSCROLL_UPDATE_SNAPSHOTS=1 is set, the file is silently updated
// instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

func captureNode(tree *viewtree.Tree, n nestedscroll.Node) *TreeNode {
	off := tree.Offset(n)
	screen := tree.PositionOnScreen(n)
	node := &TreeNode{
		Name:   tree.Name(n),
		Handle: uint32(n),
		Offset: [2]int{off.X, off.Y},
		Screen: [2]int{screen.X, screen.Y},
	}
	for _, c := range tree.Children(n) {
		node.Children = append(node.Children, captureNode(tree, c))
	}
	return node
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
