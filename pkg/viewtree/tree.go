// Package viewtree is an arena-backed containment tree for nested scrolling.
//
// Nodes are addressed by [nestedscroll.Node] handles that are never reused,
// so a handle held by an in-progress gesture can outlive its node without
// pointing at a different one. The tree implements [nestedscroll.Tree].
package viewtree

import (
	stderrors "errors"
	"image"
	"maps"
	"slices"

	"github.com/go-drift/nestedscroll/pkg/errors"
	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
)

var (
	// ErrUnknownNode is returned for handles that were never issued or
	// whose node has been detached.
	ErrUnknownNode = stderrors.New("unknown node")
	// ErrCycle is returned when a node would become its own ancestor.
	ErrCycle = stderrors.New("node cannot be moved under its own subtree")
)

type node struct {
	name     string
	alive    bool
	parent   nestedscroll.Node
	children []nestedscroll.Node
	depth    int
	offset   image.Point // relative to parent
	hook     nestedscroll.Parent
	// listeners maps listener id to detach callback.
	listeners map[int]func()
	nextID    int
}

// Tree is the arena. The zero value is an empty tree.
type Tree struct {
	// nodes[i] holds handle i+1.
	nodes []node
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// AddRoot adds a node without a container.
func (t *Tree) AddRoot(name string) nestedscroll.Node {
	t.nodes = append(t.nodes, node{name: name, alive: true})
	return nestedscroll.Node(len(t.nodes))
}

// Add adds a node named name as the last child of parent.
func (t *Tree) Add(parent nestedscroll.Node, name string) (nestedscroll.Node, error) {
	p := t.get(parent)
	if p == nil {
		return nestedscroll.NoNode, treeError("viewtree.Add", parent, ErrUnknownNode)
	}
	depth := p.depth + 1
	t.nodes = append(t.nodes, node{name: name, alive: true, parent: parent, depth: depth})
	n := nestedscroll.Node(len(t.nodes))
	// Re-fetch: append may have moved the arena.
	p = t.get(parent)
	p.children = append(p.children, n)
	return n, nil
}

// Contains reports whether n is attached.
func (t *Tree) Contains(n nestedscroll.Node) bool {
	return t.get(n) != nil
}

// Name returns the name given to n, or "" for unknown handles.
func (t *Tree) Name(n nestedscroll.Node) string {
	if nd := t.get(n); nd != nil {
		return nd.name
	}
	return ""
}

// Depth returns the distance from n to its root (root = 0).
func (t *Tree) Depth(n nestedscroll.Node) int {
	if nd := t.get(n); nd != nil {
		return nd.depth
	}
	return 0
}

// Children returns a copy of n's children in insertion order.
func (t *Tree) Children(n nestedscroll.Node) []nestedscroll.Node {
	nd := t.get(n)
	if nd == nil {
		return nil
	}
	return append([]nestedscroll.Node(nil), nd.children...)
}

// ParentOf implements nestedscroll.Tree.
func (t *Tree) ParentOf(n nestedscroll.Node) (nestedscroll.Node, bool) {
	nd := t.get(n)
	if nd == nil || nd.parent == nestedscroll.NoNode {
		return nestedscroll.NoNode, false
	}
	return nd.parent, true
}

// SetOffset places n at off relative to its container.
func (t *Tree) SetOffset(n nestedscroll.Node, off image.Point) error {
	nd := t.get(n)
	if nd == nil {
		return treeError("viewtree.SetOffset", n, ErrUnknownNode)
	}
	nd.offset = off
	return nil
}

// Offset returns n's offset relative to its container.
func (t *Tree) Offset(n nestedscroll.Node) image.Point {
	if nd := t.get(n); nd != nil {
		return nd.offset
	}
	return image.Point{}
}

// PositionOnScreen implements nestedscroll.Tree by summing offsets up to the
// root. Unknown handles are at the origin.
func (t *Tree) PositionOnScreen(n nestedscroll.Node) image.Point {
	var pos image.Point
	for nd := t.get(n); nd != nil; nd = t.get(nd.parent) {
		pos = pos.Add(nd.offset)
	}
	return pos
}

// SetParentHook registers the nested scroll hook for n. A nil hook removes it.
func (t *Tree) SetParentHook(n nestedscroll.Node, hook nestedscroll.Parent) error {
	nd := t.get(n)
	if nd == nil {
		return treeError("viewtree.SetParentHook", n, ErrUnknownNode)
	}
	nd.hook = hook
	return nil
}

// ParentFor implements nestedscroll.Tree.
func (t *Tree) ParentFor(n nestedscroll.Node) (nestedscroll.Parent, bool) {
	nd := t.get(n)
	if nd == nil || nd.hook == nil {
		return nil, false
	}
	return nd.hook, true
}

// OnDetach registers fn to run when n leaves the tree, either by Detach or
// by Reparent. The returned function unregisters it.
func (t *Tree) OnDetach(n nestedscroll.Node, fn func()) (func(), error) {
	nd := t.get(n)
	if nd == nil {
		return func() {}, treeError("viewtree.OnDetach", n, ErrUnknownNode)
	}
	if nd.listeners == nil {
		nd.listeners = make(map[int]func())
	}
	id := nd.nextID
	nd.nextID++
	nd.listeners[id] = fn
	return func() {
		if nd := t.get(n); nd != nil {
			delete(nd.listeners, id)
		}
	}, nil
}

// Detach removes n and its subtree. Detach listeners run deepest first while
// the whole subtree is still attached; the handles are invalid afterwards.
func (t *Tree) Detach(n nestedscroll.Node) error {
	nd := t.get(n)
	if nd == nil {
		return treeError("viewtree.Detach", n, ErrUnknownNode)
	}
	subtree := t.postOrder(n, nil)
	t.notifyDetach(subtree)
	t.unlink(n)
	for _, m := range subtree {
		t.nodes[m-1] = node{}
	}
	return nil
}

// Reparent moves n under newParent, keeping its offset. Detach listeners of
// the moved subtree run before the move.
func (t *Tree) Reparent(n, newParent nestedscroll.Node) error {
	if t.get(n) == nil || t.get(newParent) == nil {
		bad := n
		if t.get(n) != nil {
			bad = newParent
		}
		return treeError("viewtree.Reparent", bad, ErrUnknownNode)
	}
	for p := newParent; p != nestedscroll.NoNode; p = t.nodes[p-1].parent {
		if p == n {
			return treeError("viewtree.Reparent", n, ErrCycle)
		}
	}
	subtree := t.postOrder(n, nil)
	t.notifyDetach(subtree)
	t.unlink(n)
	np := t.get(newParent)
	np.children = append(np.children, n)
	t.nodes[n-1].parent = newParent
	base := np.depth + 1
	for _, m := range subtree {
		t.nodes[m-1].depth = base + t.relativeDepth(m, n)
	}
	return nil
}

func (t *Tree) relativeDepth(m, top nestedscroll.Node) int {
	d := 0
	for m != top {
		m = t.nodes[m-1].parent
		d++
	}
	return d
}

func (t *Tree) postOrder(n nestedscroll.Node, out []nestedscroll.Node) []nestedscroll.Node {
	for _, c := range t.nodes[n-1].children {
		out = t.postOrder(c, out)
	}
	return append(out, n)
}

func (t *Tree) notifyDetach(subtree []nestedscroll.Node) {
	var fns []func()
	for _, m := range subtree {
		nd := t.get(m)
		if nd == nil {
			continue
		}
		for _, id := range slices.Sorted(maps.Keys(nd.listeners)) {
			fns = append(fns, nd.listeners[id])
		}
	}
	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

func (t *Tree) unlink(n nestedscroll.Node) {
	parent := t.nodes[n-1].parent
	if parent == nestedscroll.NoNode {
		return
	}
	p := &t.nodes[parent-1]
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	t.nodes[n-1].parent = nestedscroll.NoNode
}

func (t *Tree) get(n nestedscroll.Node) *node {
	if n == nestedscroll.NoNode || int(n) > len(t.nodes) {
		return nil
	}
	nd := &t.nodes[n-1]
	if !nd.alive {
		return nil
	}
	return nd
}

func treeError(op string, n nestedscroll.Node, err error) *errors.ScrollError {
	return &errors.ScrollError{Op: op, Kind: errors.KindTree, Node: uint32(n), Err: err}
}

var _ nestedscroll.Tree = (*Tree)(nil)
