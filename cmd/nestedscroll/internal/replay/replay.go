// Package replay runs a scenario against real nested scroll widgets and
// writes a trace of every protocol callback.
package replay

import (
	"fmt"
	"image"
	"io"

	"github.com/go-drift/nestedscroll/cmd/nestedscroll/internal/scenario"
	"github.com/go-drift/nestedscroll/pkg/errors"
	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
	"github.com/go-drift/nestedscroll/pkg/physics"
	"github.com/go-drift/nestedscroll/pkg/viewtree"
	"github.com/go-drift/nestedscroll/pkg/widgets"
)

// Player holds the tree and widgets built from a scenario.
type Player struct {
	sc    *scenario.Scenario
	out   io.Writer
	tree  *viewtree.Tree
	scene *widgets.Scene
	nodes map[string]nestedscroll.Node
	// order lists scrollable nodes in tree order for the final summary.
	order []nestedscroll.Node
}

// New builds the view tree of sc. The trace goes to out.
func New(sc *scenario.Scenario, out io.Writer) (*Player, error) {
	tree := viewtree.New()
	p := &Player{
		sc:    sc,
		out:   out,
		tree:  tree,
		scene: widgets.NewScene(tree, physics.NewSplineFling(sc.Density)),
		nodes: make(map[string]nestedscroll.Node),
	}
	err := sc.Root.Walk(nil, func(parent, n *scenario.Node) error {
		return p.add(parent, n)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Run builds the tree of sc and replays its steps, writing the trace to out.
func Run(sc *scenario.Scenario, out io.Writer) error {
	p, err := New(sc, out)
	if err != nil {
		return err
	}
	return p.Play()
}

func (p *Player) add(parent, n *scenario.Node) error {
	var id nestedscroll.Node
	if parent == nil {
		id = p.tree.AddRoot(n.Name)
	} else {
		var err error
		id, err = p.tree.Add(p.nodes[parent.Name], n.Name)
		if err != nil {
			return err
		}
	}
	p.nodes[n.Name] = id

	switch n.Kind {
	case scenario.KindParent:
		if _, err := p.scene.NewParent(id, n.Viewport, n.Content); err != nil {
			return err
		}
		hook, _ := p.tree.ParentFor(id)
		if err := p.tree.SetParentHook(id, &tracer{name: n.Name, out: p.out, names: p.tree.Name, next: hook}); err != nil {
			return err
		}
		p.order = append(p.order, id)
	case scenario.KindChild:
		if _, err := p.scene.NewChild(id, n.Viewport, n.Content); err != nil {
			return err
		}
		p.order = append(p.order, id)
	}
	return nil
}

// Play runs every step in order and then prints the final offsets. A panic
// inside a step is reported and returned as a KindPanic error.
func (p *Player) Play() (err error) {
	defer errors.RecoverWithCallback("replay.Play", func(r any) {
		err = errors.New("replay.Play", errors.KindPanic, fmt.Errorf("%v", r))
	})

	for i, s := range p.sc.Steps {
		if err := p.step(i, s); err != nil {
			return err
		}
	}
	p.summary()
	return nil
}

func (p *Player) step(i int, s scenario.Step) error {
	fmt.Fprintf(p.out, "> %s %s\n", s.Op, s.Node)
	class, _ := scenario.ParseClass(s.Class)
	axes, _ := scenario.ParseAxes(s.Axes)
	n := p.nodes[s.Node]
	if s.Op != scenario.OpSettle && s.Op != scenario.OpDetach && !p.bound(n) {
		return &errors.ScrollError{
			Op:   "replay.Play",
			Kind: errors.KindReplay,
			Node: uint32(n),
			Err:  fmt.Errorf("steps[%d]: %s is no longer in the tree", i, s.Node),
		}
	}

	switch s.Op {
	case scenario.OpStart:
		in := p.initiator(n)
		if in.StartGesture(axes, class) {
			bound, _ := in.ActiveAcceptor(class)
			p.result("bound=%s", p.tree.Name(bound))
		} else {
			p.result("no acceptor")
		}

	case scenario.OpStop:
		p.initiator(n).StopGesture(class)

	case scenario.OpPreScroll:
		var consumed, offset image.Point
		ok := p.initiator(n).DispatchPreScroll(s.DX, s.DY, &consumed, &offset, class)
		p.result("dispatched=%t consumed=%v offset=%v", ok, consumed, offset)

	case scenario.OpScroll:
		var consumed, offset image.Point
		ok := p.initiator(n).DispatchScroll(0, 0, s.DX, s.DY, &offset, class, &consumed)
		p.result("dispatched=%t consumed=%v offset=%v", ok, consumed, offset)

	case scenario.OpDrag:
		c, _ := p.scene.Child(n)
		c.DragStart()
		applied := 0
		for _, d := range s.Deltas {
			applied += c.DragUpdate(d)
		}
		c.DragEnd(s.Velocity)
		p.result("self=%d", applied)

	case scenario.OpFling:
		if c, ok := p.scene.Child(n); ok {
			c.Fling(s.Velocity)
		} else if pr, ok := p.scene.Parent(n); ok {
			pr.Fling(s.Velocity, nestedscroll.NoNode)
		}

	case scenario.OpSettle:
		p.result("frames=%d", p.scene.Settle(s.Frames))

	case scenario.OpDetach:
		if err := p.tree.Detach(n); err != nil {
			return err
		}

	case scenario.OpEnable, scenario.OpDisable:
		p.initiator(n).SetEnabled(s.Op == scenario.OpEnable)

	case scenario.OpExpect:
		if got := p.position(n).Offset(); got != *s.Offset {
			return &errors.ScrollError{
				Op:   "replay.Play",
				Kind: errors.KindReplay,
				Node: uint32(n),
				Err:  fmt.Errorf("steps[%d]: %s offset = %d, want %d", i, s.Node, got, *s.Offset),
			}
		}
		p.result("offset=%d", *s.Offset)
	}
	return nil
}

func (p *Player) result(format string, args ...any) {
	fmt.Fprintf(p.out, "  = "+format+"\n", args...)
}

// summary prints the offset of every scrollable still in the scene.
func (p *Player) summary() {
	fmt.Fprintln(p.out, "final:")
	for _, n := range p.order {
		if !p.tree.Contains(n) {
			continue
		}
		fmt.Fprintf(p.out, "  %s offset=%d\n", p.tree.Name(n), p.position(n).Offset())
	}
}

func (p *Player) bound(n nestedscroll.Node) bool {
	if _, ok := p.scene.Child(n); ok {
		return true
	}
	_, ok := p.scene.Parent(n)
	return ok
}

// initiator returns the initiator of the widget bound to n. Validation
// guarantees n is a parent or a child.
func (p *Player) initiator(n nestedscroll.Node) *nestedscroll.Initiator {
	if c, ok := p.scene.Child(n); ok {
		return c.Initiator()
	}
	pr, _ := p.scene.Parent(n)
	return pr.Initiator()
}

func (p *Player) position(n nestedscroll.Node) *widgets.ScrollPosition {
	if c, ok := p.scene.Child(n); ok {
		return c.Position()
	}
	pr, _ := p.scene.Parent(n)
	return pr.Position()
}

// Tree returns the view tree built from the scenario.
func (p *Player) Tree() *viewtree.Tree {
	return p.tree
}

// Node returns the handle of the scenario node called name.
func (p *Player) Node(name string) (nestedscroll.Node, bool) {
	n, ok := p.nodes[name]
	return n, ok
}
