package widgets

import (
	stderrors "errors"
	"image"
	"testing"

	"github.com/go-drift/nestedscroll/pkg/errors"
	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
	"github.com/go-drift/nestedscroll/pkg/physics"
	nstest "github.com/go-drift/nestedscroll/pkg/testing"
	"github.com/go-drift/nestedscroll/pkg/viewtree"
)

// page is a collapsing page: a parent that scrolls 400px holding a list that
// scrolls 1400px.
type page struct {
	scene  *Scene
	parent *NestedParent
	child  *NestedChild
}

func newPage(t *testing.T) page {
	t.Helper()
	tree := viewtree.New()
	root := tree.AddRoot("page")
	list, err := tree.Add(root, "list")
	if err != nil {
		t.Fatal(err)
	}
	scene := NewScene(tree, physics.NewSplineFling(2))
	parent, err := scene.NewParent(root, 600, 1000)
	if err != nil {
		t.Fatal(err)
	}
	child, err := scene.NewChild(list, 600, 2000)
	if err != nil {
		t.Fatal(err)
	}
	return page{scene: scene, parent: parent, child: child}
}

func dragBy(c *NestedChild, steps int, step float64) {
	c.DragStart()
	for range steps {
		c.DragUpdate(step)
	}
}

func TestNested_DragDownFillsParentFirst(t *testing.T) {
	p := newPage(t)

	dragBy(p.child, 10, 50)

	if got := p.parent.Position().Offset(); got != 400 {
		t.Errorf("parent offset = %d, want 400", got)
	}
	if got := p.child.Position().Offset(); got != 100 {
		t.Errorf("child offset = %d, want 100", got)
	}
	if got := p.scene.Tree.PositionOnScreen(p.child.Node()); got != image.Pt(0, -400) {
		t.Errorf("child on screen = %v, want (0,-400)", got)
	}
}

func TestNested_DragUpEmptiesChildFirst(t *testing.T) {
	p := newPage(t)
	dragBy(p.child, 10, 50)
	p.child.DragEnd(0)

	dragBy(p.child, 6, -50)

	if got := p.child.Position().Offset(); got != 0 {
		t.Errorf("child offset = %d, want 0", got)
	}
	if got := p.parent.Position().Offset(); got != 200 {
		t.Errorf("parent offset = %d, want 200", got)
	}
}

func TestNested_DragStepStraddlesChildTop(t *testing.T) {
	p := newPage(t)
	dragBy(p.child, 9, 50) // parent 400, child 50
	p.child.DragEnd(0)

	p.child.DragStart()
	if got := p.child.DragUpdate(-80); got != -50 {
		t.Errorf("DragUpdate(-80) applied = %d, want -50", got)
	}
	if got := p.parent.Position().Offset(); got != 370 {
		t.Errorf("parent offset = %d, want 370", got)
	}
}

func TestNested_SubPixelDrag(t *testing.T) {
	p := newPage(t)
	p.child.DragStart()
	for range 3 {
		p.child.DragUpdate(0.4)
	}
	if got := p.parent.Position().Offset(); got != 1 {
		t.Errorf("parent offset after 3x0.4 = %d, want 1", got)
	}
}

func TestNested_DragBindsAndReleasesUserClass(t *testing.T) {
	p := newPage(t)
	if !p.child.DragStart() {
		t.Fatal("DragStart found no cooperating parent")
	}
	if got := p.parent.Axes(nestedscroll.User); got != nestedscroll.AxisVertical {
		t.Errorf("parent user axes = %v, want vertical", got)
	}
	p.child.DragEnd(0)
	if got := p.parent.Axes(nestedscroll.User); got != nestedscroll.AxisNone {
		t.Errorf("parent user axes after DragEnd = %v, want none", got)
	}
	if p.child.Initiator().HasActiveAcceptor(nestedscroll.User) {
		t.Error("child still has a user acceptor after DragEnd")
	}
}

func TestNested_HorizontalDragIsRefused(t *testing.T) {
	p := newPage(t)
	if p.child.Initiator().StartGesture(nestedscroll.AxisHorizontal, nestedscroll.User) {
		t.Error("horizontal gesture should find no acceptor")
	}
}

func TestNested_FlingHandOffToChild(t *testing.T) {
	// Spline distances at density 2: 2000 px/s covers 388.6px and 3000 px/s
	// covers 785.7px. The parent can scroll 400px.
	tests := []struct {
		name       string
		dragSteps  int // 50px each, all taken by the parent
		velocity   float64
		wantParent int
		wantChild  int
	}{
		{"fast fling from the top", 0, 3000, 400, 386},
		{"mid fling near the end", 6, 2000, 400, 289},
		{"fling that stops short", 0, 2000, 389, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPage(t)
			dragBy(p.child, tt.dragSteps, 50)
			p.child.DragEnd(tt.velocity)

			if !p.parent.IsFlinging() {
				t.Fatal("parent should take a downward fling while it can scroll")
			}
			if p.child.IsFlinging() {
				t.Fatal("child should not fling before the hand-off")
			}

			if frames := p.scene.Settle(600); frames == 600 {
				t.Fatal("flings did not settle")
			}
			if got := p.parent.Position().Offset(); abs(got-tt.wantParent) > 1 {
				t.Errorf("parent offset = %d, want %d", got, tt.wantParent)
			}
			if got := p.child.Position().Offset(); abs(got-tt.wantChild) > 2 {
				t.Errorf("child offset = %d, want about %d", got, tt.wantChild)
			}
			if p.child.Initiator().HasActiveAcceptor(nestedscroll.Programmatic) {
				t.Error("programmatic gesture still active after the fling settled")
			}
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestNested_ChildFlingsWhenParentAtEnd(t *testing.T) {
	p := newPage(t)
	dragBy(p.child, 8, 50) // parent at its end
	p.child.DragEnd(1500)

	if p.parent.IsFlinging() {
		t.Error("parent at its end should not fling")
	}
	if !p.child.IsFlinging() {
		t.Fatal("child should fling itself")
	}
	p.scene.Settle(600)
	if got := p.child.Position().Offset(); got < 400 {
		t.Errorf("child offset = %d, want at least 400", got)
	}
}

func TestNested_UpwardFlingReturnsThroughParent(t *testing.T) {
	p := newPage(t)
	dragBy(p.child, 10, 50)
	p.child.DragEnd(0)

	p.child.Fling(-2000)
	if got := p.parent.Axes(nestedscroll.Programmatic); got != nestedscroll.AxisVertical {
		t.Errorf("parent programmatic axes = %v, want vertical", got)
	}
	p.scene.Settle(600)

	if got := p.child.Position().Offset(); got != 0 {
		t.Errorf("child offset = %d, want 0", got)
	}
	if got := p.parent.Position().Offset(); got != 0 {
		t.Errorf("parent offset = %d, want 0", got)
	}
	if p.scene.HasActiveFlings() {
		t.Error("flings still active")
	}
	if got := p.parent.Axes(nestedscroll.Programmatic); got != nestedscroll.AxisNone {
		t.Errorf("parent programmatic axes = %v, want none", got)
	}
}

func TestNested_DragStartStopsFlings(t *testing.T) {
	p := newPage(t)
	p.child.DragStart()
	p.child.DragEnd(3000)
	clock := nstest.NewFrameClock(p.scene, 0)
	clock.Pump(2)
	if p.parent.Position().Offset() == 0 {
		t.Fatal("parent fling did not move")
	}

	p.child.DragStart()
	if p.parent.IsFlinging() {
		t.Error("a user drag should stop the parent fling")
	}
	if p.scene.HasActiveFlings() {
		t.Error("flings still active after DragStart")
	}
}

func TestNested_DetachStopsGestures(t *testing.T) {
	p := newPage(t)
	p.child.DragStart()
	p.child.Fling(2000)

	if err := p.scene.Tree.Detach(p.child.Node()); err != nil {
		t.Fatal(err)
	}
	for _, class := range []nestedscroll.GestureClass{nestedscroll.User, nestedscroll.Programmatic} {
		if got := p.parent.Axes(class); got != nestedscroll.AxisNone {
			t.Errorf("parent %v axes = %v, want none", class, got)
		}
	}
	if p.scene.HasActiveFlings() {
		t.Error("detached child still flings")
	}
	if _, ok := p.scene.Child(p.child.Node()); ok {
		t.Error("detached child is still bound to the scene")
	}
}

func TestNested_DisabledChildScrollsAlone(t *testing.T) {
	p := newPage(t)
	p.child.Initiator().SetEnabled(false)

	dragBy(p.child, 2, 50)

	if got := p.parent.Position().Offset(); got != 0 {
		t.Errorf("parent offset = %d, want 0", got)
	}
	if got := p.child.Position().Offset(); got != 100 {
		t.Errorf("child offset = %d, want 100", got)
	}
}

func TestNested_ParentsNest(t *testing.T) {
	tree := viewtree.New()
	outerNode := tree.AddRoot("outer")
	innerNode, _ := tree.Add(outerNode, "inner")
	listNode, _ := tree.Add(innerNode, "list")
	scene := NewScene(tree, physics.NewSplineFling(2))
	outer, err := scene.NewParent(outerNode, 600, 700)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := scene.NewParent(innerNode, 600, 800)
	if err != nil {
		t.Fatal(err)
	}
	list, err := scene.NewChild(listNode, 600, 900)
	if err != nil {
		t.Fatal(err)
	}

	dragBy(list, 9, 50)
	if outer.Position().Offset() != 100 || inner.Position().Offset() != 200 || list.Position().Offset() != 150 {
		t.Errorf("offsets after drag down = %d/%d/%d, want 100/200/150",
			outer.Position().Offset(), inner.Position().Offset(), list.Position().Offset())
	}
	if got := tree.PositionOnScreen(listNode); got != image.Pt(0, -300) {
		t.Errorf("list on screen = %v, want (0,-300)", got)
	}

	dragBy(list, 9, -50)
	if outer.Position().Offset() != 0 || inner.Position().Offset() != 0 || list.Position().Offset() != 0 {
		t.Errorf("offsets after drag up = %d/%d/%d, want 0/0/0",
			outer.Position().Offset(), inner.Position().Offset(), list.Position().Offset())
	}

	list.DragEnd(0)
	if got := outer.Axes(nestedscroll.User); got != nestedscroll.AxisNone {
		t.Errorf("outer user axes after release = %v, want none", got)
	}
}

func TestScene_BindErrors(t *testing.T) {
	tree := viewtree.New()
	root := tree.AddRoot("root")
	scene := NewScene(tree, physics.NewSplineFling(2))

	_, err := scene.NewChild(nestedscroll.Node(42), 100, 200)
	var se *errors.ScrollError
	if !stderrors.As(err, &se) || se.Kind != errors.KindTree {
		t.Fatalf("NewChild(unknown) error = %v, want a tree ScrollError", err)
	}
	if !stderrors.Is(err, viewtree.ErrUnknownNode) {
		t.Errorf("NewChild(unknown) error = %v, want ErrUnknownNode", err)
	}

	if _, err := scene.NewParent(root, 100, 200); err != nil {
		t.Fatal(err)
	}
	if _, err := scene.NewChild(root, 100, 200); !stderrors.Is(err, errNodeBound) {
		t.Errorf("NewChild(bound) error = %v, want errNodeBound", err)
	}
}
