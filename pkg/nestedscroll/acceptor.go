package nestedscroll

// Acceptor is the bookkeeping half of an element that cooperates with nested
// scrolls. It records, per gesture class, the axes the element is
// cooperating on. Whether to cooperate at all is decided by the element in
// [Parent.TryAccept].
//
// The zero value is ready to use.
type Acceptor struct {
	axes [numClasses]Axis
}

// OnAccepted records axes for class. It does not look further up the tree.
func (a *Acceptor) OnAccepted(child, originator Node, axes Axis, class GestureClass) {
	if !class.Valid() {
		return
	}
	a.axes[class] = axes
}

// OnStopped clears the axes recorded for class.
func (a *Acceptor) OnStopped(originator Node, class GestureClass) {
	if !class.Valid() {
		return
	}
	a.axes[class] = AxisNone
}

// Axes returns the axes recorded for class.
func (a *Acceptor) Axes(class GestureClass) Axis {
	if !class.Valid() {
		return AxisNone
	}
	return a.axes[class]
}

// CombinedAxes returns the axes of both gesture classes ORed together.
func (a *Acceptor) CombinedAxes() Axis {
	return a.axes[User] | a.axes[Programmatic]
}
