package widgets

// ScrollPosition stores a scroll offset in whole pixels and the extents it is
// clamped to.
type ScrollPosition struct {
	offset   int
	min      int
	max      int
	onUpdate func(delta int)
}

// NewScrollPosition creates a position at 0 with empty extents. onUpdate, if
// set, is called with the applied delta whenever the offset changes.
func NewScrollPosition(onUpdate func(delta int)) *ScrollPosition {
	return &ScrollPosition{onUpdate: onUpdate}
}

// Offset returns the current scroll offset.
func (p *ScrollPosition) Offset() int {
	return p.offset
}

// Min returns the smallest allowed offset.
func (p *ScrollPosition) Min() int {
	return p.min
}

// Max returns the largest allowed offset.
func (p *ScrollPosition) Max() int {
	return p.max
}

// SetExtents updates the min/max scroll extents and re-clamps the offset.
func (p *ScrollPosition) SetExtents(min, max int) {
	if max < min {
		max = min
	}
	p.min = min
	p.max = max
	p.SetOffset(p.offset)
}

// SetOffset moves to value, clamped to the extents.
func (p *ScrollPosition) SetOffset(value int) {
	clamped := max(p.min, min(value, p.max))
	if clamped == p.offset {
		return
	}
	delta := clamped - p.offset
	p.offset = clamped
	if p.onUpdate != nil {
		p.onUpdate(delta)
	}
}

// ScrollBy moves by delta within the extents and returns the part applied.
func (p *ScrollPosition) ScrollBy(delta int) int {
	before := p.offset
	p.SetOffset(p.offset + delta)
	return p.offset - before
}

// AtStart reports whether the offset is at its minimum.
func (p *ScrollPosition) AtStart() bool {
	return p.offset <= p.min
}

// AtEnd reports whether the offset is at its maximum.
func (p *ScrollPosition) AtEnd() bool {
	return p.offset >= p.max
}

// CanScroll reports whether the position can move in the direction of the
// sign of direction. Zero is never scrollable.
func (p *ScrollPosition) CanScroll(direction int) bool {
	switch {
	case direction > 0:
		return !p.AtEnd()
	case direction < 0:
		return !p.AtStart()
	default:
		return false
	}
}

func contentExtent(viewport, content int) int {
	return max(0, content-viewport)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
