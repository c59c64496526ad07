package physics

import "math"

// MinVelocity is the speed (px/s) below which a fling is considered settled.
const MinVelocity = 5

// maxStep caps a single step to avoid large jumps after a stalled frame.
const maxStep = 0.032

// Ballistic decelerates a fling frame by frame.
type Ballistic struct {
	velocity float64
	traveled float64
}

// NewBallistic starts a fling at velocity px/s. NaN and infinite velocities
// start a settled fling.
func NewBallistic(velocity float64) *Ballistic {
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		velocity = 0
	}
	return &Ballistic{velocity: velocity}
}

// Velocity returns the current velocity.
func (b *Ballistic) Velocity() float64 {
	return b.velocity
}

// Traveled returns the signed distance covered so far.
func (b *Ballistic) Traveled() float64 {
	return b.traveled
}

// Done reports whether the fling has settled.
func (b *Ballistic) Done() bool {
	return math.Abs(b.velocity) < MinVelocity
}

// Step advances the fling by dt seconds and returns the distance moved.
// done is true once the fling has settled.
func (b *Ballistic) Step(dt float64) (delta float64, done bool) {
	if dt <= 0 {
		return 0, b.Done()
	}
	if dt > maxStep {
		dt = maxStep
	}
	velocity := b.velocity
	decel := 2200.0 + 0.385*math.Abs(velocity)
	if velocity > 0 {
		velocity = math.Max(0, velocity-decel*dt)
	} else if velocity < 0 {
		velocity = math.Min(0, velocity+decel*dt)
	}
	delta = velocity * dt
	b.velocity = velocity
	b.traveled += delta
	return delta, b.Done()
}

// Stop settles the fling immediately.
func (b *Ballistic) Stop() {
	b.velocity = 0
}
