package physics

import "math"

// Motion is a fling stepped frame by frame. [Ballistic] and [SplineMotion]
// implement it.
type Motion interface {
	Step(dt float64) (delta float64, done bool)
	Velocity() float64
	Traveled() float64
	Done() bool
	Stop()
}

const (
	splineSamples = 100
	startTension  = 0.5
	endTension    = 1.0
)

// splinePosition[i] is the fraction of the fling distance covered after
// i/splineSamples of its duration.
var splinePosition = buildSplinePosition()

func buildSplinePosition() [splineSamples + 1]float64 {
	var table [splineSamples + 1]float64
	p1 := startTension * inflexion
	p2 := 1 - endTension*(1-inflexion)
	xMin := 0.0
	for i := range splineSamples {
		alpha := float64(i) / splineSamples
		xMax := 1.0
		var x, coef float64
		for {
			x = xMin + (xMax-xMin)/2
			coef = 3 * x * (1 - x)
			tx := coef*((1-x)*p1+x*p2) + x*x*x
			if math.Abs(tx-alpha) < 1e-5 {
				break
			}
			if tx > alpha {
				xMax = x
			} else {
				xMin = x
			}
		}
		table[i] = coef*((1-x)*startTension+x) + x*x*x
	}
	table[splineSamples] = 1
	return table
}

// splineAt returns the covered fraction and its rate of change at fraction t
// of the fling duration.
func splineAt(t float64) (position, rate float64) {
	index := int(splineSamples * t)
	if index >= splineSamples {
		return 1, 0
	}
	tInf := float64(index) / splineSamples
	tSup := float64(index+1) / splineSamples
	dInf := splinePosition[index]
	dSup := splinePosition[index+1]
	rate = (dSup - dInf) / (tSup - tInf)
	return dInf + (t-tInf)*rate, rate
}

// SplineMotion follows the spline curve of a [SplineFling]: it covers
// exactly Distance(v) in Duration(v).
type SplineMotion struct {
	distance float64
	duration float64
	elapsed  float64
	traveled float64
	velocity float64
	stopped  bool
}

// Start begins a fling at velocity px/s on the spline curve. NaN and
// infinite velocities start a settled fling.
func (s SplineFling) Start(velocity float64) *SplineMotion {
	m := &SplineMotion{}
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return m
	}
	m.distance = math.Copysign(s.Distance(velocity), velocity)
	m.duration = s.Duration(velocity).Seconds()
	if m.duration > 0 {
		m.velocity = velocity
	}
	return m
}

// Distance returns the signed distance the fling covers in total.
func (m *SplineMotion) Distance() float64 {
	return m.distance
}

// Velocity returns the current velocity.
func (m *SplineMotion) Velocity() float64 {
	return m.velocity
}

// Traveled returns the signed distance covered so far.
func (m *SplineMotion) Traveled() float64 {
	return m.traveled
}

// Done reports whether the fling has run its course or was stopped.
func (m *SplineMotion) Done() bool {
	return m.stopped || m.elapsed >= m.duration
}

// Step advances the fling by dt seconds and returns the distance moved.
func (m *SplineMotion) Step(dt float64) (delta float64, done bool) {
	if dt <= 0 || m.Done() {
		return 0, m.Done()
	}
	if dt > maxStep {
		dt = maxStep
	}
	m.elapsed = math.Min(m.elapsed+dt, m.duration)
	position, rate := splineAt(m.elapsed / m.duration)
	target := m.distance * position
	delta = target - m.traveled
	m.traveled = target
	m.velocity = rate * m.distance / m.duration
	if m.Done() {
		m.velocity = 0
	}
	return delta, m.Done()
}

// Stop settles the fling where it is.
func (m *SplineMotion) Stop() {
	m.stopped = true
	m.velocity = 0
}

var (
	_ Motion = (*Ballistic)(nil)
	_ Motion = (*SplineMotion)(nil)
)
