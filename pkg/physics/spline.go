// Package physics models fling motion for nested scrolling.
//
// [SplineFling] converts between a fling's initial velocity and the distance
// it travels, which lets one scrollable hand the unused part of a fling to
// another. [SplineMotion] steps a fling along that model, so what it has
// traveled and what the model predicts always agree. [Ballistic] steps a
// fling with a simpler velocity decay.
package physics

import (
	"math"
	"time"
)

const (
	// DefaultFriction is the platform scroll friction.
	DefaultFriction = 0.015
	// gravity in m/s^2, inches per meter, and a look-and-feel factor.
	gravityEarth   = 9.80665
	inchesPerMeter = 39.37
	feelTuning     = 0.84
	// inflexion is where the spline's tension lines cross.
	inflexion = 0.35
)

var decelerationRate = math.Log(0.78) / math.Log(0.9)

// SplineFling relates fling velocity (px/s) to fling distance (px).
type SplineFling struct {
	Friction      float64
	PhysicalCoeff float64
}

// NewSplineFling returns the model for a screen with the given density
// (physical pixels per logical pixel at 160 dpi).
func NewSplineFling(density float64) SplineFling {
	ppi := density * 160
	return SplineFling{
		Friction:      DefaultFriction,
		PhysicalCoeff: gravityEarth * inchesPerMeter * ppi * feelTuning,
	}
}

func (s SplineFling) scale() float64 {
	return s.Friction * s.PhysicalCoeff
}

func (s SplineFling) deceleration(velocity float64) float64 {
	return math.Log(inflexion * math.Abs(velocity) / s.scale())
}

// Distance returns how far a fling starting at velocity travels. The sign of
// velocity is ignored.
func (s SplineFling) Distance(velocity float64) float64 {
	if velocity == 0 || s.scale() <= 0 {
		return 0
	}
	l := s.deceleration(velocity)
	return s.scale() * math.Exp(decelerationRate/(decelerationRate-1)*l)
}

// Velocity returns the initial speed of a fling that travels distance.
// It is the inverse of Distance and never negative.
func (s SplineFling) Velocity(distance float64) float64 {
	if distance <= 0 || s.scale() <= 0 {
		return 0
	}
	l := (decelerationRate - 1) * math.Log(distance/s.scale()) / decelerationRate
	return math.Abs(math.Exp(l) * s.scale() / inflexion)
}

// Duration returns how long a fling starting at velocity lasts.
func (s SplineFling) Duration(velocity float64) time.Duration {
	if velocity == 0 || s.scale() <= 0 {
		return 0
	}
	l := s.deceleration(velocity)
	seconds := math.Exp(l / (decelerationRate - 1))
	return time.Duration(seconds * float64(time.Second))
}
