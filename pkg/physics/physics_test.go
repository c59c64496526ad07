package physics

import (
	"math"
	"testing"
	"time"
)

func TestSplineFling_RoundTrip(t *testing.T) {
	s := NewSplineFling(2)
	for _, v := range []float64{150, 800, 2000, 6000, -3000} {
		d := s.Distance(v)
		if d <= 0 {
			t.Fatalf("Distance(%v) = %v, want > 0", v, d)
		}
		got := s.Velocity(d)
		if math.Abs(got-math.Abs(v)) > 1e-6*math.Abs(v) {
			t.Errorf("Velocity(Distance(%v)) = %v, want %v", v, got, math.Abs(v))
		}
	}
}

func TestSplineFling_Monotonic(t *testing.T) {
	s := NewSplineFling(3)
	prev := 0.0
	for v := 100.0; v <= 8000; v += 100 {
		d := s.Distance(v)
		if d <= prev {
			t.Fatalf("Distance(%v) = %v, not greater than %v", v, d, prev)
		}
		prev = d
	}
	if s.Distance(-2000) != s.Distance(2000) {
		t.Error("Distance should ignore the sign of velocity")
	}
}

func TestSplineFling_Zero(t *testing.T) {
	s := NewSplineFling(2)
	if got := s.Distance(0); got != 0 {
		t.Errorf("Distance(0) = %v, want 0", got)
	}
	if got := s.Velocity(0); got != 0 {
		t.Errorf("Velocity(0) = %v, want 0", got)
	}
	if got := s.Velocity(-10); got != 0 {
		t.Errorf("Velocity(-10) = %v, want 0", got)
	}
	if got := s.Duration(0); got != 0 {
		t.Errorf("Duration(0) = %v, want 0", got)
	}
	var unset SplineFling
	if unset.Distance(1000) != 0 || unset.Velocity(100) != 0 {
		t.Error("zero SplineFling should report no motion")
	}
}

func TestSplineFling_KnownValue(t *testing.T) {
	s := NewSplineFling(2)
	// 2000 px/s on a density 2 screen travels about 389 px.
	if got := s.Distance(2000); math.Abs(got-388.6) > 1 {
		t.Errorf("Distance(2000) = %.1f, want about 388.6", got)
	}
	if got := s.Duration(2000); got < 500*time.Millisecond || got > 700*time.Millisecond {
		t.Errorf("Duration(2000) = %v, want about 0.6s", got)
	}
}

func TestBallistic_Settles(t *testing.T) {
	b := NewBallistic(1500)
	steps := 0
	for {
		delta, done := b.Step(1.0 / 60)
		if delta < 0 {
			t.Fatalf("positive fling moved backwards: %v", delta)
		}
		steps++
		if done {
			break
		}
		if steps > 1000 {
			t.Fatal("fling did not settle")
		}
	}
	if b.Traveled() <= 0 {
		t.Errorf("Traveled = %v, want > 0", b.Traveled())
	}
	if math.Abs(b.Velocity()) >= MinVelocity {
		t.Errorf("Velocity after settle = %v", b.Velocity())
	}
}

func TestBallistic_NegativeAndGuards(t *testing.T) {
	b := NewBallistic(-900)
	delta, _ := b.Step(0.016)
	if delta >= 0 {
		t.Errorf("negative fling delta = %v, want < 0", delta)
	}
	if d, _ := b.Step(0); d != 0 {
		t.Errorf("Step(0) = %v, want 0", d)
	}
	b.Stop()
	if !b.Done() {
		t.Error("Stop did not settle")
	}
	if !NewBallistic(math.NaN()).Done() || !NewBallistic(math.Inf(1)).Done() {
		t.Error("invalid velocities should start settled")
	}
}

func TestBallistic_CapsLargeSteps(t *testing.T) {
	a := NewBallistic(1000)
	b := NewBallistic(1000)
	da, _ := a.Step(maxStep)
	db, _ := b.Step(1)
	if da != db {
		t.Errorf("Step(1) = %v, want the capped step %v", db, da)
	}
}

func TestSplineMotion_CoversDistance(t *testing.T) {
	s := NewSplineFling(2)
	for _, v := range []float64{800, 2000, -3000} {
		m := s.Start(v)
		want := math.Copysign(s.Distance(v), v)
		sum := 0.0
		frames := 0
		for !m.Done() {
			delta, _ := m.Step(1.0 / 60)
			if delta*v < 0 {
				t.Fatalf("Start(%v) moved backwards by %v", v, delta)
			}
			sum += delta
			frames++
			if frames > 1000 {
				t.Fatalf("Start(%v) did not settle", v)
			}
		}
		if math.Abs(sum-want) > 1e-6 || math.Abs(m.Traveled()-want) > 1e-6 {
			t.Errorf("Start(%v) traveled %v (steps sum %v), want %v", v, m.Traveled(), sum, want)
		}
		if m.Distance() != want {
			t.Errorf("Distance() = %v, want %v", m.Distance(), want)
		}
		if m.Velocity() != 0 {
			t.Errorf("Velocity after settle = %v, want 0", m.Velocity())
		}
	}
}

func TestSplineMotion_HandOffRoundTrip(t *testing.T) {
	s := NewSplineFling(2)
	// A fling started from the velocity for a distance covers that distance.
	m := s.Start(s.Velocity(288.6))
	for !m.Done() {
		m.Step(1.0 / 60)
	}
	if math.Abs(m.Traveled()-288.6) > 1e-6 {
		t.Errorf("Traveled = %v, want 288.6", m.Traveled())
	}
}

func TestSplineMotion_StopAndGuards(t *testing.T) {
	s := NewSplineFling(2)
	m := s.Start(2000)
	m.Step(1.0 / 60)
	if m.Velocity() <= 0 {
		t.Errorf("Velocity mid-fling = %v, want > 0", m.Velocity())
	}
	at := m.Traveled()
	m.Stop()
	if !m.Done() || m.Velocity() != 0 {
		t.Error("Stop did not settle")
	}
	if d, done := m.Step(1.0 / 60); d != 0 || !done || m.Traveled() != at {
		t.Errorf("Step after Stop = %v, %v; want 0, true", d, done)
	}
	if !s.Start(0).Done() || !s.Start(math.NaN()).Done() || !s.Start(math.Inf(-1)).Done() {
		t.Error("zero and invalid velocities should start settled")
	}
}

func TestSplinePositionTable(t *testing.T) {
	if splinePosition[splineSamples] != 1 {
		t.Errorf("last sample = %v, want 1", splinePosition[splineSamples])
	}
	for i := 1; i <= splineSamples; i++ {
		if splinePosition[i] < splinePosition[i-1] {
			t.Fatalf("sample %d = %v decreases from %v", i, splinePosition[i], splinePosition[i-1])
		}
	}
}
