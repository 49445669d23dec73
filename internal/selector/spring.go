package selector

import (
	"math"
	"time"
)

// DefaultStiffness is the natural angular frequency of snap springs in
// rad/s.
const DefaultStiffness = 20

// Settling tolerances for a spring.
const (
	restDistance = 0.5 // px
	restSpeed    = 1   // px/s
)

// Spring is a critically damped spring moving from From to To. It reaches
// To without overshoot when started at rest.
type Spring struct {
	From     float64
	To       float64
	Velocity float64 // initial velocity in px/s
	Omega    float64 // natural frequency in rad/s
}

// NewSpring returns a spring from one offset to another with the default
// stiffness, starting at rest.
func NewSpring(from, to float64) Spring {
	return Spring{From: from, To: to, Omega: DefaultStiffness}
}

func (s Spring) omega() float64 {
	if s.Omega <= 0 {
		return DefaultStiffness
	}
	return s.Omega
}

// Position returns the offset t after the spring started.
func (s Spring) Position(t time.Duration) float64 {
	w := s.omega()
	sec := t.Seconds()
	x0 := s.From - s.To
	b := s.Velocity + w*x0
	return s.To + (x0+b*sec)*math.Exp(-w*sec)
}

// VelocityAt returns the spring's velocity t after it started.
func (s Spring) VelocityAt(t time.Duration) float64 {
	w := s.omega()
	sec := t.Seconds()
	b := s.Velocity + w*(s.From-s.To)
	return (s.Velocity - w*b*sec) * math.Exp(-w*sec)
}

// Settled reports whether the spring is close enough to rest at t that it
// can be snapped to To.
func (s Spring) Settled(t time.Duration) bool {
	return math.Abs(s.Position(t)-s.To) < restDistance && math.Abs(s.VelocityAt(t)) < restSpeed
}
