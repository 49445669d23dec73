package selector

import "math"

// Strength is the intensity of a haptic pulse.
type Strength int

const (
	Light Strength = iota + 1
	Medium
	Heavy
)

func (s Strength) String() string {
	switch s {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	}
	return "none"
}

// Release speeds, in px/s, at which a drag end adds a stronger pulse.
const (
	MediumVelocity = 800
	HeavyVelocity  = 2000
)

// Haptics plays haptic pulses. Devices without haptic support can pass
// NoHaptics.
type Haptics interface {
	Pulse(Strength)
}

// HapticsFunc adapts a function to Haptics.
type HapticsFunc func(Strength)

func (f HapticsFunc) Pulse(s Strength) { f(s) }

// NoHaptics discards every pulse.
var NoHaptics Haptics = HapticsFunc(func(Strength) {})

// VelocityPulse returns the extra pulse for a release at velocity v, if
// the release was fast enough to earn one.
func VelocityPulse(v float64) (Strength, bool) {
	switch speed := math.Abs(v); {
	case speed >= HeavyVelocity:
		return Heavy, true
	case speed >= MediumVelocity:
		return Medium, true
	}
	return 0, false
}
