package common

// Base window size.
const (
	BaseWidth  = 960
	BaseHeight = 720
)

// StepDT is the fixed simulation step in seconds.
const StepDT = 1.0 / 60.0

// Clamp limits v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp interpolates from a to b by t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
