package vmath

// Easing curves for lifecycle and breath animation
// All take t in [0,1] and return [0,1]; out-of-range input is clamped
// so callers never need defensive guards

// Clamp01 clamps t to [0,1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Clamp clamps x to [lo,hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// CubicEaseOut decelerates toward the end; used for enter animations (snappy start)
func CubicEaseOut(t float64) float64 {
	t = Clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// CubicEaseIn accelerates from rest; used for exit animations (gentle start)
func CubicEaseIn(t float64) float64 {
	t = Clamp01(t)
	return t * t * t
}

// SmoothStep is the classic 3t²-2t³ hermite blend
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}
