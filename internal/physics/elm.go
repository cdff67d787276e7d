package physics

import "math"

// ELMFrequency is the edge localized mode cycle frequency for the given
// pedestal pressure and pedestal current.
func ELMFrequency(pedestalPressure, pedestalCurrent float64) float64 {
	return 0.1 * math.Sqrt(pedestalPressure/pedestalCurrent)
}

// ELMAmplitude is the instantaneous ELM perturbation amplitude at time t:
// a baseline of 0.05 modulated sinusoidally at the cycle frequency.
func ELMAmplitude(t, pedestalPressure, pedestalCurrent float64) float64 {
	f := ELMFrequency(pedestalPressure, pedestalCurrent)
	return 0.05 + 0.1*math.Sin(2.0*math.Pi*f*t)
}
