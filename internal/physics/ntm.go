package physics

import "math"

// NTMGrowthRate is the modified Rutherford growth rate for a neoclassical
// tearing mode island of width w: a linear drive deltaPrime*w, a bootstrap
// drive alpha*w/(1+w^3) and a linear damping beta*w.
func NTMGrowthRate(w, deltaPrime, alpha, beta float64) float64 {
	return deltaPrime*w + alpha*w/(1.0+w*w*w) - beta*w
}

// NTMStep advances the island width by one explicit Euler step of dt.
// The growth rate is damped by a logistic saturation factor centered on
// wSat, which pins the island near its saturated width.
func NTMStep(w, wSat, deltaPrime, alpha, beta, dt float64) float64 {
	growth := NTMGrowthRate(w, deltaPrime, alpha, beta)
	saturation := 1.0 / (1.0 + math.Exp(10.0*(w-wSat)))
	return w + dt*growth*saturation
}
