// Package physics provides the tokamak physics kernel library.
//
// Kernels are pure functions over [plasma.State] fields and [device.Params];
// they hold no state and perform no validation. Non-finite inputs propagate
// to non-finite outputs:
//
//   - [FluxSurface]: parabolic equilibrium flux approximation
//   - [SafetyFactor]: cylindrical q profile with shaping correction
//   - [Beta] / [BetaNormalized]: plasma pressure ratios
//   - [ConfinementTime]: IPB98-style energy confinement scaling
//   - [NTMStep]: neoclassical tearing mode island evolution
//   - [ELMFrequency] / [ELMAmplitude]: edge localized mode cycle
//   - [ThermalQuench] / [CurrentQuench]: disruption decay models
//   - [DisruptionForce]: vessel force estimate during a current quench
//   - [ECRH]: electron cyclotron resonance heating deposition
//
// # Units
//
// Plasma current enters in MA and is converted to amperes internally where
// a formula needs SI; densities are in units of 1e19 m^-3, temperatures in
// keV, powers in MW. Conversion factors are named in constants.go and
// applied at the point of use.
package physics
