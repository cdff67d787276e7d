// Package engine advances the macroscopic plasma state in time.
//
// [Engine.Advance] applies one explicit forward step of the reduced model:
// an RL circuit for the plasma current, a zero-dimensional energy and
// particle balance, a vertical position update, and the derived stability
// figures (q95, normalized beta, MHD activity with instability penalties).
//
// The engine is deliberately narrow: it mutates only the [plasma.State] it
// is handed. Shot orchestration (clock, history, phase transitions,
// disruption response) lives in the shot and safety packages.
//
// # Determinism
//
// The MHD noise term draws from a seeded source injected at construction.
// Two engines built with the same seed and stepped identically produce
// bit-identical trajectories.
package engine
