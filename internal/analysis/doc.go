// Package analysis provides signal analysis for recorded shot channels.
//
// The package works on sampled time series pulled out of a shot history:
//
//   - [PowerSpectrum]: one-sided magnitude spectrum with a Hann window
//   - [DominantFrequency]: strongest non-DC spectral line
//   - [BandPower]: integrated magnitude over a frequency band
//
// # Mode Identification
//
// MHD activity carries its oscillation frequency in the spectrum:
//
//	spec := analysis.PowerSpectrum(mhd, dt)
//	f, _ := analysis.DominantFrequency(mhd, dt)
package analysis
