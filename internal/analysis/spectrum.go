package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is a one-sided magnitude spectrum.
type Spectrum struct {
	Power []float64
	Freqs []float64 // Hz
}

// PowerSpectrum transforms a signal sampled at interval dt into a
// one-sided magnitude spectrum. The mean is removed and a Hann window
// tapers the ends before the transform, so slow drifts do not leak
// into the low bins. Returns nil for fewer than four samples or a
// non-positive dt.
func PowerSpectrum(samples []float64, dt float64) *Spectrum {
	n := len(samples)
	if n < 4 || dt <= 0 {
		return nil
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	buf := make([]complex128, n)
	for i, v := range samples {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex((v-mean)*window, 0)
	}

	transformed := fft.FFT(buf)
	half := n / 2
	spec := &Spectrum{
		Power: make([]float64, half),
		Freqs: make([]float64, half),
	}
	for i := 0; i < half; i++ {
		spec.Power[i] = cmplx.Abs(transformed[i]) / float64(n)
		spec.Freqs[i] = float64(i) / (float64(n) * dt)
	}
	return spec
}

// DominantFrequency returns the frequency and magnitude of the strongest
// spectral line above DC.
func DominantFrequency(samples []float64, dt float64) (freq, power float64) {
	spec := PowerSpectrum(samples, dt)
	if spec == nil || len(spec.Power) < 2 {
		return 0, 0
	}

	best := 1
	for i := 2; i < len(spec.Power); i++ {
		if spec.Power[i] > spec.Power[best] {
			best = i
		}
	}
	return spec.Freqs[best], spec.Power[best]
}

// BandPower sums spectrum magnitude over [fLo, fHi).
func BandPower(spec *Spectrum, fLo, fHi float64) float64 {
	if spec == nil {
		return 0
	}
	sum := 0.0
	for i, f := range spec.Freqs {
		if f >= fLo && f < fHi {
			sum += spec.Power[i]
		}
	}
	return sum
}
