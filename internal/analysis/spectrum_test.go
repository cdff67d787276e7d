package analysis

import (
	"math"
	"testing"
)

func tone(freq, amp, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

func TestPowerSpectrumFindsTone(t *testing.T) {
	samples := tone(50.0, 1.0, 0.001, 1000)

	freq, power := DominantFrequency(samples, 0.001)
	if math.Abs(freq-50.0) > 1.0 {
		t.Errorf("expected dominant line near 50 Hz, got %f", freq)
	}
	if power < 0.2 || power > 0.3 {
		t.Errorf("expected windowed line magnitude near 0.25, got %f", power)
	}
}

func TestDominantFrequencyIgnoresOffset(t *testing.T) {
	samples := tone(30.0, 0.5, 0.001, 1000)
	for i := range samples {
		samples[i] += 10.0
	}

	freq, _ := DominantFrequency(samples, 0.001)
	if math.Abs(freq-30.0) > 1.0 {
		t.Errorf("offset should not mask the 30 Hz line, got %f", freq)
	}
}

func TestPowerSpectrumDegenerateInput(t *testing.T) {
	if PowerSpectrum([]float64{1, 2, 3}, 0.001) != nil {
		t.Error("expected nil for too few samples")
	}
	if PowerSpectrum(tone(10, 1, 0.001, 100), 0) != nil {
		t.Error("expected nil for zero dt")
	}

	freq, power := DominantFrequency(nil, 0.001)
	if freq != 0 || power != 0 {
		t.Error("expected zero dominant line for no input")
	}
}

func TestPowerSpectrumFrequencyAxis(t *testing.T) {
	spec := PowerSpectrum(tone(50, 1, 0.001, 1000), 0.001)
	if spec == nil {
		t.Fatal("expected a spectrum")
	}

	if len(spec.Power) != 500 || len(spec.Freqs) != 500 {
		t.Fatalf("expected 500 one-sided bins, got %d", len(spec.Power))
	}
	if math.Abs(spec.Freqs[1]-1.0) > 1e-12 {
		t.Errorf("expected 1 Hz resolution, got %f", spec.Freqs[1])
	}
	if spec.Freqs[0] != 0 {
		t.Errorf("expected DC bin at 0 Hz, got %f", spec.Freqs[0])
	}
}

func TestBandPower(t *testing.T) {
	samples := tone(20.0, 1.0, 0.001, 1000)
	high := tone(80.0, 0.5, 0.001, 1000)
	for i := range samples {
		samples[i] += high[i]
	}
	spec := PowerSpectrum(samples, 0.001)

	low := BandPower(spec, 10, 30)
	upper := BandPower(spec, 70, 90)
	if low <= upper {
		t.Errorf("expected the 20 Hz band to dominate: low %f, upper %f", low, upper)
	}

	if BandPower(nil, 0, 100) != 0 {
		t.Error("expected zero band power for nil spectrum")
	}
}
