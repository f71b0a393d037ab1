package filter

import "math"

const (
	DefaultMinCutoff = 1.0
	DefaultBeta      = 0.007
	DefaultDCutoff   = 1.0

	// Smallest time step, in seconds, used when two samples share a timestamp.
	minDeltaSeconds = 1e-3
)

// OneEuro is an adaptive low-pass filter for a single noisy signal.
// Slow movement gets a low cutoff (less jitter), fast movement raises it (less lag).
type OneEuro struct {
	MinCutoff float64
	Beta      float64
	DCutoff   float64

	initialized bool
	prevValue   float64
	prevDeriv   float64
	prevMillis  int64
}

func NewOneEuro(minCutoff, beta, dCutoff float64) *OneEuro {
	return &OneEuro{
		MinCutoff: minCutoff,
		Beta:      beta,
		DCutoff:   dCutoff,
	}
}

// NewDefaultOneEuro returns a filter tuned for normalized landmark coordinates.
func NewDefaultOneEuro() *OneEuro {
	return NewOneEuro(DefaultMinCutoff, DefaultBeta, DefaultDCutoff)
}

// Apply feeds one sample and returns the smoothed value.
func (f *OneEuro) Apply(value float64, timestampMillis int64) float64 {
	if !f.initialized {
		f.initialized = true
		f.prevValue = value
		f.prevDeriv = 0
		f.prevMillis = timestampMillis
		return value
	}

	dt := float64(timestampMillis-f.prevMillis) / 1000.0
	if dt < minDeltaSeconds {
		dt = minDeltaSeconds
	}
	freq := 1.0 / dt

	deriv := (value - f.prevValue) * freq
	smoothedDeriv := lowPass(deriv, f.prevDeriv, smoothingFactor(freq, f.DCutoff))

	cutoff := f.MinCutoff + f.Beta*math.Abs(smoothedDeriv)
	smoothed := lowPass(value, f.prevValue, smoothingFactor(freq, cutoff))

	f.prevValue = smoothed
	f.prevDeriv = smoothedDeriv
	f.prevMillis = timestampMillis
	return smoothed
}

func (f *OneEuro) Reset() {
	f.initialized = false
	f.prevValue = 0
	f.prevDeriv = 0
	f.prevMillis = 0
}

// smoothingFactor converts a cutoff frequency into an exponential smoothing alpha.
func smoothingFactor(freq, cutoff float64) float64 {
	if cutoff <= 0 {
		return 0
	}
	tau := 1.0 / (2 * math.Pi * cutoff)
	te := 1.0 / freq
	return 1.0 / (1.0 + tau/te)
}

func lowPass(value, prev, alpha float64) float64 {
	return alpha*value + (1-alpha)*prev
}
