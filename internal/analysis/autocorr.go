package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/nlolab/internal/optics"
)

var ErrTooFewSamples = errors.New("analysis: need at least two samples")

// Autocorrelation is a lag axis with the normalised autocorrelation at
// each lag.
type Autocorrelation struct {
	Lags   optics.Grid
	Values optics.Grid
}

// SampledAutocorrelation computes r(k) = sum_i f[i] f[i+k] / sum_i f[i]^2
// for lags -(n-1)..(n-1) samples, via the power spectrum of the zero
// padded signal. dx is the sample spacing used for the lag axis.
func SampledAutocorrelation(samples []float64, dx float64) (*Autocorrelation, error) {
	n := len(samples)
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	if !(dx > 0) {
		return nil, fmt.Errorf("analysis: sample spacing must be positive, got %g", dx)
	}
	if !optics.Grid(samples).IsFinite() {
		return nil, fmt.Errorf("%w: analysis: samples must be finite", optics.ErrDomain)
	}

	size := paddedSize(n)
	r := fft.IFFT(PowerSpectrum(samples, size))

	zero := real(r[0])
	if !(zero > 0) || math.IsInf(zero, 0) {
		return nil, fmt.Errorf("analysis: signal has no energy (r0=%g)", zero)
	}

	out := &Autocorrelation{
		Lags:   make(optics.Grid, 2*n-1),
		Values: make(optics.Grid, 2*n-1),
	}
	for k := -(n - 1); k < n; k++ {
		idx := k
		if k < 0 {
			idx = size + k
		}
		out.Lags[k+n-1] = float64(k) * dx
		out.Values[k+n-1] = real(r[idx]) / zero
	}
	return out, nil
}

// At returns the value at the sampled lag nearest to tau.
func (a *Autocorrelation) At(tau float64) float64 {
	n := len(a.Lags)
	dx := a.Lags[1] - a.Lags[0]
	i := int(math.Round((tau - a.Lags[0]) / dx))
	i = max(0, min(i, n-1))
	return a.Values[i]
}

// Deviation is the largest difference between a sampled autocorrelation
// and an estimator, over the lags where |lag| <= maxLag.
func Deviation(a *Autocorrelation, est optics.Estimator, mean, variance, maxLag float64) (float64, error) {
	worst := 0.0
	for i, lag := range a.Lags {
		if math.Abs(lag) > maxLag {
			continue
		}
		want, err := est.Coefficient(mean, variance, lag)
		if err != nil {
			return 0, err
		}
		worst = math.Max(worst, math.Abs(a.Values[i]-want))
	}
	return worst, nil
}
