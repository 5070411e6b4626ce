package analysis

import (
	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X[k]|^2 of data zero padded to size, which must
// be at least len(data). Any size works; powers of two are fastest.
func PowerSpectrum(data []float64, size int) []complex128 {
	x := fft.FFTReal(dsputils.ZeroPadF(data, size))
	for i, v := range x {
		x[i] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
	}
	return x
}

// paddedSize is the FFT length that keeps a linear correlation of n
// samples free of circular wrap-around.
func paddedSize(n int) int {
	return dsputils.NextPowerOf2(2 * n)
}
