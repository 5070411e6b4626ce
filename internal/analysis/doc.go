// Package analysis holds batch computations over the optics core: the
// sampled (FFT) autocorrelation of a pulse profile and parallel sweeps of
// the photodiode intensity over a delay range.
package analysis
