// Package export writes render states and sweeps to files: PNG line plots
// and heat maps through gonum/plot, and CSV tables through gota.
package export
