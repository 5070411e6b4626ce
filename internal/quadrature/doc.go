// Package quadrature integrates smooth one-dimensional functions to a
// relative tolerance by successive refinement of a Gauss-Legendre rule.
//
// Infinite domains are handled by a rational change of variables; see
// [Adaptive.Infinite].
package quadrature
