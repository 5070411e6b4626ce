// Package optics provides the numerical core of nlolab.
//
// Everything in this package is a pure function of its inputs and imports no
// UI code:
//
//   - [Gaussian]: Gaussian profile with peak 1 at the mean over a sample [Grid]
//   - [WalkOff]: birefringence walk-off delay in nanoseconds
//   - [Correlation]: overlap coefficient of a Gaussian and its delayed copy
//   - [CorrelationQuad]: the same coefficient by adaptive quadrature
//   - [PhaseMatch]: SHG phase-matching check
//   - [SHGField]: second-harmonic field approximation over the (x0, y0) plane
//   - [Ellipsoid]: index ellipsoid surface and direction vector
//
// # Errors
//
// Invalid inputs (non-positive variance, equal refractive indices) return a
// [*DomainError] that matches [ErrDomain] with errors.Is. A quadrature that
// does not converge returns a [*IntegrationError] matching [ErrIntegration].
// NaN and Inf are never returned in place of an error.
//
// # Example
//
//	cr := optics.DefaultCrystal()
//	tauM, _ := cr.WalkOffNs()
//	gamma, _ := optics.Correlation(0, 1, 0.5-tauM)
package optics
