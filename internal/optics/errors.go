package optics

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain indicates an input outside the domain of a formula.
	ErrDomain = errors.New("optics: input outside formula domain")

	// ErrIntegration indicates a quadrature that did not reach its tolerance.
	ErrIntegration = errors.New("optics: integration did not converge")
)

// DomainError records which operation rejected which parameter.
type DomainError struct {
	Op     string
	Param  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s=%g: %s", e.Op, e.Param, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: invalid %s=%g", e.Op, e.Param, e.Value)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// IntegrationError wraps a failed quadrature with its last estimate.
type IntegrationError struct {
	Op       string
	Evals    int
	Estimate float64
	RelErr   float64
	Wrapped  error
}

func (e *IntegrationError) Error() string {
	msg := fmt.Sprintf("%s: no convergence after %d evaluations (estimate %g, rel err %.2e)", e.Op, e.Evals, e.Estimate, e.RelErr)
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *IntegrationError) Unwrap() []error {
	if e.Wrapped != nil {
		return []error{ErrIntegration, e.Wrapped}
	}
	return []error{ErrIntegration}
}

func domainErr(op, param string, v float64, reason string) error {
	return &DomainError{Op: op, Param: param, Value: v, Reason: reason}
}
