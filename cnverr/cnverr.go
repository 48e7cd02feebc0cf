// Package cnverr defines the fatal error kinds surfaced at the process
// boundary (spec section on error handling). NumericError never
// reaches this package: NaN/Inf degeneracies inside the inference
// kernels are clamped to 0 inline and are not treated as errors.
package cnverr

import "fmt"

// Kind distinguishes the two fatal error categories.
type Kind int

const (
	// Configuration covers mismatched sample counts between input
	// lists, missing pedigree entries, and unparseable parameters.
	Configuration Kind = iota
	// Data covers chromosome-name disagreement between inputs,
	// negative coverage, empty likelihood vectors, and parental
	// likelihood length mismatches.
	Data
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "ConfigurationError"
	case Data:
		return "DataError"
	default:
		return "UnknownError"
	}
}

// Error wraps a plain error with a Kind and the offending file or
// identifier, so callers at the process boundary can errors.As to it
// without changing how intermediate code propagates the underlying
// error.
type Error struct {
	Kind   Kind
	Ident  string // offending file or sample/segment identifier
	Reason error
}

func (e *Error) Error() string {
	if e.Ident != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Ident, e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Reason }

// Configf constructs a Configuration error.
func Configf(ident string, format string, args ...any) *Error {
	return &Error{Kind: Configuration, Ident: ident, Reason: fmt.Errorf(format, args...)}
}

// Dataf constructs a Data error.
func Dataf(ident string, format string, args ...any) *Error {
	return &Error{Kind: Data, Ident: ident, Reason: fmt.Errorf(format, args...)}
}
