package phenology

import "fmt"

// ValidationError reports a coordinate outside its valid range. It is raised
// at value-construction time and propagates unmodified up to the transport
// layer, which translates it into a client-facing response.
type ValidationError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g, got %g", e.Field, e.Min, e.Max, e.Value)
}

// RepositoryError wraps a backend-level failure (unreachable storage, query
// errors) so callers can tell "could not determine" apart from "not found".
// The in-memory repository never produces one.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }
