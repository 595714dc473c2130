package typegraph

import "fmt"

type (
	// ConstructionError indicates a build failed on a malformed description or
	// an unresolvable forward reference under eager evaluation. Fatal to the
	// single build call; never auto-retried.
	ConstructionError struct {
		Reason string
		Err    error
	}

	// ResolutionError indicates a forward reference could not be resolved
	// within its namespace
	ResolutionError struct {
		Name      string
		Namespace string
		Err       error
	}
)

// Error implements error
func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("typegraph: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("typegraph: %s", e.Reason)
}

// Unwrap returns the wrapped cause
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Error implements error
func (e *ResolutionError) Error() string {
	if e.Namespace != "" {
		return fmt.Sprintf("typegraph: unable to resolve %q in %q", e.Name, e.Namespace)
	}
	return fmt.Sprintf("typegraph: unable to resolve %q", e.Name)
}

// Unwrap returns the wrapped cause
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func constructionErrorf(format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{Reason: fmt.Sprintf(format, args...)}
}
