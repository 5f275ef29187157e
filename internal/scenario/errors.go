package scenario

import "fmt"

// BuildError reports a scenario element that cannot be validated or built.
type BuildError struct {
	Field  string // Dotted path into the document, e.g. "states[2].kind"
	Reason string // Human-readable reason for the failure
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("scenario %s: %s", e.Field, e.Reason)
}
