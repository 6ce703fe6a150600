package ledger

import "fmt"

// ValidationError is returned when a shipment write is malformed. Write
// failures are surfaced to the caller; they are never silently dropped.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// NotFoundError is returned when a status update targets an unknown
// shipment.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
