package collab

import "strconv"

// CollaboratorError represents a failed call to the remote inventory API:
// network failure, exhausted retries, a non-success status, or a malformed
// payload. Callers treat every variant the same way, as "this tier failed".
type CollaboratorError struct {
	Op       string
	URL      string
	Status   int
	Attempts int
	Err      error
}

func (e *CollaboratorError) Error() string {
	msg := e.Op + " failed"
	if e.URL != "" {
		msg += " for " + e.URL
	}
	if e.Attempts > 1 {
		msg += " after " + strconv.Itoa(e.Attempts) + " attempts"
	}
	if e.Status != 0 {
		msg += " (HTTP " + strconv.Itoa(e.Status) + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
