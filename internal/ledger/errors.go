package ledger

import "fmt"

// PersistenceError represents a failure to open, read, or write the ledger file.
type PersistenceError struct {
	Path    string
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ledger %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("ledger %s: %s", e.Path, e.Message)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
