package domain

// ValidationError represents a request validation failure.
// The handler layer maps these to HTTP 422.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a persistence failure. The handler layer maps these
// to a fixed-message HTTP 500; the underlying cause is only ever logged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
