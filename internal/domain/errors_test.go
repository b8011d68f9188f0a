package domain

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Message: "price is required"}
	if err.Error() != "price is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestStorageError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &StorageError{Op: "insert order", Err: cause}

	if err.Error() != "storage: insert order: connection refused" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to be reachable via errors.Is")
	}
}
