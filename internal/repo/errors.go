package repo

import (
	"errors"
	"fmt"
)

// ErrNoFields is returned by Update when the field set is empty. Nothing is
// written and the row is not looked up, so it says nothing about existence.
var ErrNoFields = errors.New("no fields to update")

// StorageError wraps a driver or connection failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
