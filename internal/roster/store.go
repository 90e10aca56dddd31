// Package roster owns the in-memory customer roster and its durable CSV form.
package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/cris-labs/cris/internal/model"
)

// StorageError reports that the durable table is unreadable, malformed, or
// unwritable. An unreadable table at startup is fatal; a failed append is not.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("roster: %s", e.Op)
	}
	return fmt.Sprintf("roster: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Store is the persistence boundary for the roster. Loads happen once at
// process start; the only mutation is a single-row append.
type Store interface {
	// Load reads the full durable table into memory.
	Load(ctx context.Context) ([]model.Customer, error)

	// Append validates the record, persists the whole table with the record
	// added, and only then updates the in-memory roster. All-or-nothing: a
	// failed write leaves both file and memory as they were.
	Append(ctx context.Context, c model.Customer) error

	// All returns a copy of the in-memory roster in persisted row order.
	All() []model.Customer
}
