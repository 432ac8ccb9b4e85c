package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup by id matches no row. It signals an
	// absent result, not a failure of the store.
	ErrNotFound = errors.New("not found")
	// ErrStorage wraps every failure reported by the database: constraint
	// violations, I/O errors and rolled back transactions.
	ErrStorage = errors.New("storage error")
)

// storageError keeps both ErrStorage and the driver error inspectable with errors.Is.
type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string { return e.op + ": " + e.err.Error() }

func (e *storageError) Unwrap() []error { return []error{ErrStorage, e.err} }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *storageError
	if errors.As(err, &se) {
		return err
	}
	return &storageError{op: op, err: err}
}
