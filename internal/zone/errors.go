package zone

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a zone does not exist.
	ErrNotFound = errors.New("not found")

	// ErrZoneExists is returned when creating a zone whose name is taken.
	ErrZoneExists = errors.New("zone already exists")
)

// ValidationError reports a malformed change directive or zone request.
type ValidationError struct {
	Name    string
	Type    string
	Message string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Name != "" && e.Type != "":
		return fmt.Sprintf("RRset %s IN %s: %s", e.Name, e.Type, e.Message)
	case e.Name != "":
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return e.Message
}

// ConflictError reports a CNAME exclusivity violation.
type ConflictError struct {
	Name string
	Type string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("RRset %s IN %s: Conflicts with pre-existing RRset", e.Name, e.Type)
}

// StoreError wraps a failure of the record store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// WrapStore wraps err as a StoreError unless it is nil or already carries
// one of the domain errors.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrZoneExists) || errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
