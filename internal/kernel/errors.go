package kernel

import (
	"errors"
	"fmt"
)

var (
	ErrNoIntersection = errors.New("tool does not intersect target")
	ErrEmptyResult    = errors.New("operation produced no geometry")
	ErrInvalidInput   = errors.New("invalid operation input")
	ErrNotFound       = errors.New("query resolved to no entity")
)

// OpError reports a failed kernel call.
type OpError struct {
	Op  string
	ID  OpID
	Err error
}

func (e *OpError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ID, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
