package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyPatch      = errors.New("patch changes nothing")
)

// FetchError wraps a failed read from the prize store.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UpdateError wraps a failed write to the prize store.
type UpdateError struct {
	Op  string
	ID  int
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s (prize %d): %v", e.Op, e.ID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }
