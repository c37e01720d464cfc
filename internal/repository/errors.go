package repository

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrEmailTaken is returned when a user with the same email already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserOwnsBoards is returned when deleting a user that still owns boards
	ErrUserOwnsBoards = errors.New("user still owns boards")
)

// Entity kinds used in NotFoundError.
const (
	KindUser    = "User"
	KindBoard   = "Board"
	KindList    = "List"
	KindCard    = "Card"
	KindComment = "Comment"
	KindLabel   = "Label"
)

// NotFoundError is returned when a row of the given kind does not exist.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

// IsNotFound reports whether err is a NotFoundError, optionally of a specific kind.
func IsNotFound(err error, kind ...string) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return len(kind) == 0 || nf.Kind == kind[0]
}
