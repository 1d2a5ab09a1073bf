package apperr

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Type string

const (
	TypeNotFound     Type = "NOT_FOUND"
	TypeInvalidInput Type = "INVALID_INPUT"
	TypeUnauthorized Type = "UNAUTHORIZED"
	TypeConflict     Type = "CONFLICT"
	TypeInternal     Type = "INTERNAL"
)

// Error is the one error shape that crosses service boundaries. The HTTP
// facade switches on Type to pick a status code; Stack is for logs only.
type Error struct {
	Type    Type
	Message string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(t Type, message string, err error) *Error {
	var stack []byte
	if err != nil {
		var ge *goerrors.Error
		if errors.As(err, &ge) {
			stack = ge.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{Type: t, Message: message, Err: err, Stack: stack}
}

func NotFound(message string, err error) *Error {
	return New(TypeNotFound, message, err)
}

func InvalidInput(message string, err error) *Error {
	return New(TypeInvalidInput, message, err)
}

func Unauthorized(message string, err error) *Error {
	return New(TypeUnauthorized, message, err)
}

func Conflict(message string, err error) *Error {
	return New(TypeConflict, message, err)
}

func Internal(message string, err error) *Error {
	return New(TypeInternal, message, err)
}

// TypeOf reports the classified type of err, defaulting to INTERNAL for
// anything that did not come through this package.
func TypeOf(err error) Type {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Type
	}
	return TypeInternal
}
