package service

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error is a workflow failure carrying the HTTP class it maps to. Anything
// reaching the boundary without one is treated as internal.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error, format string, args ...any) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...), Err: err}
}

// wrapDB maps a gorm lookup failure for entity <what> id <id>.
func wrapDB(err error, what string, id uint) *Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("%s %d not found", what, id)
	}
	return Internal(err, "failed to load %s %d", what, id)
}
