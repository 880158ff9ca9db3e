package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrorKind is the stable classification every failure carries to callers.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindInvalidInput       ErrorKind = "invalid_input"
	KindInvalidState       ErrorKind = "invalid_state"
	KindCapacityExceeded   ErrorKind = "capacity_exceeded"
	KindConflictOnWrite    ErrorKind = "conflict_on_write"
	KindStorageUnavailable ErrorKind = "storage_unavailable"
)

// Error is a classified failure. Msg is safe to show to callers; Err holds the internal cause.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, treating unclassified errors as storage failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageUnavailable
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the caller-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "storage unavailable"
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) error {
	return &Error{Kind: KindInvalidState, Msg: fmt.Sprintf(format, args...)}
}

func CapacityExceeded(format string, args ...any) error {
	return &Error{Kind: KindCapacityExceeded, Msg: fmt.Sprintf(format, args...)}
}

// dbError classifies a gorm error. notFoundMsg is used when the record is missing.
func dbError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Msg: notFoundMsg, Err: err}
	}
	if isConflict(err) {
		return &Error{Kind: KindConflictOnWrite, Msg: "concurrent modification, retry the request", Err: err}
	}
	return &Error{Kind: KindStorageUnavailable, Msg: "storage unavailable", Err: err}
}

func isConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"duplicate key",
		"unique constraint failed",
		"deadlock detected",
		"could not serialize",
		"database is locked",
		"sqlstate 23505",
		"sqlstate 40001",
		"sqlstate 40p01",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
