package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrKind is the machine-readable classification of a domain error.
type ErrKind string

const (
	KindNotFound     ErrKind = "not_found"
	KindConflict     ErrKind = "conflict"
	KindInvalidState ErrKind = "invalid_state"
	KindValidation   ErrKind = "validation"
	KindInternal     ErrKind = "internal"
)

// AppError carries a stable kind alongside the human message so the
// transport layer can map it to a status code without string matching.
type AppError struct {
	Kind    ErrKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NotFoundErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidStateErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func ValidationErr(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to a response code. Anything that is not an
// AppError is treated as an unexpected internal failure.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) ErrKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
