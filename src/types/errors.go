package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	ErrInternal ErrorKind = iota
	ErrValidation
	ErrUnauthorized
	ErrForbidden
	ErrNotFound
	ErrRule
	ErrGateway
)

// DomainError is returned by the booking, payment and coupon rules. Kind
// decides the HTTP status; Msg is safe to show to the caller.
type DomainError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *DomainError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Withf returns a copy of e with a formatted message, wrapping e.
func (e *DomainError) Withf(format string, args ...any) *DomainError {
	return &DomainError{Kind: e.Kind, Msg: fmt.Sprintf(format, args...), Err: e}
}

// Wrap attaches a cause to e while keeping its message.
func (e *DomainError) Wrap(err error) *DomainError {
	return &DomainError{Kind: e.Kind, Msg: e.Msg, Err: errors.Join(e, err)}
}

func NewValidationError(msg string) *DomainError {
	return &DomainError{Kind: ErrValidation, Msg: msg}
}

func NewUnauthorizedError(msg string) *DomainError {
	return &DomainError{Kind: ErrUnauthorized, Msg: msg}
}

func NewForbiddenError(msg string) *DomainError {
	return &DomainError{Kind: ErrForbidden, Msg: msg}
}

func NewNotFoundError(msg string) *DomainError {
	return &DomainError{Kind: ErrNotFound, Msg: msg}
}

func NewRuleError(msg string) *DomainError {
	return &DomainError{Kind: ErrRule, Msg: msg}
}

func NewGatewayError(msg string) *DomainError {
	return &DomainError{Kind: ErrGateway, Msg: msg}
}

// HTTPStatus maps err to a response status code. Errors that are not a
// DomainError are treated as internal failures.
func HTTPStatus(err error) int {
	var de *DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case ErrValidation, ErrRule:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
