package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed taxonomy every client-visible failure maps into.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindValidation   ErrorKind = "validation_error"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInternal     ErrorKind = "internal_error"
)

// ServiceError is a typed failure raised anywhere in the request pipeline.
type ServiceError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ServiceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func Unauthorized(detail string) *ServiceError {
	return &ServiceError{Kind: KindUnauthorized, Detail: detail}
}

func Forbidden(detail string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Detail: detail}
}

func Validation(detail string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Detail: detail}
}

func NotFound(detail string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Detail: detail}
}

func Conflict(detail string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Detail: detail}
}

func Internal(detail string) *ServiceError {
	return &ServiceError{Kind: KindInternal, Detail: detail}
}

// KindOf classifies any error; anything that is not a ServiceError is internal.
func KindOf(err error) ErrorKind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
