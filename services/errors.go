// File: /services/errors.go
package services

import (
	"net/http"
)

// ErrorKind classifies a lifecycle failure. Controllers translate kinds to
// HTTP status codes in exactly one place; the messages are shown to end
// users verbatim.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindForbidden
	KindInvalidState
	KindConflict
	KindValidation
)

type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to the status the REST surface responds
// with. InvalidState and Validation both map to 400, matching how the API
// has always reported "cannot do that right now" errors.
func (e *ServiceError) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func NotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func ForbiddenError(message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

func InvalidStateError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidState, Message: message}
}

func ConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func ValidationError(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message}
}
