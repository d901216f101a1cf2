package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)

// Domain errors decoded from identity and push provider responses.
var (
	// ErrUpstream matches every [UpstreamError].
	ErrUpstream = errors.New("upstream service error")

	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPushToken   = errors.New("push token is not registered")
	ErrEmptyTranslation   = errors.New("translation response is empty")
)

// UpstreamError is a failed call to an external service.
type UpstreamError struct {
	// Service names the integration, e.g. "identity", "push", "translation".
	Service string
	// Status is the HTTP status code, zero for transport failures.
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s: http %d: %v", e.Service, e.Status, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is makes every UpstreamError match [ErrUpstream].
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func transportError(service string, err error) error {
	return &UpstreamError{Service: service, Err: err}
}
