package ai

import "fmt"

// ServiceError reports a failed call to an external model service.
// Retryable distinguishes transient transport/availability failures from
// permanent ones (bad request, auth) so callers can surface a retry hint.
type ServiceError struct {
	Service   string
	Retryable bool
	Err       error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func serviceErr(service string, retryable bool, err error) error {
	return &ServiceError{Service: service, Retryable: retryable, Err: err}
}
