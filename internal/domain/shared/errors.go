package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// NotFoundError indicates that a requested entity has no usable data,
// e.g. an order without open-balance lines.
type NotFoundError struct {
	*DomainError
}

func NewNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{DomainError: &DomainError{Message: fmt.Sprintf(format, args...)}}
}

// ConflictError indicates a duplicate active release for an order.
type ConflictError struct {
	*DomainError
}

func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{DomainError: &DomainError{Message: fmt.Sprintf(format, args...)}}
}

// InvalidInputError indicates malformed structural input at the API boundary.
// It fails fast, before any computation starts.
type InvalidInputError struct {
	*DomainError
}

func NewInvalidInputError(format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{DomainError: &DomainError{Message: fmt.Sprintf(format, args...)}}
}

// EmptyError indicates that every candidate line was removed by filters.
type EmptyError struct {
	*DomainError
}

func NewEmptyError(format string, args ...interface{}) *EmptyError {
	return &EmptyError{DomainError: &DomainError{Message: fmt.Sprintf(format, args...)}}
}

// UnresolvableError indicates that a bounded search horizon was exceeded,
// e.g. the scheduler could not place an account within its advance cap.
type UnresolvableError struct {
	*DomainError
}

func NewUnresolvableError(format string, args ...interface{}) *UnresolvableError {
	return &UnresolvableError{DomainError: &DomainError{Message: fmt.Sprintf(format, args...)}}
}
