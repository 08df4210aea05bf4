package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when no session exists for the shop
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrValidation is returned when request input fails validation
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrPrecondition is returned when a required precondition is missing
// (e.g. no inventory location resolvable for inventory editing)
type ErrPrecondition struct {
	Message string
}

func (e *ErrPrecondition) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "precondition failed"
}
