// Package svcerr defines the error taxonomy every service operation in
// this module converts underlying failures into: one wrapping type, a
// handful of constructors, and Is* predicates for callers that need to
// branch on category.
package svcerr

import (
	"errors"
	"fmt"
)

// Code categorizes a ServiceError: every underlying failure is mapped
// into exactly one of these before it leaves a service boundary.
type Code string

const (
	// BadInput means the caller's data was rejected: a malformed URL, a
	// bad timestamp, a reference to an unknown id, or a schema/claim
	// mismatch.
	BadInput Code = "bad_input"
	// NotFound means an addressed-by-id resource is absent.
	NotFound Code = "not_found"
	// Internal means storage I/O failure, JSON codec failure, mutex
	// poisoning, crypto-suite backend failure, or missing required
	// configuration (e.g. an issuer with no verification methods).
	Internal Code = "internal"
)

// ServiceError wraps an underlying error with the category and operation
// that produced it.
type ServiceError struct {
	Code Code
	Op   string
	Err  error

	// Field names the offending input field, when applicable (BadInput).
	Field string
}

func (e *ServiceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s): %v", e.Op, e.Code, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// New builds a ServiceError of the given category.
func New(code Code, op string, err error) *ServiceError {
	return &ServiceError{Code: code, Op: op, Err: err}
}

// NewField builds a BadInput ServiceError naming the offending field.
func NewField(op, field string, err error) *ServiceError {
	return &ServiceError{Code: BadInput, Op: op, Err: err, Field: field}
}

// BadInputf builds a BadInput ServiceError from a formatted message.
func BadInputf(op, field, format string, args ...any) *ServiceError {
	return NewField(op, field, fmt.Errorf(format, args...))
}

// Internalf builds an Internal ServiceError from a formatted message.
func Internalf(op, format string, args ...any) *ServiceError {
	return New(Internal, op, fmt.Errorf(format, args...))
}

// NotFoundf builds a NotFound ServiceError from a formatted message.
func NotFoundf(op, format string, args ...any) *ServiceError {
	return New(NotFound, op, fmt.Errorf(format, args...))
}

func codeOf(err error) (Code, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code, true
	}
	return "", false
}

// IsBadInput reports whether err is a ServiceError of category BadInput.
func IsBadInput(err error) bool {
	code, ok := codeOf(err)
	return ok && code == BadInput
}

// IsNotFound reports whether err is a ServiceError of category NotFound.
func IsNotFound(err error) bool {
	code, ok := codeOf(err)
	return ok && code == NotFound
}

// IsInternal reports whether err is a ServiceError of category Internal.
func IsInternal(err error) bool {
	code, ok := codeOf(err)
	return ok && code == Internal
}

// HTTPStatus maps a ServiceError's category to its HTTP status code.
// Unrecognized errors map to 500, matching the "internal" default.
func HTTPStatus(err error) int {
	code, ok := codeOf(err)
	if !ok {
		return 500
	}
	switch code {
	case BadInput:
		return 400
	case NotFound:
		return 404
	default:
		return 500
	}
}
