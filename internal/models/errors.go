package models

import (
	"errors"
	"fmt"
)

// Expected domain conditions the caller must special-case rather than treat
// as hard failures.
var (
	// ErrAlreadyMember signals an idempotent join: the user is already in the
	// member set and membership is unchanged.
	ErrAlreadyMember = errors.New("already a member of this group")

	// ErrOwnerCannotLeave instructs the caller that owners delete their group
	// instead of leaving it.
	ErrOwnerCannotLeave = errors.New("owner cannot leave the group, delete it instead")
)

// ValidationError reports user-correctable bad input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthenticationError reports missing or invalid credentials or tokens.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// NewAuthenticationError builds an AuthenticationError from a format string.
func NewAuthenticationError(format string, args ...any) *AuthenticationError {
	return &AuthenticationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError reports an authenticated but unpermitted request, e.g.
// not a member or not the owner.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// NewAuthorizationError builds an AuthorizationError from a format string.
func NewAuthorizationError(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an absent entity.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NewNotFoundError builds a NotFoundError for the named resource.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError reports a duplicate unique field, e.g. a taken email.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NewConflictError builds a ConflictError from a format string.
func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// DependencyError reports a failure in an external collaborator such as the
// email provider. It wraps the underlying error.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *DependencyError) Unwrap() error { return e.Err }

// NewDependencyError wraps an external failure under the named operation.
func NewDependencyError(op string, err error) *DependencyError {
	return &DependencyError{Op: op, Err: err}
}
