package api

import (
	"errors"
	"net/http"

	"github.com/kritanta/cartmates/internal/models"
)

// errorCode is the machine-readable kind carried in error responses so
// clients can distinguish expected conditions (already_member,
// owner_cannot_leave) from hard failures.
func errorCode(err error) string {
	var validation *models.ValidationError
	var authn *models.AuthenticationError
	var authz *models.AuthorizationError
	var notFound *models.NotFoundError
	var conflict *models.ConflictError
	var dependency *models.DependencyError

	switch {
	case errors.Is(err, models.ErrAlreadyMember):
		return "already_member"
	case errors.Is(err, models.ErrOwnerCannotLeave):
		return "owner_cannot_leave"
	case errors.As(err, &validation):
		return "validation_error"
	case errors.As(err, &authn):
		return "unauthenticated"
	case errors.As(err, &authz):
		return "forbidden"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &conflict):
		return "conflict"
	case errors.As(err, &dependency):
		return "dependency_failed"
	default:
		return "internal"
	}
}

// httpStatusFromError maps domain errors to HTTP status codes.
func httpStatusFromError(err error) int {
	switch errorCode(err) {
	case "validation_error":
		return http.StatusBadRequest
	case "unauthenticated":
		return http.StatusUnauthorized
	case "forbidden":
		return http.StatusForbidden
	case "not_found":
		return http.StatusNotFound
	case "conflict", "already_member", "owner_cannot_leave":
		return http.StatusConflict
	case "dependency_failed":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
