package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("resource conflict") // e.g., concurrent moderation of one listing
	ErrInternalServer     = errors.New("internal server error")
	ErrValidation         = errors.New("validation failed")
	ErrServiceUnavailable = errors.New("service unavailable") // e.g. backing store unreachable

	// ErrNotAdmin: the identity provider verified the credentials but no
	// authorization record exists for that identity.
	ErrNotAdmin = errors.New("not authorized as admin")

	// ErrInvalidTransition: the requested account-standing change is not
	// reachable through the exposed control surface.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrSessionUnresolved: a protected operation ran before the session
	// store finished its first resolution against the identity provider.
	ErrSessionUnresolved = errors.New("session not yet initialized")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotAdmin) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrSessionUnresolved) {
		return http.StatusServiceUnavailable
	}

	// Check for pgx specific errors (example for unique constraint)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
