package syncer

import (
	"errors"

	"taskflow/internal/models"
)

// Describe collapses an error into one user-facing message per category.
// The underlying detail is deliberately dropped; callers that need it keep
// the original error.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, models.ErrValidation):
		return "The task data was rejected. Check the fields and try again."
	case errors.Is(err, models.ErrNotFound):
		return "That task no longer exists."
	case errors.Is(err, models.ErrConflict):
		return "That name is already taken."
	case errors.Is(err, models.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, models.ErrUnavailable):
		return "Could not reach the server. Please try again later."
	default:
		return "Something went wrong. Please try again."
	}
}
