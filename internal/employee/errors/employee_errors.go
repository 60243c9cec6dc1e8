package employeeerrors

import (
	"net/http"

	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	// The duplicate check covers both unique columns at once, so the message
	// does not distinguish which one collided.
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee already exists (ID or Email)",
		http.StatusBadRequest,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Please add all fields",
		http.StatusBadRequest,
	)
)
