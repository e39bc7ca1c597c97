package attendanceerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrDuplicateClockIn = apperror.New(
		apperror.CodeConflict,
		"already clocked in today",
		http.StatusConflict,
	)
	ErrDuplicateClockOut = apperror.New(
		apperror.CodeConflict,
		"already clocked out today",
		http.StatusConflict,
	)
	ErrMissingClockIn = apperror.New(
		apperror.CodeInvalidState,
		"cannot clock out before clocking in",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidClockType = apperror.New(
		apperror.CodeInvalidInput,
		"clock_type must be in or out",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date filter, expected YYYY-MM-DD",
		http.StatusUnprocessableEntity,
	)
	ErrTaskLogNotFound = apperror.New(
		apperror.CodeNotFound,
		"task log not found",
		http.StatusNotFound,
	)
	ErrTaskLogForbidden = apperror.New(
		apperror.CodeForbidden,
		"task log belongs to another user",
		http.StatusForbidden,
	)
)
