package leaveerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"type must be sakit or cuti",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after start_date",
		http.StatusUnprocessableEntity,
	)
	ErrOverlappingRequest = apperror.New(
		apperror.CodeConflict,
		"an active leave request already covers part of this range",
		http.StatusConflict,
	)
	ErrImmutable = apperror.New(
		apperror.CodeInvalidState,
		"leave request can no longer be modified",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadyRejected = apperror.New(
		apperror.CodeInvalidState,
		"leave request is already rejected",
		http.StatusUnprocessableEntity,
	)
	ErrCannotCancelStarted = apperror.New(
		apperror.CodeInvalidState,
		"leave request that has started cannot be cancelled",
		http.StatusUnprocessableEntity,
	)
	ErrProofLimit = apperror.New(
		apperror.CodeInvalidState,
		"a leave request can hold at most 5 proofs",
		http.StatusUnprocessableEntity,
	)
	ErrProofNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request proof not found",
		http.StatusNotFound,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"leave request belongs to another user",
		http.StatusForbidden,
	)
)
