package leavequotaerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrQuotaNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave quota not found",
		http.StatusNotFound,
	)
	ErrQuotaExists = apperror.New(
		apperror.CodeConflict,
		"leave quota already exists for this user and year",
		http.StatusConflict,
	)
	ErrBelowUsed = apperror.New(
		apperror.CodeInvalidState,
		"total_quota cannot be lower than used_quota",
		http.StatusUnprocessableEntity,
	)
	ErrInsufficientQuota = apperror.New(
		apperror.CodeInvalidState,
		"insufficient leave quota for the requested duration",
		http.StatusUnprocessableEntity,
	)
)
