package qrcodeerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrTokenInvalid = apperror.New(
		apperror.CodeInvalidState,
		"qr token is invalid, expired, or already used",
		http.StatusUnprocessableEntity,
	)
	ErrTokenStore = apperror.New(
		apperror.CodeServiceUnavailable,
		"qr token store unavailable",
		http.StatusServiceUnavailable,
	)
)
