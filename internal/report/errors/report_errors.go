package reporterrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"invalid report range, expected YYYY-MM-DD start_date and end_date",
		http.StatusUnprocessableEntity,
	)
	ErrRangeTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"report range cannot exceed one year",
		http.StatusUnprocessableEntity,
	)
)
