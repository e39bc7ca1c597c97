package workinghourerrors

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
)

var (
	ErrWorkingHourNotFound = apperror.New(
		apperror.CodeNotFound,
		"working hour not found",
		http.StatusNotFound,
	)
	ErrInvalidDayOfWeek = apperror.New(
		apperror.CodeInvalidInput,
		"day_of_week must be monday through sunday",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"time must use the HH:MM 24-hour format",
		http.StatusUnprocessableEntity,
	)
	ErrDuplicateDay = apperror.New(
		apperror.CodeInvalidInput,
		"duplicate day_of_week in schedule payload",
		http.StatusUnprocessableEntity,
	)
)
