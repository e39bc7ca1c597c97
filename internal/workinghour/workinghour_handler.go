package workinghour

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-absensi/internal/middleware"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Assign(c *gin.Context) {
	var req AssignWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateUserSchedule(c *gin.Context) {
	var req UpdateUserScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateUserSchedule(c.Request.Context(), c.Param("user_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetMyWeek returns the authenticated user's monday-to-sunday schedule.
func (h *Handler) GetMyWeek(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetWeek(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetUserWeek(c *gin.Context) {
	userID := c.Param("user_id")
	if c.GetString("role") != middleware.RoleAdmin && userID != c.GetString("user_id_validated") {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Tidak boleh melihat jadwal user lain", nil)
		return
	}

	resp, err := h.service.GetWeek(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
