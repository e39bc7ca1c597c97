package report

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

func (h *Handler) Generate(c *gin.Context) {
	var query ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query tidak valid", err.Error())
		return
	}

	// admin boleh meminta laporan user lain
	userID := c.GetString("user_id_validated")
	if query.UserID != "" && query.UserID != userID {
		if c.GetString("role") != middleware.RoleAdmin {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Tidak boleh melihat laporan user lain", nil)
			return
		}
		userID = query.UserID
	}

	resp, err := h.service.Generate(c.Request.Context(), userID, query)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
