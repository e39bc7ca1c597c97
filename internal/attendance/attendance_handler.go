package attendance

import (
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"
)

// maxPhotoBytes caps task log photo uploads at 5 MB.
const maxPhotoBytes = 5 << 20

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

func (h *Handler) RecordClock(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req RecordClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.RecordClock(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetToday(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetToday(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query tidak valid", err.Error())
		return
	}

	items, meta, err := h.service.List(c.Request.Context(), userID, query)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, meta)
}

func readPhoto(file *multipart.FileHeader) (*PhotoUpload, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxPhotoBytes))
	if err != nil {
		return nil, err
	}
	return &PhotoUpload{Data: data, Filename: file.Filename}, nil
}

func (h *Handler) CreateTaskLog(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req CreateTaskLogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	var photo *PhotoUpload
	if file, err := c.FormFile("photo"); err == nil {
		photo, err = readPhoto(file)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Foto tidak dapat dibaca", err.Error())
			return
		}
	}

	resp, err := h.service.AddTaskLog(c.Request.Context(), userID, req, photo)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateTaskLog(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req UpdateTaskLogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	var photo *PhotoUpload
	if file, err := c.FormFile("photo"); err == nil {
		photo, err = readPhoto(file)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Foto tidak dapat dibaca", err.Error())
			return
		}
	}

	resp, err := h.service.UpdateTaskLog(c.Request.Context(), userID, c.Param("id"), req, photo)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteTaskLog(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	if err := h.service.DeleteTaskLog(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetTaskLogs(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Format tanggal salah", nil)
			return
		}
		date = parsed
	}

	resp, err := h.service.GetTaskLogs(c.Request.Context(), userID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
