package leave

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"
)

// maxProofBytes caps one proof upload at 10 MB.
const maxProofBytes = 10 << 20

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

func readProof(file *multipart.FileHeader) (ProofUpload, error) {
	src, err := file.Open()
	if err != nil {
		return ProofUpload{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxProofBytes))
	if err != nil {
		return ProofUpload{}, err
	}
	return ProofUpload{
		Data:     data,
		Filename: file.Filename,
		MimeType: file.Header.Get("Content-Type"),
	}, nil
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req CreateLeaveRequest
	if err := c.ShouldBind(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	var proofs []ProofUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["proofs"] {
			upload, err := readProof(file)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Bukti tidak dapat dibaca", err.Error())
				return
			}
			proofs = append(proofs, upload)
		}
	}

	resp, err := h.service.Create(c.Request.Context(), userID, req, proofs)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	role := c.GetString("role")

	resp, err := h.service.Get(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	role := c.GetString("role")

	var query ListLeavesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query tidak valid", err.Error())
		return
	}

	items, meta, err := h.service.List(c.Request.Context(), userID, role, query)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, meta)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	resp, err := h.service.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Destroy(c *gin.Context) {
	if err := h.service.Destroy(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.Summary(c.Request.Context(), userID, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddProof(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	file, err := c.FormFile("proof")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File proof wajib diisi", nil)
		return
	}
	upload, err := readProof(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Bukti tidak dapat dibaca", err.Error())
		return
	}

	resp, err := h.service.AddProof(c.Request.Context(), userID, c.Param("id"), upload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DeleteProof(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	role := c.GetString("role")

	if err := h.service.DeleteProof(c.Request.Context(), userID, role, c.Param("proof_id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) VerifyProof(c *gin.Context) {
	adminID := c.GetString("user_id_validated")

	resp, err := h.service.VerifyProof(c.Request.Context(), adminID, c.Param("proof_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
