package handlers

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"campuskart-backend/internal/dto"
	"campuskart-backend/internal/utils"
)

// UploadHandler stores item photos on local disk and serves back their URL
type UploadHandler struct {
	dir      string
	maxBytes int64
}

// multipartOverhead covers boundary lines and part headers so that a file of
// exactly maxBytes still fits in the request body.
const multipartOverhead = 10 * 1024

// NewUploadHandler creates an UploadHandler writing into dir. Files larger
// than maxBytes are rejected.
func NewUploadHandler(dir string, maxBytes int64) *UploadHandler {
	return &UploadHandler{dir: dir, maxBytes: maxBytes}
}

// Upload handles POST /upload
// @Summary Upload an item photo
// @Tags upload
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Photo file (max 5MB)"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid upload", "photo file is required and must not exceed the size limit")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store file", err.Error())
		return
	}

	// Unique name: field, timestamp, random suffix, original extension.
	name := fmt.Sprintf("photo-%d-%09d%s",
		time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(header.Filename))

	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store file", err.Error())
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store file", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.UploadResponse{
		URL: "/uploads/" + name,
	})
}
