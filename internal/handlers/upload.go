package handlers

import (
	"net/http"
	"strings"

	"github.com/AnshRaj112/reflect-backend/internal/logger"
	"github.com/AnshRaj112/reflect-backend/internal/services"
)

const maxUploadBytes = 10 << 20 // 10MB

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadFile stores an image for embedding in entry content and returns its URL.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if fileHeader.Size > maxUploadBytes {
		writeError(w, http.StatusBadRequest, "File is larger than 10MB")
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		writeError(w, http.StatusBadRequest, "Only images can be uploaded")
		return
	}

	userID := UserID(r.Context())
	url, err := h.Uploader.UploadImage(r.Context(), fileHeader, userID, services.DefaultUploadFolder)
	if err != nil {
		logger.Error("image upload failed", "user_id", userID, "error", err)
		writeError(w, http.StatusBadGateway, "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
