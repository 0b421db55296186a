// upload.go handles the report upload that starts a visitor's session.
//
// POST /upload — multipart field "file", .pdf only. On success the document
// is persisted, a fresh analysis ID is minted, and (analysis_id, filename)
// become the session's current upload — replacing any prior one.
package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/concerro/ScoreWise/internal/models"
	"github.com/concerro/ScoreWise/internal/storage"
)

// maxUploadSize is the max size for uploaded credit reports (20MB).
const maxUploadSize = 20 << 20

// Index serves the upload entry page.
// GET /
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", nil)
}

// Upload accepts a credit report PDF.
// POST /upload
//
// Validation failures never mutate state: no document is written and the
// session keeps whatever upload it had before.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file",
			Message: "No file provided. Upload a PDF with the field name 'file'. Max size: 20MB.",
			Code:    http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	if strings.TrimSpace(header.Filename) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file",
			Message: "No selected file",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file",
			Message: "Unsupported file format '" + ext + "'. Only .pdf files are accepted.",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if storage.SanitizeFilename(header.Filename) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file",
			Message: "Invalid filename",
			Code:    http.StatusBadRequest,
		})
		return
	}

	stored, err := h.Store.Save(header.Filename, file)
	if err != nil {
		log.Printf("Failed to store upload %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to store uploaded file",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// Mint a fresh analysis ID and make this the session's current upload
	analysisID := uuid.New().String()
	session := sessions.Default(c)
	session.Set(sessionKeyAnalysisID, analysisID)
	session.Set(sessionKeyFilename, stored)
	if err := session.Save(); err != nil {
		log.Printf("Failed to save session for %s: %v", stored, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "session_error",
			Message: "Failed to save session",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	log.Printf("📄 Stored %s as analysis %s", stored, analysisID)
	c.JSON(http.StatusOK, models.UploadResponse{Success: true})
}
