// download.go handles the paid PDF export.
//
// POST /download reuses the same cache-or-compute path as the analysis view,
// renders the analysis template to a string, strips the interactive
// "Download PDF" control out of it (the exported document shouldn't carry a
// dead button), and converts the markup to a PDF attachment.
package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/concerro/ScoreWise/internal/cache"
	"github.com/concerro/ScoreWise/internal/models"
)

// downloadLabel is the interactive control text removed from exported HTML.
const downloadLabel = "Download PDF"

// Download exports the analysis as a PDF attachment named credit_analysis.pdf.
// POST /download
func (h *Handler) Download(c *gin.Context) {
	analysisID, filename := sessionUpload(c)
	if analysisID == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	record, charts, err := h.Cache.Get(analysisID)
	if errors.Is(err, cache.ErrMiss) {
		// No cached artifacts yet — fall back to computing from the stored
		// document, exactly like the analysis view would
		if filename == "" || !h.Store.Exists(filename) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		record, charts, err = h.getOrCompute(c.Request.Context(), analysisID, filename)
	}
	if err != nil {
		log.Printf("Download %s failed: %v", analysisID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "export_failed",
			Message: "Failed to prepare analysis for export: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	var rendered bytes.Buffer
	if err := h.Templates.ExecuteTemplate(&rendered, "analysis.html", gin.H{
		"Data":   record,
		"Charts": charts,
	}); err != nil {
		log.Printf("Download %s render failed: %v", analysisID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "export_failed",
			Message: "Failed to render analysis for export",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	html := strings.ReplaceAll(rendered.String(), downloadLabel, "")

	pdfPath, err := h.Exporter.Convert(html)
	if err != nil {
		log.Printf("Download %s conversion failed: %v", analysisID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "conversion_failed",
			Message: "PDF conversion failed: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}
	// The temp file only needs to live for the duration of the response
	defer os.Remove(pdfPath)

	c.FileAttachment(pdfPath, "credit_analysis.pdf")
}
