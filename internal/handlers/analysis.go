// analysis.go serves the analysis view — the idempotent heart of the flow.
//
// GET /analysis: the first visit for a fresh upload runs the whole
// extract→analyze→chart pipeline and caches the artifacts; every visit
// after that is a pure disk read. Missing session state is never an error
// here, just a redirect back to the upload page.
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/concerro/ScoreWise/internal/models"
)

// sessionUpload pulls the current upload state out of the visitor's session.
func sessionUpload(c *gin.Context) (analysisID, filename string) {
	session := sessions.Default(c)
	if v, ok := session.Get(sessionKeyAnalysisID).(string); ok {
		analysisID = v
	}
	if v, ok := session.Get(sessionKeyFilename).(string); ok {
		filename = v
	}
	return analysisID, filename
}

// Analysis renders the credit analysis for the session's current upload.
// GET /analysis
func (h *Handler) Analysis(c *gin.Context) {
	analysisID, filename := sessionUpload(c)
	if analysisID == "" || filename == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if !h.Store.Exists(filename) {
		// The stored document expired or was reaped — recoverable, re-upload
		c.Redirect(http.StatusFound, "/")
		return
	}

	record, charts, err := h.getOrCompute(c.Request.Context(), analysisID, filename)
	if err != nil {
		log.Printf("Analysis %s failed: %v", analysisID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "analysis_failed",
			Message: "Credit report analysis failed: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.HTML(http.StatusOK, "analysis.html", gin.H{
		"Data":   record,
		"Charts": charts,
	})
}
