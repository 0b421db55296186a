package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/concerro/ScoreWise/internal/models"
)

// HealthCheck reports liveness and which collaborators are configured.
// GET /healthz
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:      "ok",
		Version:     "1.0.0",
		OpenAI:      h.Analyzer.IsConfigured(),
		Stripe:      h.Cfg.StripeSecretKey != "",
		Wkhtmltopdf: h.Exporter.IsConfigured(),
	})
}
