// Package router sets up all HTTP routes for the application.
package router

import (
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/concerro/ScoreWise/internal/handlers"
	"github.com/concerro/ScoreWise/internal/middleware"
	"github.com/concerro/ScoreWise/internal/web"
)

// Setup creates and configures the Gin router with all routes.
func Setup(h *handlers.Handler, sessionSecret string, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	// Signed cookie sessions carry the visitor's (analysis_id, filename)
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("scorewise_session", store))

	r.SetHTMLTemplate(h.Templates)

	// Embedded static assets (stripe.js)
	staticSub, err := fs.Sub(web.StaticFS(), "static")
	if err != nil {
		panic(err) // embed layout is fixed at compile time
	}
	r.StaticFS("/static", http.FS(staticSub))

	r.GET("/", h.Index)
	r.POST("/upload", h.Upload)
	r.GET("/analysis", h.Analysis)
	r.POST("/download", h.Download)
	r.POST("/create-checkout-session", h.CreateCheckoutSession)
	r.GET("/success", h.PaymentSuccess)
	r.GET("/healthz", h.HealthCheck)

	return r
}
