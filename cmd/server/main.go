// Package main is the entry point for the ScoreWise credit analysis server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/concerro/ScoreWise/internal/cache"
	"github.com/concerro/ScoreWise/internal/config"
	"github.com/concerro/ScoreWise/internal/handlers"
	"github.com/concerro/ScoreWise/internal/router"
	"github.com/concerro/ScoreWise/internal/services/analyzer"
	"github.com/concerro/ScoreWise/internal/services/charts"
	"github.com/concerro/ScoreWise/internal/services/exporter"
	"github.com/concerro/ScoreWise/internal/services/extract"
	"github.com/concerro/ScoreWise/internal/services/janitor"
	"github.com/concerro/ScoreWise/internal/services/payment"
	"github.com/concerro/ScoreWise/internal/storage"
	"github.com/concerro/ScoreWise/internal/web"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("🚀 ScoreWise %s starting...", Version)

	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Allow port override from the command line: --port 5003
	if len(os.Args) > 2 && os.Args[1] == "--port" {
		cfg.Port = os.Args[2]
	}

	log.Printf("📋 Config loaded: port=%s, gin_mode=%s, uploads=%s, cache=%s",
		cfg.Port, cfg.GinMode, cfg.UploadDir, cfg.CacheDir)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Open storage
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("❌ Failed to open upload dir: %v", err)
	}
	artifactCache, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Fatalf("❌ Failed to open artifact cache: %v", err)
	}
	log.Println("✅ Storage ready")

	// Step 3: Create services
	reportAnalyzer := analyzer.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if reportAnalyzer.IsConfigured() {
		log.Printf("✅ Credit analysis enabled (model %s)", cfg.OpenAIModel)
	} else {
		log.Println("⚠️  Credit analysis disabled (set OPENAI_API_KEY to enable)")
	}

	pdfExporter := exporter.New(cfg.WkhtmltopdfPath)
	if pdfExporter.IsConfigured() {
		log.Printf("🔧 wkhtmltopdf path: %s", cfg.WkhtmltopdfPath)
	} else {
		log.Println("⚠️  wkhtmltopdf not found (PDF export will fail — set WKHTMLTOPDF_PATH)")
	}

	gateway := payment.New(cfg.StripeSecretKey, cfg.AppURL)
	if cfg.StripeSecretKey != "" {
		log.Printf("✅ Stripe checkout enabled (verify payments: %v)", cfg.StripeVerifyPayments)
	} else {
		log.Println("⚠️  Stripe disabled (set STRIPE_SECRET_KEY to enable checkout)")
	}

	tmpl, err := web.Templates()
	if err != nil {
		log.Fatalf("❌ Failed to parse templates: %v", err)
	}

	// Step 4: Start the retention janitor
	reaper := janitor.New(cfg.RetentionTTL, cfg.SweepInterval, store, artifactCache)
	reaper.Start()
	defer reaper.Stop()

	// Step 5: Setup HTTP router
	h := handlers.New(cfg, artifactCache, store,
		extract.NewExtractor(), reportAnalyzer, charts.New(),
		gateway, pdfExporter, tmpl)
	r := router.Setup(h, cfg.SessionSecret, cfg.AllowedOrigins)

	// Step 6: Start the HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
		// LLM analysis and PDF conversion run inside the request, so the
		// write timeout has to cover the slowest full pipeline
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 7: Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
