// Package handlers contains HTTP handler functions for the web workflow.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides request
// data, response methods, and middleware values. We group related handlers
// into a struct (Handler) that holds shared dependencies.
//
// Collaborators are injected through small interfaces rather than concrete
// services, so tests can swap in stubs for the slow pieces (LLM calls, chart
// rendering, PDF conversion) and exercise the session workflow directly.
package handlers

import (
	"context"
	"errors"
	"html/template"
	"sync"

	"github.com/concerro/ScoreWise/internal/cache"
	"github.com/concerro/ScoreWise/internal/config"
	"github.com/concerro/ScoreWise/internal/models"
	"github.com/concerro/ScoreWise/internal/services/extract"
	"github.com/concerro/ScoreWise/internal/services/payment"
	"github.com/concerro/ScoreWise/internal/storage"
)

// Session keys for the visitor's upload state.
const (
	sessionKeyAnalysisID = "analysis_id"
	sessionKeyFilename   = "filename"
)

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(data []byte) (*extract.Result, error)
}

// ReportAnalyzer turns extracted text into a structured analysis record.
type ReportAnalyzer interface {
	Analyze(ctx context.Context, reportText string) (*models.AnalysisRecord, error)
	IsConfigured() bool
}

// ChartRenderer turns an analysis record into a set of encoded chart images.
type ChartRenderer interface {
	Generate(record *models.AnalysisRecord) (models.ChartSet, error)
}

// PaymentGateway creates and inspects checkout sessions.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context) (*payment.Session, error)
	SessionPaid(ctx context.Context, sessionID string) (bool, error)
}

// PDFConverter renders HTML to a temporary PDF file and returns its path.
type PDFConverter interface {
	Convert(html string) (string, error)
	IsConfigured() bool
}

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields. Instead of global
// variables or service locators, we pass dependencies explicitly.
type Handler struct {
	Cfg       *config.Config
	Cache     *cache.Cache
	Store     *storage.DocumentStore
	Extractor TextExtractor
	Analyzer  ReportAnalyzer
	Charts    ChartRenderer
	Payments  PaymentGateway
	Exporter  PDFConverter
	Templates *template.Template

	// Per-analysis-ID locks around the miss→compute→put path, so two
	// concurrent requests for the same fresh ID don't both pay for an
	// LLM call. Entries are cheap and never reaped — IDs are bounded by
	// uploads, not by traffic.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates a handler with all dependencies.
func New(cfg *config.Config, c *cache.Cache, store *storage.DocumentStore,
	ex TextExtractor, an ReportAnalyzer, ch ChartRenderer,
	pay PaymentGateway, exp PDFConverter, tmpl *template.Template) *Handler {
	return &Handler{
		Cfg:       cfg,
		Cache:     c,
		Store:     store,
		Extractor: ex,
		Analyzer:  an,
		Charts:    ch,
		Payments:  pay,
		Exporter:  exp,
		Templates: tmpl,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockAnalysis acquires the per-ID mutex and returns its unlock func.
func (h *Handler) lockAnalysis(analysisID string) func() {
	h.locksMu.Lock()
	mu, ok := h.locks[analysisID]
	if !ok {
		mu = &sync.Mutex{}
		h.locks[analysisID] = mu
	}
	h.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// getOrCompute is the cache-or-compute heart of the workflow: return the
// cached record and charts for the analysis ID, or run the full
// extract→analyze→chart pipeline and cache the result.
//
// Put only happens after the whole pipeline succeeds, so the cache never
// holds a partial analysis. A corrupted cache entry propagates as an error —
// data that was supposed to be immutable must not be silently recomputed.
func (h *Handler) getOrCompute(ctx context.Context, analysisID, filename string) (*models.AnalysisRecord, models.ChartSet, error) {
	unlock := h.lockAnalysis(analysisID)
	defer unlock()

	record, charts, err := h.Cache.Get(analysisID)
	if err == nil {
		return record, charts, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		return nil, nil, err
	}

	data, err := h.Store.Read(filename)
	if err != nil {
		return nil, nil, err
	}

	extracted, err := h.Extractor.Extract(data)
	if err != nil {
		return nil, nil, err
	}

	record, err = h.Analyzer.Analyze(ctx, extracted.Text)
	if err != nil {
		return nil, nil, err
	}

	charts, err = h.Charts.Generate(record)
	if err != nil {
		return nil, nil, err
	}

	if err := h.Cache.Put(analysisID, record, charts); err != nil {
		return nil, nil, err
	}

	return record, charts, nil
}
