// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// No ORM magic — these are just data containers. The cache package handles
// persistence by writing them out as JSON files.
package models

import (
	"strconv"
	"strings"
)

// FlexCount is an integer that tolerates sloppy LLM output.
//
// The analyzer asks for strict JSON, but models occasionally return counts
// as strings ("12"), floats (12.0), null, or even "NaN". Anything that can't
// be read as a finite number decodes to zero instead of failing the whole
// analysis.
type FlexCount int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexCount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*f = 0
		return nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || val != val { // val != val catches NaN
		*f = 0
		return nil
	}
	*f = FlexCount(int(val))
	return nil
}

// Int returns the count as a plain int.
func (f FlexCount) Int() int { return int(f) }

// PaymentHistory holds on-time vs late payment counts from the credit report.
type PaymentHistory struct {
	OnTime FlexCount `json:"on_time"`
	Late   FlexCount `json:"late"`
}

// AnalysisRecord is the structured result of analyzing one credit report.
// Once computed for an analysis ID it is immutable: every subsequent read
// returns the cached record byte-for-byte.
type AnalysisRecord struct {
	CreditScore       int            `json:"credit_score"`
	CreditUtilization float64        `json:"credit_utilization"`
	PaymentHistory    PaymentHistory `json:"payment_history"`
	AvgAccountAge     float64        `json:"avg_account_age"`
	AccountTypes      map[string]int `json:"account_types,omitempty"`
	NegativeItems     int            `json:"negative_items"`
	DetailedAnalysis  string         `json:"detailed_analysis"`
	ImprovementAdvice string         `json:"improvement_advice"`
	ActionSteps       []string       `json:"action_steps"`
	NegativeItemPlans []string       `json:"negative_item_plans"`
	Roadmap90Days     []string       `json:"roadmap_90_days"`
	ApprovalAdvice    string         `json:"approval_advice"`
	FAQ               []string       `json:"faq"`
}

// ChartSet maps a chart name (credit_score, credit_utilization,
// payment_history, account_types) to a base64-encoded PNG image.
type ChartSet map[string]string

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// UploadResponse is returned on a successful report upload.
type UploadResponse struct {
	Success bool `json:"success"`
}

// CheckoutResponse carries the Stripe Checkout session back to the browser.
// The id is enough for Stripe.js redirectToCheckout; url supports a plain
// window.location redirect.
type CheckoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// HealthResponse reports service health and collaborator configuration.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	OpenAI      bool   `json:"openai_configured"`
	Stripe      bool   `json:"stripe_configured"`
	Wkhtmltopdf bool   `json:"wkhtmltopdf_available"`
}
