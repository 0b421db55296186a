// Package analyzer turns extracted credit-report text into a structured
// AnalysisRecord via an OpenAI chat completion.
//
// The request uses a strict JSON schema response format, so the model is
// constrained to return exactly the fields AnalysisRecord expects. We still
// keep a recovery path for models that wrap the JSON in markdown fences —
// schema mode is reliable but belt-and-suspenders costs nothing here.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/concerro/ScoreWise/internal/models"
)

const systemPrompt = "You are a world-class financial analyst specializing in credit reports. " +
	"Analyze the given credit report and provide a detailed summary. " +
	"In your output, ensure the following: " +
	"1. Give a concise executive summary of the person's credit health and risks. " +
	"2. List at least five highly actionable, personalized steps to improve their credit, referencing specific numbers from the report. " +
	"3. For each negative item or risk, provide a clear explanation and a step-by-step action plan to resolve it (with links to reputable resources if possible). " +
	"4. Provide a 90-day improvement roadmap with monthly milestones. " +
	"5. Offer tailored advice for maximizing approval odds for loans, credit cards, or mortgages, based on their profile. " +
	"6. Include a myth-busting FAQ section about credit scores and reports. " +
	"7. Make the advice practical, detailed, and worth at least $99—do not be generic. " +
	"8. Use clear, confident, and encouraging language."

// analysisSchema constrains the model's output to the AnalysisRecord shape.
var analysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"credit_score": {"type": "integer"},
		"credit_utilization": {"type": "number"},
		"payment_history": {
			"type": "object",
			"properties": {
				"on_time": {"type": "integer"},
				"late": {"type": "integer"}
			},
			"required": ["on_time", "late"],
			"additionalProperties": false
		},
		"avg_account_age": {"type": "number"},
		"account_types": {
			"type": "object",
			"additionalProperties": {"type": "integer"}
		},
		"negative_items": {"type": "integer"},
		"detailed_analysis": {"type": "string"},
		"improvement_advice": {"type": "string"},
		"action_steps": {"type": "array", "items": {"type": "string"}},
		"negative_item_plans": {"type": "array", "items": {"type": "string"}},
		"roadmap_90_days": {"type": "array", "items": {"type": "string"}},
		"approval_advice": {"type": "string"},
		"faq": {"type": "array", "items": {"type": "string"}}
	},
	"required": [
		"credit_score", "credit_utilization", "payment_history", "avg_account_age",
		"negative_items", "detailed_analysis", "improvement_advice", "action_steps",
		"negative_item_plans", "roadmap_90_days", "approval_advice", "faq"
	],
	"additionalProperties": false
}`)

// maxReportLen truncates very long reports to stay inside token limits.
const maxReportLen = 60000

// Service generates credit-report analyses.
type Service struct {
	client *openai.Client
	model  string
}

// New creates an analyzer service. An empty apiKey is allowed at construction
// time (the server still boots for local work); Analyze will refuse to run.
func New(apiKey, model string) *Service {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &Service{client: client, model: model}
}

// IsConfigured reports whether an API key was provided.
func (s *Service) IsConfigured() bool { return s.client != nil }

// Analyze sends the report text to the model and decodes the structured result.
func (s *Service) Analyze(ctx context.Context, reportText string) (*models.AnalysisRecord, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI API key not configured; set OPENAI_API_KEY")
	}

	truncated := reportText
	if len(truncated) > maxReportLen {
		truncated = truncated[:maxReportLen] + "\n\n[Report truncated due to length...]"
	}

	log.Printf("🤖 Analyzing credit report (%d chars) using %s", len(truncated), s.model)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Analyze the following credit report:\n\n" + truncated},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "credit_report_analysis",
				Schema: analysisSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	record, err := ParseRecord(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("model returned non-conforming analysis: %w", err)
	}
	return record, nil
}

// ParseRecord decodes a model response into an AnalysisRecord. It first tries
// the content as-is, then looks for a JSON object inside it (models sometimes
// wrap output in markdown fences despite schema mode).
func ParseRecord(content string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	if err := json.Unmarshal([]byte(content), &record); err == nil {
		return &record, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(content[start:end+1]), &record); err == nil {
			return &record, nil
		}
	}

	return nil, fmt.Errorf("no valid JSON object in model output")
}
