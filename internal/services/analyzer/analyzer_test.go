package analyzer

import (
	"context"
	"testing"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantScore int
		wantErr   bool
	}{
		{
			name:      "clean json",
			content:   `{"credit_score": 710, "payment_history": {"on_time": 40, "late": 3}}`,
			wantScore: 710,
		},
		{
			name: "markdown fenced json",
			content: "Here is the analysis:\n```json\n" +
				`{"credit_score": 655, "payment_history": {"on_time": 12, "late": 1}}` +
				"\n```",
			wantScore: 655,
		},
		{
			name:    "no json at all",
			content: "I cannot analyze this report.",
			wantErr: true,
		},
		{
			name:    "empty",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := ParseRecord(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRecord(%q) succeeded, want error", tt.content)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRecord: %v", err)
			}
			if record.CreditScore != tt.wantScore {
				t.Errorf("CreditScore = %d, want %d", record.CreditScore, tt.wantScore)
			}
		})
	}
}

// TestParseRecordToleratesSloppyCounts verifies that garbled payment-history
// counts decode to zero instead of failing the whole analysis.
func TestParseRecordToleratesSloppyCounts(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantOnTime int
		wantLate   int
	}{
		{
			name:       "string counts",
			content:    `{"credit_score": 700, "payment_history": {"on_time": "25", "late": "2"}}`,
			wantOnTime: 25,
			wantLate:   2,
		},
		{
			name:       "null counts",
			content:    `{"credit_score": 700, "payment_history": {"on_time": null, "late": null}}`,
			wantOnTime: 0,
			wantLate:   0,
		},
		{
			name:       "NaN string",
			content:    `{"credit_score": 700, "payment_history": {"on_time": "NaN", "late": "many"}}`,
			wantOnTime: 0,
			wantLate:   0,
		},
		{
			name:       "float counts truncate",
			content:    `{"credit_score": 700, "payment_history": {"on_time": 25.7, "late": 0.2}}`,
			wantOnTime: 25,
			wantLate:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := ParseRecord(tt.content)
			if err != nil {
				t.Fatalf("ParseRecord: %v", err)
			}
			if got := record.PaymentHistory.OnTime.Int(); got != tt.wantOnTime {
				t.Errorf("OnTime = %d, want %d", got, tt.wantOnTime)
			}
			if got := record.PaymentHistory.Late.Int(); got != tt.wantLate {
				t.Errorf("Late = %d, want %d", got, tt.wantLate)
			}
		})
	}
}

func TestAnalyzeRequiresAPIKey(t *testing.T) {
	s := New("", "gpt-4o-2024-08-06")
	if s.IsConfigured() {
		t.Error("IsConfigured = true with empty key")
	}
	if _, err := s.Analyze(context.Background(), "some report"); err == nil {
		t.Error("Analyze without API key succeeded, want error")
	}
}
