// Package charts renders an AnalysisRecord into base64-encoded PNG images.
//
// We use wcharczuk/go-chart — pure Go chart rendering, no CGO. Each chart
// is rendered to an in-memory buffer and base64-encoded so the HTML view
// (and the exported PDF) can inline them as data URIs.
package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/concerro/ScoreWise/internal/models"
)

// Renderer generates the chart set for an analysis.
type Renderer struct{}

// New creates a chart renderer.
func New() *Renderer { return &Renderer{} }

// Generate renders all charts for the record.
//
// payment_history tolerates zero/garbled counts (renders a "No Data"
// placeholder slice instead of failing), and account_types is only included
// when the record actually has an account-type breakdown.
func (r *Renderer) Generate(record *models.AnalysisRecord) (models.ChartSet, error) {
	set := models.ChartSet{}

	scoreChart, err := renderScoreBar("Credit Score", float64(record.CreditScore), 300, 850)
	if err != nil {
		return nil, fmt.Errorf("credit score chart: %w", err)
	}
	set["credit_score"] = scoreChart

	utilChart, err := renderScoreBar("Credit Utilization (%)", record.CreditUtilization, 0, 100)
	if err != nil {
		return nil, fmt.Errorf("credit utilization chart: %w", err)
	}
	set["credit_utilization"] = utilChart

	historyChart, err := renderPaymentHistory(record.PaymentHistory)
	if err != nil {
		return nil, fmt.Errorf("payment history chart: %w", err)
	}
	set["payment_history"] = historyChart

	if len(record.AccountTypes) > 0 {
		typesChart, err := renderAccountTypes(record.AccountTypes)
		if err != nil {
			return nil, fmt.Errorf("account types chart: %w", err)
		}
		set["account_types"] = typesChart
	}

	return set, nil
}

// renderScoreBar draws a single-bar chart with a fixed y-range.
func renderScoreBar(title string, value, min, max float64) (string, error) {
	// Keep the bar inside the axis range so a garbled value can't push the
	// renderer out of bounds
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    800,
		Height:   400,
		BarWidth: 120,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: min, Max: max},
		},
		Bars: []chart.Value{
			{Label: title, Value: value},
		},
	}

	return encodePNG(&graph)
}

// renderPaymentHistory draws the on-time vs late pie chart.
func renderPaymentHistory(history models.PaymentHistory) (string, error) {
	onTime := history.OnTime.Int()
	late := history.Late.Int()
	if onTime < 0 {
		onTime = 0
	}
	if late < 0 {
		late = 0
	}

	var values []chart.Value
	if onTime+late > 0 {
		if onTime > 0 {
			values = append(values, chart.Value{Label: "On Time", Value: float64(onTime)})
		}
		if late > 0 {
			values = append(values, chart.Value{Label: "Late", Value: float64(late)})
		}
	} else {
		// Both counts are zero or garbled: render an explicit placeholder
		// rather than failing the whole analysis
		values = []chart.Value{{
			Label: "No Data",
			Value: 1,
			Style: chart.Style{FillColor: drawing.ColorFromHex("E5E7EB")},
		}}
	}

	graph := chart.PieChart{
		Title:  "Payment History",
		Width:  512,
		Height: 512,
		Values: values,
	}

	return encodePNG(&graph)
}

// renderAccountTypes draws the account-type breakdown pie chart.
func renderAccountTypes(accountTypes map[string]int) (string, error) {
	// Sorted keys keep rendering deterministic — map iteration order is
	// random and the cache stores these images byte-for-byte
	names := make([]string, 0, len(accountTypes))
	for name := range accountTypes {
		names = append(names, name)
	}
	sort.Strings(names)

	var values []chart.Value
	for _, name := range names {
		if count := accountTypes[name]; count > 0 {
			values = append(values, chart.Value{Label: name, Value: float64(count)})
		}
	}
	if len(values) == 0 {
		values = []chart.Value{{
			Label: "No Data",
			Value: 1,
			Style: chart.Style{FillColor: drawing.ColorFromHex("E5E7EB")},
		}}
	}

	graph := chart.PieChart{
		Title:  "Account Types",
		Width:  512,
		Height: 512,
		Values: values,
	}

	return encodePNG(&graph)
}

// pngRenderer is the piece of go-chart both chart types implement.
type pngRenderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func encodePNG(graph pngRenderer) (string, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
