package calculator

import (
	"math"

	"rpn-calculator/internal/history"
)

// CalculateRequest is the JSON body for POST /calculator/calculate and
// POST /calculator/convert.
type CalculateRequest struct {
	Expression string `json:"expression"`
}

// CalculateResponse is the JSON response for POST /calculator/calculate.
// Result is null when the value is not finite; Display always carries it.
type CalculateResponse struct {
	Expression string   `json:"expression"`
	Postfix    string   `json:"postfix"`
	Result     *float64 `json:"result"`
	Display    string   `json:"display"`
	Sequence   int      `json:"sequence"`
}

// ConvertResponse is the JSON response for POST /calculator/convert.
type ConvertResponse struct {
	Expression string `json:"expression"`
	Postfix    string `json:"postfix"`
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Postfix string `json:"postfix"`
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Postfix string   `json:"postfix"`
	Result  *float64 `json:"result"`
	Display string   `json:"display"`
}

// HistoryEntry is one ledger entry as served by GET /calculator/history.
type HistoryEntry struct {
	Sequence  int      `json:"sequence"`
	Infix     string   `json:"infix"`
	Postfix   string   `json:"postfix"`
	Result    *float64 `json:"result"`
	Display   string   `json:"display"`
	Formatted string   `json:"formatted"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Count   int            `json:"count"`
}

// finite returns nil for NaN and ±Inf, which encoding/json cannot represent.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func newHistoryEntry(e history.Entry) HistoryEntry {
	return HistoryEntry{
		Sequence:  e.Seq,
		Infix:     e.Infix,
		Postfix:   e.Postfix,
		Result:    finite(e.Result),
		Display:   history.FormatResult(e.Result),
		Formatted: e.String(),
	}
}
