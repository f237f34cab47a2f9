package calculator

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"rpn-calculator/internal/handlers"
	"rpn-calculator/internal/history"
	"rpn-calculator/internal/observability"
)

// Handler serves the calculator HTTP endpoints on top of an Engine.
type Handler struct {
	engine *Engine
}

// NewHandler returns a Handler backed by engine.
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Calculate handles POST /calculator/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CalculateRequest
	if !h.decode(w, r, "calculate", &req) {
		return
	}

	res, err := h.engine.Evaluate(ctx, req.Expression)
	if err != nil {
		h.rejectExpression(w, r, "calculate", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, CalculateResponse{
		Expression: res.Infix,
		Postfix:    res.Postfix,
		Result:     finite(res.Value),
		Display:    res.Display(),
		Sequence:   res.Seq,
	})
}

// Convert handles POST /calculator/convert
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if !h.decode(w, r, "convert", &req) {
		return
	}

	postfix, err := h.engine.Convert(r.Context(), req.Expression)
	if err != nil {
		h.rejectExpression(w, r, "convert", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ConvertResponse{
		Expression: req.Expression,
		Postfix:    postfix,
	})
}

// EvaluatePostfix handles POST /calculator/evaluate
func (h *Handler) EvaluatePostfix(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !h.decode(w, r, "evaluate", &req) {
		return
	}

	value, err := h.engine.EvaluatePostfix(r.Context(), req.Postfix)
	if err != nil {
		h.rejectExpression(w, r, "evaluate", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Postfix: req.Postfix,
		Result:  finite(value),
		Display: history.FormatResult(value),
	})
}

// History handles GET /calculator/history. Entries are oldest first unless
// ?order=newest is given.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries := h.engine.History()
	if r.URL.Query().Get("order") == "newest" {
		entries = history.Reversed(entries)
	}

	resp := HistoryResponse{
		Entries: make([]HistoryEntry, 0, len(entries)),
		Count:   len(entries),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, newHistoryEntry(e))
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ClearHistory handles DELETE /calculator/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearHistory(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, opName string, dst any) bool {
	ctx := r.Context()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx),
			h.engine.metrics.errors, opName, "invalid_request", "invalid request body", err, http.StatusBadRequest, w)
		return false
	}
	return true
}

// rejectExpression answers 422 for an expression the engine refused. The
// engine has already counted the failure.
func (h *Handler) rejectExpression(w http.ResponseWriter, r *http.Request, opName string, err error) {
	ctx := r.Context()

	var ie *InvalidExpressionError
	if !errors.As(err, &ie) {
		observability.LoggerWithTrace(ctx).Error("unexpected calculator error", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	observability.RecordError(ctx, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx),
		nil, opName, ie.Kind(), ie.Error(), err, http.StatusUnprocessableEntity, w)
}
