package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"rpn-calculator/internal/history"
	"rpn-calculator/internal/observability"
	"rpn-calculator/internal/rpn"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Result is a successful calculation.
type Result struct {
	Infix   string
	Postfix string
	Value   float64
	Seq     int
}

// Display returns the value as a decimal string.
func (r Result) Display() string {
	return history.FormatResult(r.Value)
}

// Engine runs infix expressions through conversion and evaluation and
// records every success in its ledger.
type Engine struct {
	ledger        *history.Ledger
	maxLen        int
	meterProvider metric.MeterProvider
	metrics       *instruments
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxExpressionLength rejects expressions longer than n bytes. Zero
// disables the limit.
func WithMaxExpressionLength(n int) Option {
	return func(e *Engine) { e.maxLen = n }
}

// WithMeterProvider sets the provider used for the engine's instruments.
// The global provider is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Engine) { e.meterProvider = mp }
}

// NewEngine returns an engine recording into ledger. A nil ledger gets a
// fresh one.
func NewEngine(ledger *history.Ledger, opts ...Option) (*Engine, error) {
	if ledger == nil {
		ledger = history.NewLedger()
	}

	e := &Engine{ledger: ledger}
	for _, opt := range opts {
		opt(e)
	}

	if e.meterProvider == nil {
		e.meterProvider = otel.GetMeterProvider()
	}

	in, err := newInstruments(e.meterProvider.Meter("calculator"))
	if err != nil {
		return nil, err
	}
	e.metrics = in

	return e, nil
}

// Ledger returns the history ledger the engine records into.
func (e *Engine) Ledger() *history.Ledger {
	return e.ledger
}

// Calculate converts, evaluates and records infix, returning the result as a
// decimal string. Failures are *InvalidExpressionError and are not recorded.
func (e *Engine) Calculate(ctx context.Context, infix string) (string, error) {
	res, err := e.Evaluate(ctx, infix)
	if err != nil {
		return "", err
	}
	return res.Display(), nil
}

// Evaluate is Calculate returning the full Result.
func (e *Engine) Evaluate(ctx context.Context, infix string) (Result, error) {
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(attribute.String("calculator.expression", infix)),
	)
	defer span.End()

	start := time.Now()

	postfix, err := e.convert(ctx, infix)
	if err != nil {
		e.fail(ctx, span, logger, "calculate", err)
		return Result{}, err
	}

	value, err := e.evaluate(ctx, infix, postfix)
	if err != nil {
		e.fail(ctx, span, logger, "calculate", err)
		return Result{}, err
	}

	entry := e.ledger.Record(infix, postfix, value)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", "calculate"))
	e.metrics.ops.Add(ctx, 1, attrs)
	e.metrics.duration.Record(ctx, elapsed, attrs)
	e.metrics.result.Record(ctx, value, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", value),
		attribute.Int("history.sequence", entry.Seq),
	))
	span.SetAttributes(
		attribute.String("calculator.postfix", postfix),
		attribute.Float64("calculator.result", value),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("expression", infix),
		zap.String("postfix", postfix),
		zap.Float64("result", value),
		zap.Int("sequence", entry.Seq),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	return Result{
		Infix:   infix,
		Postfix: postfix,
		Value:   value,
		Seq:     entry.Seq,
	}, nil
}

// Convert returns the postfix form of infix without evaluating or recording it.
func (e *Engine) Convert(ctx context.Context, infix string) (string, error) {
	postfix, err := e.convert(ctx, infix)
	if err != nil {
		e.countError(ctx, "convert", err)
		return "", err
	}
	e.metrics.ops.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "convert")))
	return postfix, nil
}

// EvaluatePostfix evaluates an already converted expression without
// recording it.
func (e *Engine) EvaluatePostfix(ctx context.Context, postfix string) (float64, error) {
	value, err := e.evaluate(ctx, postfix, postfix)
	if err != nil {
		e.countError(ctx, "evaluate", err)
		return 0, err
	}
	e.metrics.ops.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "evaluate")))
	return value, nil
}

// History returns recorded calculations, oldest first.
func (e *Engine) History() []history.Entry {
	return e.ledger.Entries()
}

// FormattedHistory returns recorded calculations as display blocks, oldest
// first.
func (e *Engine) FormattedHistory() []string {
	return e.ledger.Formatted()
}

// ClearHistory empties the ledger and restarts numbering at 1.
func (e *Engine) ClearHistory(ctx context.Context) {
	n := e.ledger.Len()
	e.ledger.Clear()
	observability.LoggerWithTrace(ctx).Info("history cleared", zap.Int("entries", n))
}

func (e *Engine) convert(ctx context.Context, infix string) (string, error) {
	_, span := tracer.Start(ctx, "rpn.convert")
	defer span.End()

	if e.maxLen > 0 && len(infix) > e.maxLen {
		err := invalid(infix, StageValidate,
			fmt.Errorf("%w: %d bytes, limit %d", ErrExpressionTooLong, len(infix), e.maxLen))
		span.RecordError(err)
		span.SetStatus(codes.Error, "expression too long")
		return "", err
	}

	postfix, err := rpn.ToPostfix(infix)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, rpn.Kind(err))
		return "", invalid(infix, StageConvert, err)
	}

	span.SetAttributes(attribute.String("rpn.postfix", postfix))
	return postfix, nil
}

func (e *Engine) evaluate(ctx context.Context, expr, postfix string) (float64, error) {
	_, span := tracer.Start(ctx, "rpn.evaluate",
		trace.WithAttributes(attribute.String("rpn.postfix", postfix)),
	)
	defer span.End()

	value, err := rpn.Evaluate(postfix)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, rpn.Kind(err))
		return 0, invalid(expr, StageEvaluate, err)
	}
	return value, nil
}

func (e *Engine) fail(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, errorKind(err))

	e.countError(ctx, opName, err)

	logger.Warn("calculation rejected",
		zap.String("operation", opName),
		zap.String("kind", errorKind(err)),
		zap.Error(err),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
}

func (e *Engine) countError(ctx context.Context, opName string, err error) {
	e.metrics.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("kind", errorKind(err)),
	))
}

func errorKind(err error) string {
	var ie *InvalidExpressionError
	if errors.As(err, &ie) {
		return ie.Kind()
	}
	return rpn.Kind(err)
}
