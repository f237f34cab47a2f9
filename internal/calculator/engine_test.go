package calculator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"rpn-calculator/internal/history"
	"rpn-calculator/internal/observability"
	"rpn-calculator/internal/rpn"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(history.NewLedger(), opts...)
	require.NoError(t, err)
	return e
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1+2*3", "7"},
		{"(1+2)*3", "9"},
		{"8/4/2", "1"},
		{"2^3^2", "512"},
		{"12+3", "15"},
		{"7/2", "3.5"},
		{"10-4-3", "3"},
		{"1/0", "+Inf"},
		{"0/0", "NaN"},
	}

	e := newTestEngine(t)
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := e.Calculate(context.Background(), tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateRecordsHistory(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	first, err := e.Evaluate(ctx, "(1+2)*3")
	require.NoError(t, err)
	second, err := e.Evaluate(ctx, "(1+2)*3")
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, 2, second.Seq)

	entries := e.History()
	require.Len(t, entries, 2)
	assert.Equal(t, history.Entry{Seq: 1, Infix: "(1+2)*3", Postfix: "1 2 + 3 *", Result: 9}, entries[0])

	formatted := e.FormattedHistory()
	require.Len(t, formatted, 2)
	assert.Equal(t, "Calculation #2:\nInfix:   (1+2)*3\nPostfix: 1 2 + 3 *\nResult:  9\n\n", formatted[1])
}

func TestClearHistoryRestartsNumbering(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Calculate(ctx, "1+1")
	require.NoError(t, err)
	_, err = e.Calculate(ctx, "2+2")
	require.NoError(t, err)

	e.ClearHistory(ctx)
	assert.Empty(t, e.History())

	res, err := e.Evaluate(ctx, "3+3")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Seq)
}

func TestCalculateFailuresAreTypedAndNotRecorded(t *testing.T) {
	tests := []struct {
		expr  string
		stage string
		want  error
		kind  string
	}{
		{"(1+2", StageConvert, rpn.ErrUnbalancedParentheses, "unbalanced_parentheses"},
		{"1+2)", StageConvert, rpn.ErrUnbalancedParentheses, "unbalanced_parentheses"},
		{"1 + 2", StageConvert, rpn.ErrInvalidCharacter, "invalid_character"},
		{"1+", StageEvaluate, rpn.ErrStackUnderflow, "stack_underflow"},
		{"(1)(2)", StageEvaluate, rpn.ErrMalformedExpression, "malformed_expression"},
		{"", StageEvaluate, rpn.ErrEmptyResult, "empty_result"},
	}

	e := newTestEngine(t)
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			_, err := e.Calculate(context.Background(), tc.expr)
			require.Error(t, err)

			var ie *InvalidExpressionError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tc.expr, ie.Expression)
			assert.Equal(t, tc.stage, ie.Stage)
			assert.Equal(t, tc.kind, ie.Kind())
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Empty(t, e.History())
}

func TestMaxExpressionLength(t *testing.T) {
	e := newTestEngine(t, WithMaxExpressionLength(5))

	_, err := e.Calculate(context.Background(), "1+2+3+4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpressionTooLong)

	var ie *InvalidExpressionError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, StageValidate, ie.Stage)
	assert.Equal(t, "expression_too_long", ie.Kind())

	got, err := e.Calculate(context.Background(), "1+2+3")
	require.NoError(t, err)
	assert.Equal(t, "6", got)
}

func TestConvertAndEvaluatePostfixDoNotRecord(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	postfix, err := e.Convert(ctx, "2*3^2")
	require.NoError(t, err)
	assert.Equal(t, "2 3 2 ^ *", postfix)

	value, err := e.EvaluatePostfix(ctx, postfix)
	require.NoError(t, err)
	assert.Equal(t, 18.0, value)

	_, err = e.EvaluatePostfix(ctx, "1 2")
	assert.ErrorIs(t, err, rpn.ErrMalformedExpression)

	assert.Empty(t, e.History())
}

func TestNewEngineCreatesLedger(t *testing.T) {
	e, err := NewEngine(nil)
	require.NoError(t, err)
	require.NotNil(t, e.Ledger())
}

func TestResultDisplay(t *testing.T) {
	assert.Equal(t, "-Inf", Result{Value: math.Inf(-1)}.Display())
	assert.Equal(t, "0.25", Result{Value: 0.25}.Display())
}

func TestEngineRecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	e := newTestEngine(t, WithMeterProvider(provider))
	ctx := context.Background()

	_, err := e.Calculate(ctx, "1+1")
	require.NoError(t, err)
	_, err = e.Calculate(ctx, "2*2")
	require.NoError(t, err)
	_, err = e.Calculate(ctx, "(2")
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	assert.Equal(t, int64(2), sumCounter(t, rm, "calculator.operations.total"))
	assert.Equal(t, int64(1), sumCounter(t, rm, "calculator.errors.total"))
}

func sumCounter(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is %T", name, m.Data)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not collected", name)
	return 0
}

func TestEngineLogsCompletedCalculation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	old := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = old })

	e := newTestEngine(t)
	_, err := e.Calculate(observability.ContextWithRequestID(context.Background(), "req-9"), "6/3")
	require.NoError(t, err)

	entries := logs.FilterMessage("calculation completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "6/3", fields["expression"])
	assert.Equal(t, "6 3 /", fields["postfix"])
	assert.Equal(t, 2.0, fields["result"])
	assert.Equal(t, int64(1), fields["sequence"])
	assert.Equal(t, "req-9", fields["request_id"])
}
