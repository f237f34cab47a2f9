package calculator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"

	"rpn-calculator/internal/history"
)

type instruments struct {
	ops      metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
	result   metric.Float64Gauge
}

// newInstruments registers the calculator's OTel instruments on meter.
func newInstruments(meter metric.Meter) (*instruments, error) {
	var (
		in  instruments
		err error
	)

	in.ops, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ops counter: %w", err)
	}

	in.duration, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ops histogram: %w", err)
	}

	in.errors, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of rejected expressions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	in.result, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last calculation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating result gauge: %w", err)
	}

	return &in, nil
}

// RegisterHistoryGauge exposes the ledger size on reg as
// rpncalc_history_entries.
func RegisterHistoryGauge(reg prometheus.Registerer, ledger *history.Ledger) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "rpncalc",
		Name:      "history_entries",
		Help:      "Number of calculations currently held in the history ledger.",
	}, func() float64 {
		return float64(ledger.Len())
	})

	if err := reg.Register(gauge); err != nil {
		return fmt.Errorf("registering history gauge: %w", err)
	}
	return nil
}
