package main

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"rpn-calculator/internal/calculator"
	"rpn-calculator/internal/config"
	"rpn-calculator/internal/history"
	"rpn-calculator/internal/observability"
)

type shutdownFunc func(context.Context) error

// initTelemetry starts the OTel providers enabled in cfg and returns a single
// function shutting all of them down.
func initTelemetry(ctx context.Context, cfg config.Config) (shutdownFunc, error) {
	var shutdowns []shutdownFunc

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	steps := []struct {
		enabled bool
		init    func(context.Context, string) (func(context.Context) error, error)
	}{
		{cfg.TracesEnabled, observability.InitTracing},
		{cfg.MetricsEnabled, observability.InitMetrics},
		{cfg.LogsEnabled, observability.InitLogging},
	}

	for _, step := range steps {
		if !step.enabled {
			continue
		}
		fn, err := step.init(ctx, cfg.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}

// initCalculator builds the engine after the meter provider is installed and
// exposes its ledger size on the default Prometheus registry.
func initCalculator(cfg config.Config) (*calculator.Engine, error) {
	ledger := history.NewLedger()

	engine, err := calculator.NewEngine(ledger,
		calculator.WithMaxExpressionLength(cfg.MaxExpressionLength),
	)
	if err != nil {
		return nil, err
	}

	if err := calculator.RegisterHistoryGauge(prometheus.DefaultRegisterer, ledger); err != nil {
		return nil, err
	}

	return engine, nil
}
