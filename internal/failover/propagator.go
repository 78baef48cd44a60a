package failover

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/regionfailover/internal/logging"
	"go.opentelemetry.io/otel/attribute"
)

// ConfigPropagator writes the failover configuration into the parameter store.
type ConfigPropagator struct {
	store       ParameterStore
	logger      logging.Logger
	callTimeout time.Duration
}

func NewConfigPropagator(store ParameterStore, logger logging.Logger, callTimeout time.Duration) *ConfigPropagator {
	return &ConfigPropagator{store: store, logger: logger, callTimeout: callTimeout}
}

// Propagate writes entries in order. The first failed write stops the
// propagation and is returned as a *PropagationError; entries written before
// it stay written.
func (p *ConfigPropagator) Propagate(ctx context.Context, entries []ParameterEntry) error {
	ctx, span := tracer.Start(ctx, "Failover.ConfigPropagator.Propagate")
	defer span.End()
	span.SetAttributes(attribute.Int("entries", len(entries)))

	if err := ValidateEntries(entries); err != nil {
		recordSpanError(span, err)
		p.logger.Error(ctx, "parameter entries rejected", "error", err)
		return err
	}

	for _, e := range entries {
		if err := p.put(ctx, e); err != nil {
			perr := &PropagationError{EntryName: e.Name, Cause: err}
			recordSpanError(span, perr)
			p.logger.Error(ctx, "parameter write failed", "name", e.Name, "error", err)
			return perr
		}
		p.logger.Debug(ctx, "parameter written", "name", e.Name, "sensitivity", string(e.Sensitivity))
	}

	p.logger.Info(ctx, "parameters propagated", "count", len(entries))
	return nil
}

func (p *ConfigPropagator) put(ctx context.Context, e ParameterEntry) error {
	ctx, cancel := withCallTimeout(ctx, p.callTimeout)
	defer cancel()
	return p.store.PutParameter(ctx, e)
}

// ValidateEntries checks names are unique and every entry carries a value
// and a known sensitivity. Nothing is written when it fails.
func ValidateEntries(entries []ParameterEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return &PropagationError{Cause: fmt.Errorf("%w: entry with empty name", ErrInvalidEntries)}
		}
		if _, ok := seen[e.Name]; ok {
			return &PropagationError{EntryName: e.Name, Cause: fmt.Errorf("%w: duplicate name", ErrInvalidEntries)}
		}
		seen[e.Name] = struct{}{}

		if e.Sensitivity != SensitivityPlain && e.Sensitivity != SensitivitySecret {
			return &PropagationError{EntryName: e.Name, Cause: fmt.Errorf("%w: unknown sensitivity %q", ErrInvalidEntries, e.Sensitivity)}
		}
		if e.Value == "" {
			return &PropagationError{EntryName: e.Name, Cause: fmt.Errorf("%w: empty value", ErrInvalidEntries)}
		}
	}
	return nil
}

func withCallTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
