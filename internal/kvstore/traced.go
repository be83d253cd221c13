package kvstore

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"speakroots/internal/observability"
)

// Traced decorates a Store with spans and warn-level logging of backend failures
type Traced struct {
	next    Store
	backend string
	logger  *observability.Logger
}

// NewTraced wraps next
func NewTraced(next Store, backend string, logger *observability.Logger) *Traced {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Traced{next: next, backend: backend, logger: logger}
}

// Unwrap returns the decorated store
func (t *Traced) Unwrap() Store {
	return t.next
}

// Get implements Store. A missing key is not recorded as a span error.
func (t *Traced) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := t.start(ctx, "Get", key)
	var spanErr error
	defer observability.FinishSpan(span, &spanErr)

	value, err := t.next.Get(ctx, key)
	switch {
	case err == nil:
		span.SetAttributes(attribute.Bool("store.hit", true))
	case IsNotFound(err):
		span.SetAttributes(attribute.Bool("store.hit", false))
	default:
		spanErr = err
		t.logger.Warn(ctx, "Store get failed", t.fields(key, err))
	}
	return value, err
}

// Set implements Store
func (t *Traced) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := t.start(ctx, "Set", key)
	defer observability.FinishSpan(span, &err)
	span.SetAttributes(attribute.Int("store.value_bytes", len(value)))

	if err = t.next.Set(ctx, key, value); err != nil {
		t.logger.Warn(ctx, "Store set failed", t.fields(key, err))
	}
	return err
}

// Delete implements Store
func (t *Traced) Delete(ctx context.Context, key string) (err error) {
	ctx, span := t.start(ctx, "Delete", key)
	defer observability.FinishSpan(span, &err)

	if err = t.next.Delete(ctx, key); err != nil {
		t.logger.Warn(ctx, "Store delete failed", t.fields(key, err))
	}
	return err
}

// DeletePrefix implements Store
func (t *Traced) DeletePrefix(ctx context.Context, prefix string) (removed int, err error) {
	ctx, span := t.start(ctx, "DeletePrefix", prefix)
	defer observability.FinishSpan(span, &err)

	removed, err = t.next.DeletePrefix(ctx, prefix)
	span.SetAttributes(attribute.Int("store.removed", removed))
	if err != nil {
		t.logger.Warn(ctx, "Store prefix delete failed", t.fields(prefix, err))
		return removed, err
	}
	t.logger.Info(ctx, "Store entries removed", map[string]interface{}{
		"backend": t.backend,
		"prefix":  prefix,
		"removed": removed,
	})
	return removed, nil
}

// Close implements Store
func (t *Traced) Close() error {
	return t.next.Close()
}

func (t *Traced) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return observability.TraceStoreFunction(ctx, op,
		observability.AttributeStoreKey(key),
		attribute.String("store.backend", t.backend),
	)
}

func (t *Traced) fields(key string, err error) map[string]interface{} {
	return map[string]interface{}{
		"backend": t.backend,
		"key":     key,
		"error":   err.Error(),
	}
}
