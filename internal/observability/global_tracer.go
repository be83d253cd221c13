package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "speakroots"

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the application.
func InitGlobalTracer() {
	globalTracer = otel.Tracer(instrumentationName)
}

// GetGlobalTracer returns the global tracer instance for the application.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		return otel.Tracer(instrumentationName)
	}
	return globalTracer
}

// TraceFunction starts a new span with a descriptive name for the given service and function.
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := GetGlobalTracer()
	spanName := fmt.Sprintf("%s.%s", serviceName, functionName)
	return tracer.Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceDailyFunction starts a new span for the daily selector.
func TraceDailyFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "daily", functionName, attributes...)
}

// TraceQuizFunction starts a new span for the quiz service.
func TraceQuizFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "quiz", functionName, attributes...)
}

// TraceHandlerFunction starts a new span for a handler function.
func TraceHandlerFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "handler", functionName, attributes...)
}

// TraceStoreFunction starts a new span for a key-value store operation.
func TraceStoreFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "kvstore", functionName, attributes...)
}

// TraceDatabaseFunction starts a new span for a database function.
func TraceDatabaseFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "database", functionName, attributes...)
}

// AttributeLevelKey returns a tracing attribute for a level key.
func AttributeLevelKey(levelKey string) attribute.KeyValue {
	return attribute.String("quiz.level_key", levelKey)
}

// AttributeIdentifier returns a tracing attribute for a daily identifier.
func AttributeIdentifier(id string) attribute.KeyValue {
	return attribute.String("daily.identifier", id)
}

// AttributeDate returns a tracing attribute for a calendar date.
func AttributeDate(date string) attribute.KeyValue {
	return attribute.String("daily.date", date)
}

// AttributePoolSize returns a tracing attribute for a pool size.
func AttributePoolSize(size int) attribute.KeyValue {
	return attribute.Int("quiz.pool_size", size)
}

// AttributeCount returns a tracing attribute for a selection count.
func AttributeCount(count int) attribute.KeyValue {
	return attribute.Int("daily.count", count)
}

// AttributeStoreKey returns a tracing attribute for a key-value store key.
func AttributeStoreKey(key string) attribute.KeyValue {
	return attribute.String("kvstore.key", key)
}

// AttributePage returns a tracing attribute for a page value.
func AttributePage(page int) attribute.KeyValue {
	return attribute.Int("page", page)
}

// AttributePageSize returns a tracing attribute for a page size value.
func AttributePageSize(size int) attribute.KeyValue {
	return attribute.Int("page_size", size)
}
