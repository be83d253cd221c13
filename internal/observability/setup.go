package observability

import (
	"context"
	"os"

	"speakroots/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap/zapcore"
)

// SetupObservability initializes tracing, metrics, and logging for a service.
// Disabled signals return nil providers; the logger is always non-nil.
func SetupObservability(cfg *config.OpenTelemetryConfig, serviceName string, level zapcore.Level) (result0 *sdktrace.TracerProvider, result1 *metric.MeterProvider, result2 *Logger, err error) {
	if serviceName != "" {
		cfg.ServiceName = serviceName
	}

	var tp *sdktrace.TracerProvider
	var mp *metric.MeterProvider

	if err := os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName); err != nil {
		return nil, nil, nil, err
	}
	if err := os.Setenv("OTEL_SERVICE_VERSION", cfg.ServiceVersion); err != nil {
		return nil, nil, nil, err
	}

	logger := NewLoggerWithLevel(cfg, level)

	if cfg.EnableTracing {
		tp, err = InitTracing(cfg)
		if err != nil {
			return nil, nil, logger, err
		}
		otel.SetTracerProvider(tp)
		InitGlobalTracer()

		logger.Info(context.Background(), "Tracing enabled", map[string]interface{}{
			"service_name": cfg.ServiceName,
			"protocol":     cfg.Protocol,
		})
	}

	if cfg.EnableMetrics {
		mp, err = InitMetrics(cfg)
		if err != nil {
			return tp, nil, logger, err
		}
		otel.SetMeterProvider(mp)
	}

	return tp, mp, logger, nil
}
