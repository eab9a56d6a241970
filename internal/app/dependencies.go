package app

import (
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	redis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Dependencies enumerates core services shared across modules to make wiring explicit.
type Dependencies struct {
	// Redis is nil when REDIS_URL is not configured.
	Redis           *redis.Client
	Validator       *validator.Validate
	MetricsRegistry *prometheus.Registry
}

// NewValidator builds the shared request validator.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// Tracer returns the default OpenTelemetry tracer for instrumentation hooks.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
