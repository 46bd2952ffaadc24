package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/storefront-samples/go-bff-server/internal/domains/aggregate/ports"
)

const tracerName = "github.com/storefront-samples/go-bff-server/internal/domains/aggregate/adapters/observability/service"

// Service decorates the aggregation service with tracing, logging, and
// metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Summary aggregates the activity pages with instrumentation.
func (s *Service) Summary(ctx context.Context, authorization string) (*ports.SummaryResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Summary")
	defer span.End()

	result, err := s.inner.Summary(ctx, authorization)
	s.record(ctx, span, "summary", err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Compose runs the enriched search aggregation with instrumentation.
func (s *Service) Compose(ctx context.Context, authorization, search string) (*ports.ComposeResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Compose", trace.WithAttributes(attribute.Int("query.length", len(search))))
	defer span.End()

	result, err := s.inner.Compose(ctx, authorization, search)
	s.record(ctx, span, "compose", err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Special runs the proxy-override aggregation with instrumentation.
func (s *Service) Special(ctx context.Context) (*ports.SpecialResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Special")
	defer span.End()

	result, err := s.inner.Special(ctx)
	s.record(ctx, span, "special", err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) record(ctx context.Context, span trace.Span, operation string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.recordFailure(ctx, operation)
		s.logger.ErrorContext(ctx, "aggregation failed", slog.String("operation", operation), slog.String("error", err.Error()))
		return
	}
	s.metrics.recordSuccess(ctx, operation)
	s.logger.InfoContext(ctx, "aggregation completed", slog.String("operation", operation))
}

type serviceMetrics struct {
	completed metric.Int64Counter
	failed    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	completed, err := m.Int64Counter("bff.aggregation.completed")
	if err != nil {
		completed = nil
	}
	failed, err := m.Int64Counter("bff.aggregation.failed")
	if err != nil {
		failed = nil
	}
	return serviceMetrics{completed: completed, failed: failed}
}

func (m serviceMetrics) recordSuccess(ctx context.Context, operation string) {
	if m.completed == nil {
		return
	}
	m.completed.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (m serviceMetrics) recordFailure(ctx context.Context, operation string) {
	if m.failed == nil {
		return
	}
	m.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

var _ ports.Service = (*Service)(nil)
