// Package tracer provides distributed tracing abstractions for sqlstring.
// It supports OpenTelemetry and allows custom tracer implementations.
package tracer

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanBuild is the span name used when a query builder renders a statement.
const SpanBuild = "sqlstring.build"

// Tracer starts spans around query building.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a tracing span that captures the execution of an operation.
type Span interface {
	SetAttributes(attrs ...attribute.KeyValue)
	RecordError(err error)
	SetStatus(code codes.Code, description string)
	End()
}

// NoopTracer is a tracer that does nothing. It is the default.
type NoopTracer struct{}

// StartSpan returns the context unchanged with a no-op span.
func (n *NoopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, &NoopSpan{}
}

// NoopSpan is a span that does nothing.
type NoopSpan struct{}

// SetAttributes does nothing.
func (n *NoopSpan) SetAttributes(_ ...attribute.KeyValue) {}

// RecordError does nothing.
func (n *NoopSpan) RecordError(_ error) {}

// SetStatus does nothing.
func (n *NoopSpan) SetStatus(_ codes.Code, _ string) {}

// End does nothing.
func (n *NoopSpan) End() {}

// OtelTracer wraps an OpenTelemetry tracer to implement the Tracer interface.
type OtelTracer struct {
	tracer trace.Tracer
}

// NewOtelTracer creates a new OpenTelemetry tracer adapter.
// The provided tracer must not be nil.
func NewOtelTracer(tracer trace.Tracer) *OtelTracer {
	return &OtelTracer{tracer: tracer}
}

// StartSpan starts a new internal OpenTelemetry span.
func (t *OtelTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &OtelSpan{span: span}
}

// OtelSpan wraps an OpenTelemetry span.
type OtelSpan struct {
	span trace.Span
}

// SetAttributes sets OpenTelemetry attributes on the span.
func (s *OtelSpan) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

// RecordError records an error on the OpenTelemetry span.
func (s *OtelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

// SetStatus sets the status of the OpenTelemetry span.
func (s *OtelSpan) SetStatus(code codes.Code, description string) {
	s.span.SetStatus(code, description)
}

// End completes the OpenTelemetry span.
func (s *OtelSpan) End() {
	s.span.End()
}

// RenderMetadata describes one rendered statement.
// Attribute names follow the OpenTelemetry database semantic conventions
// where one exists.
type RenderMetadata struct {
	// Statement is the rendered SQL (empty when rendering failed)
	Statement string
	// Dialect is the target dialect name (postgresql, sqlserver)
	Dialect string
	// Table is the FROM target as rendered
	Table string
	// Duration is how long rendering took
	Duration time.Duration
	// Clause counts
	Selects    int
	Joins      int
	Conditions int
	Orders     int
	Paginated  bool
	// Error is the build failure, if any
	Error error
}

// AddRenderAttributes adds statement attributes to a span and sets its status.
func AddRenderAttributes(span Span, meta *RenderMetadata) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", meta.Dialect),
		attribute.String("db.operation", DetectOperation(meta.Statement)),
		attribute.Float64("sqlstring.duration_ms", float64(meta.Duration.Microseconds())/1000.0),
		attribute.Int("sqlstring.selects", meta.Selects),
		attribute.Int("sqlstring.joins", meta.Joins),
		attribute.Int("sqlstring.conditions", meta.Conditions),
		attribute.Int("sqlstring.orders", meta.Orders),
		attribute.Bool("sqlstring.paginated", meta.Paginated),
	}

	if meta.Statement != "" {
		attrs = append(attrs, attribute.String("db.statement", meta.Statement))
	}
	if meta.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", meta.Table))
	}

	span.SetAttributes(attrs...)

	if meta.Error != nil {
		span.RecordError(meta.Error)
		span.SetStatus(codes.Error, meta.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// DetectOperation detects the SQL operation type from the statement.
// Returns one of: SELECT, INSERT, UPDATE, DELETE, or UNKNOWN.
func DetectOperation(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	switch {
	case strings.HasPrefix(sql, "SELECT"), strings.HasPrefix(sql, "WITH"):
		return "SELECT"
	case strings.HasPrefix(sql, "INSERT"):
		return "INSERT"
	case strings.HasPrefix(sql, "UPDATE"):
		return "UPDATE"
	case strings.HasPrefix(sql, "DELETE"):
		return "DELETE"
	}
	return "UNKNOWN"
}
