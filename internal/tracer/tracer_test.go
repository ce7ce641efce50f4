package tracer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*OtelTracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewOtelTracer(tp.Tracer("test")), exporter
}

func attrMap(kvs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}

func TestNoopTracer(t *testing.T) {
	tracer := &NoopTracer{}
	ctx := context.Background()

	// Should not panic
	gotCtx, span := tracer.StartSpan(ctx, SpanBuild)
	assert.NotNil(t, span)
	assert.Equal(t, ctx, gotCtx)

	span.SetAttributes(attribute.String("key", "value"))
	span.RecordError(errors.New("test error"))
	span.SetStatus(codes.Error, "error")
	span.End()
}

func TestOtelTracer(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.StartSpan(context.Background(), SpanBuild)
	require.NotNil(t, span)
	span.SetAttributes(attribute.String("key", "value"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, SpanBuild, spans[0].Name)
	assert.Equal(t, "value", attrMap(spans[0].Attributes)["key"])
}

func TestOtelSpan_RecordError(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.StartSpan(context.Background(), "test.error")
	testErr := errors.New("incomplete query")
	span.RecordError(testErr)
	span.SetStatus(codes.Error, testErr.Error())
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestAddRenderAttributes_Success(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.StartSpan(context.Background(), SpanBuild)
	AddRenderAttributes(span, &RenderMetadata{
		Statement:  "SELECT firstName FROM user LIMIT 10 OFFSET 20;",
		Dialect:    "postgresql",
		Table:      "user",
		Duration:   1500 * time.Microsecond,
		Selects:    1,
		Conditions: 2,
		Paginated:  true,
	})
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	attrs := attrMap(spans[0].Attributes)

	assert.Equal(t, "postgresql", attrs["db.system"])
	assert.Equal(t, "SELECT", attrs["db.operation"])
	assert.Equal(t, "SELECT firstName FROM user LIMIT 10 OFFSET 20;", attrs["db.statement"])
	assert.Equal(t, "user", attrs["db.sql.table"])
	assert.Equal(t, int64(1), attrs["sqlstring.selects"])
	assert.Equal(t, int64(0), attrs["sqlstring.joins"])
	assert.Equal(t, int64(2), attrs["sqlstring.conditions"])
	assert.Equal(t, true, attrs["sqlstring.paginated"])
	assert.InDelta(t, 1.5, attrs["sqlstring.duration_ms"], 0.01)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

func TestAddRenderAttributes_WithError(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.StartSpan(context.Background(), SpanBuild)
	AddRenderAttributes(span, &RenderMetadata{
		Dialect: "sqlserver",
		Error:   errors.New("incomplete query: no FROM table"),
	})
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	attrs := attrMap(spans[0].Attributes)

	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "incomplete query: no FROM table", spans[0].Status.Description)
	assert.Len(t, spans[0].Events, 1)
	assert.Equal(t, "UNKNOWN", attrs["db.operation"])
	assert.NotContains(t, attrs, "db.statement")
	assert.NotContains(t, attrs, "db.sql.table")
}

func TestDetectOperation(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"SELECT query", "SELECT * FROM user;", "SELECT"},
		{"SELECT with whitespace", "  \n  SELECT name FROM users", "SELECT"},
		{"WITH CTE", "WITH stats AS (SELECT 1) SELECT * FROM stats", "SELECT"},
		{"INSERT query", "INSERT INTO users (name) VALUES ('a')", "INSERT"},
		{"UPDATE query", "UPDATE users SET name = 'a'", "UPDATE"},
		{"DELETE query", "DELETE FROM users", "DELETE"},
		{"Unknown query", "EXPLAIN SELECT * FROM users", "UNKNOWN"},
		{"Empty", "", "UNKNOWN"},
		{"Lowercase SELECT", "select * from users", "SELECT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectOperation(tt.sql))
		})
	}
}

func BenchmarkNoopTracer(b *testing.B) {
	tracer := &NoopTracer{}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, span := tracer.StartSpan(ctx, SpanBuild)
		span.SetAttributes(attribute.String("key", "value"))
		span.End()
	}
}

func BenchmarkAddRenderAttributes(b *testing.B) {
	tp := sdktrace.NewTracerProvider()
	tracer := NewOtelTracer(tp.Tracer("benchmark"))
	ctx := context.Background()

	meta := &RenderMetadata{
		Statement: "SELECT * FROM user;",
		Dialect:   "postgresql",
		Table:     "user",
		Duration:  15 * time.Microsecond,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, span := tracer.StartSpan(ctx, SpanBuild)
		AddRenderAttributes(span, meta)
		span.End()
	}
}
