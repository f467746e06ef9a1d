package otel_test

import (
	"context"
	"errors"
	"roomboard/infras/otel"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("service").Start(context.Background(), "service.Create")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"room.id":   "101",
		"nights":    3,
		"conflict":  false,
		"room.list": []string{"101", "102"},
		"version":   uint64(7),
		"ratio":     0.5,
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	assert.Contains(t, spans[0].Attributes(), attribute.String("room.id", "101"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("nights", 3))
	assert.Contains(t, spans[0].Attributes(), attribute.Bool("conflict", false))
	assert.Contains(t, spans[0].Attributes(), attribute.StringSlice("room.list", []string{"101", "102"}))
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("version", 7))
	assert.Contains(t, spans[0].Attributes(), attribute.Float64("ratio", 0.5))
}
