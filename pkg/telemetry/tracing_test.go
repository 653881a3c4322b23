package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestGetSampler(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{"default", Config{}, sdktrace.AlwaysSample().Description()},
		{"always", Config{SamplerType: "always"}, sdktrace.AlwaysSample().Description()},
		{"never", Config{SamplerType: "never"}, sdktrace.NeverSample().Description()},
		{"ratio", Config{SamplerType: "ratio", SamplerRatio: 0.5}, sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.5)).Description()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getSampler(tt.cfg).Description())
		})
	}
}

func TestWithSpanRecordsStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	err := WithSpan(context.Background(), "ok-span", func(ctx context.Context) error {
		SetAttributes(ctx, attribute.String("skill.reference", "commit"))
		return nil
	}, attribute.Int("batch.size", 1))
	require.NoError(t, err)

	err = WithSpan(context.Background(), "failing-span", func(context.Context) error {
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "ok-span", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("skill.reference", "commit"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("batch.size", 1))

	assert.Equal(t, "failing-span", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}

func TestTracerDefaultName(t *testing.T) {
	assert.NotNil(t, Tracer(""))
	assert.NotNil(t, Tracer("custom"))
}
