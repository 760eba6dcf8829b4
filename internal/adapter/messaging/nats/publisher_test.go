package nats

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewMessage_CarriesPayloadAndTraceContext(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "parent")
	defer span.End()

	msg, err := newMessage(ctx, "review.submitted", map[string]interface{}{"sweetId": "X", "rating": 5})

	require.NoError(t, err)
	assert.Equal(t, "review.submitted", msg.Subject)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Data, &body))
	assert.Equal(t, "X", body["sweetId"])

	traceparent := HeaderCarrier(msg.Header).Get("traceparent")
	assert.Contains(t, traceparent, span.SpanContext().TraceID().String())
	assert.NotEmpty(t, HeaderCarrier(msg.Header).Keys())
	assert.Equal(t, "application/json", msg.Header.Get("Content-Type"))

	other, err := newMessage(ctx, "review.submitted", map[string]interface{}{"sweetId": "X"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.Header.Get(nats.MsgIdHdr))
	assert.NotEqual(t, msg.Header.Get(nats.MsgIdHdr), other.Header.Get(nats.MsgIdHdr))
}

func TestNewMessage_UnmarshalableData(t *testing.T) {
	_, err := newMessage(context.Background(), "order.placed", make(chan int))
	assert.Error(t, err)
}
