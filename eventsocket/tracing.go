//go:build !noesltracing

package eventsocket

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/ash30/eslrs/eventsocket")

// spanTracer emits OpenTelemetry spans around SendRecv/Recv, default on
// per spec.md §6's tracing feature gate. Disabled with the
// noesltracing build tag (see tracing_stub.go).
type spanTracer struct{}

func newSpanTracer() spanTracer { return spanTracer{} }

func (spanTracer) startSendRecv(ctx context.Context, verb string) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, "eventsocket.send_recv",
		trace.WithAttributes(attribute.String("eventsocket.command", verb)))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

func (spanTracer) startRecv(ctx context.Context) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, "eventsocket.recv")
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
