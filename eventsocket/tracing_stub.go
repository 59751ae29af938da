//go:build noesltracing

package eventsocket

import "context"

// spanTracer is a no-op stand-in compiled in under the noesltracing
// build tag (spec.md §6's tracing feature gate, disabled).
type spanTracer struct{}

func newSpanTracer() spanTracer { return spanTracer{} }

func (spanTracer) startSendRecv(ctx context.Context, _ string) (context.Context, func(error)) {
	return ctx, func(error) {}
}

func (spanTracer) startRecv(ctx context.Context) (context.Context, func(error)) {
	return ctx, func(error) {}
}
