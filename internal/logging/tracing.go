package logging

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	cloudTraceKey        = "logging.googleapis.com/trace"
	cloudSpanKey         = "logging.googleapis.com/spanId"
	cloudTraceSampledKey = "logging.googleapis.com/trace_sampled"
)

type cloudTraceHandler struct {
	slog.Handler
	project string
}

// NewGoogleCloudTracingLogHandler wraps base so records logged with a span in the context
// are linked to the trace in Google Cloud Logging.
//
// NOTE: Only the *Context logging methods carry the span
func NewGoogleCloudTracingLogHandler(base slog.Handler, project string) slog.Handler {
	return &cloudTraceHandler{Handler: base, project: project}
}

func (h *cloudTraceHandler) Handle(ctx context.Context, record slog.Record) error {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		record.AddAttrs(
			slog.String(cloudTraceKey, fmt.Sprintf("projects/%s/traces/%s", h.project, spanContext.TraceID())),
			slog.String(cloudSpanKey, spanContext.SpanID().String()),
			slog.Bool(cloudTraceSampledKey, spanContext.IsSampled()),
		)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *cloudTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &cloudTraceHandler{Handler: h.Handler.WithAttrs(attrs), project: h.project}
}

func (h *cloudTraceHandler) WithGroup(name string) slog.Handler {
	return &cloudTraceHandler{Handler: h.Handler.WithGroup(name), project: h.project}
}
