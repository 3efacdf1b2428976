package log

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type requestId struct{}

func RequestIDFromContext(c context.Context) string {
	id, ok := c.Value(requestId{}).(string)
	if !ok {
		return ""
	}
	return id
}

func AttachRequestIDToContext(c context.Context, h string) context.Context {
	return context.WithValue(c, requestId{}, h)
}

func AttachTraceIdFromContext() zerolog.HookFunc {
	return func(e *zerolog.Event, level zerolog.Level, message string) {
		c := e.GetCtx()
		spanCtx := trace.SpanContextFromContext(c)

		e.Str(KEY_REQUEST_ID, RequestIDFromContext(c))
		if spanCtx.IsValid() {
			e.Str(KEY_TRACE_ID, spanCtx.TraceID().String()).
				Str(KEY_SPAN_ID, spanCtx.SpanID().String())
		}
	}
}
