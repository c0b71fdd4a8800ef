package otelhelper

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.AddEvent("error_occurred", trace.WithAttributes(attrs...))
}

// SetWarnings annotates a span with load diagnostics without marking
// it failed; partial loads are successes with problems.
func SetWarnings(span trace.Span, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	span.AddEvent("load_warnings", trace.WithAttributes(
		attribute.Int(WarningCountKey, len(warnings)),
		attribute.StringSlice("pipegraph.pipeline.warning_messages", warnings),
	))
}
