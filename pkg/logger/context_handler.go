package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor returns an attribute derived from ctx. An empty Attr means
// the context carries nothing to log, so extractors can be written with the
// attribute helpers of this package directly:
//
//	func(ctx context.Context) slog.Attr { return logger.RequestID(idFrom(ctx)) }
type ContextExtractor func(ctx context.Context) slog.Attr

// ContextHandler adds the attributes produced by its extractors to every
// record before passing it on. Records logged without a context (for
// example by Info instead of InfoContext) see context.Background().
type ContextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler wraps next. Nil extractors are dropped; without any
// extractor next is returned as is.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	kept := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			kept = append(kept, ex)
		}
	}
	if len(kept) == 0 {
		return next
	}
	return &ContextHandler{next: next, extractors: kept}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr := ex(ctx); !attr.Equal(slog.Attr{}) {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
