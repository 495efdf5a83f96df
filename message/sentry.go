package message

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// Report returns a handler that passes records to h and sends the ones
// at level or above to Sentry through hub. Attributes become tags of the
// event.
func Report(h slog.Handler, hub *sentry.Hub, level slog.Level) slog.Handler {
	return &reporter{h: h, hub: hub, level: level}
}

type reporter struct {
	h     slog.Handler
	hub   *sentry.Hub
	level slog.Level
	attrs []slog.Attr
}

func (r *reporter) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= r.level || r.h.Enabled(ctx, l)
}

func (r *reporter) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level >= r.level {
		r.hub.WithScope(func(scope *sentry.Scope) {
			scope.SetLevel(sentryLevel(rec.Level))
			for _, a := range r.attrs {
				scope.SetTag(a.Key, a.Value.String())
			}
			rec.Attrs(func(a slog.Attr) bool {
				scope.SetTag(a.Key, a.Value.String())
				return true
			})
			r.hub.CaptureMessage(rec.Message)
		})
	}
	if !r.h.Enabled(ctx, rec.Level) {
		return nil
	}
	return r.h.Handle(ctx, rec)
}

func (r *reporter) WithAttrs(as []slog.Attr) slog.Handler {
	r2 := *r
	r2.h = r.h.WithAttrs(as)
	r2.attrs = append(r.attrs[:len(r.attrs):len(r.attrs)], as...)
	return &r2
}

func (r *reporter) WithGroup(name string) slog.Handler {
	r2 := *r
	r2.h = r.h.WithGroup(name)
	return &r2
}

func sentryLevel(l slog.Level) sentry.Level {
	switch {
	case l >= slog.LevelError:
		return sentry.LevelError
	case l >= slog.LevelWarn:
		return sentry.LevelWarning
	case l >= slog.LevelInfo:
		return sentry.LevelInfo
	}
	return sentry.LevelDebug
}
