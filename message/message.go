// Package message is the diagnostic side channel of gregotex.
//
// Problems found in a score are not errors: the score is still written,
// and the problem is reported through a [*slog.Logger]. [New] returns a
// logger that writes one line per record,
//
//	gregotex: warning: unknown note shape shape=Shape(42)
//
// and drops records below a verbosity level. [Counter] counts the
// anomalies that went through a logger, and [Report] forwards them to
// Sentry.
package message

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Verbosity returns the lowest level shown for the given number of -v
// flags: warnings by default, then informational and debug messages.
func Verbosity(n int) slog.Level {
	switch {
	case n <= 0:
		return slog.LevelWarn
	case n == 1:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// New returns a logger writing records at level or above to w.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(w, level))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewHandler returns the handler used by New.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	if level == nil {
		level = slog.LevelWarn
	}
	return &handler{mu: new(sync.Mutex), w: w, level: level}
}

type handler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  string // preformatted
	prefix string // group prefix of later attributes
}

func (h *handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString("gregotex: ")
	b.WriteString(LevelName(r.Level))
	b.WriteString(": ")
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *handler) WithAttrs(as []slog.Attr) slog.Handler {
	if len(as) == 0 {
		return h
	}
	var b strings.Builder
	for _, a := range as {
		appendAttr(&b, h.prefix, a)
	}
	h2 := *h
	h2.attrs += b.String()
	return &h2
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix += name + "."
	return &h2
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, g := range a.Value.Group() {
			appendAttr(b, p, g)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(quote(a.Value.String()))
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}

// LevelName returns the name a level is printed with.
func LevelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warning"
	case l >= slog.LevelInfo:
		return "info"
	}
	return "debug"
}

// Counter is a handler that counts warnings and errors before passing
// records on. Warnings and errors are counted even when the wrapped
// handler does not show them.
type Counter struct {
	h slog.Handler
	n *counts
}

type counts struct {
	mu       sync.Mutex
	warnings int
	errors   int
}

// NewCounter returns a Counter wrapping h.
func NewCounter(h slog.Handler) *Counter {
	return &Counter{h: h, n: new(counts)}
}

func (c *Counter) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= slog.LevelWarn || c.h.Enabled(ctx, l)
}

func (c *Counter) Handle(ctx context.Context, r slog.Record) error {
	c.n.mu.Lock()
	switch {
	case r.Level >= slog.LevelError:
		c.n.errors++
	case r.Level >= slog.LevelWarn:
		c.n.warnings++
	}
	c.n.mu.Unlock()
	if !c.h.Enabled(ctx, r.Level) {
		return nil
	}
	return c.h.Handle(ctx, r)
}

func (c *Counter) WithAttrs(as []slog.Attr) slog.Handler {
	return &Counter{h: c.h.WithAttrs(as), n: c.n}
}

func (c *Counter) WithGroup(name string) slog.Handler {
	return &Counter{h: c.h.WithGroup(name), n: c.n}
}

// Counts returns the number of warnings and errors handled so far.
func (c *Counter) Counts() (warnings, errors int) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	return c.n.warnings, c.n.errors
}

// Summary describes the counts, or returns "" if there are none.
func (c *Counter) Summary() string {
	w, e := c.Counts()
	if w == 0 && e == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s, %d %s", e, plural(e, "error"), w, plural(w, "warning"))
}

func plural(n int, s string) string {
	if n == 1 {
		return s
	}
	return s + "s"
}
