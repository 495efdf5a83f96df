package message

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kr.dev/diff"
)

func TestNew(t *testing.T) {
	var b bytes.Buffer
	log := New(&b, slog.LevelInfo)
	log.Debug("hidden")
	log.Info("positioning", "syllables", 3)
	log.Warn("unknown note shape", "shape", "Shape(42)")
	log.With("line", 7).Error("too few notes for glyph", "type", "pes")
	log.WithGroup("glyph").Warn("odd", "name", "two words", "empty", "")
	log.Warn("grouped", slog.Group("pos", "x", 1, "y", 2))

	want := "" +
		"gregotex: info: positioning syllables=3\n" +
		"gregotex: warning: unknown note shape shape=Shape(42)\n" +
		"gregotex: error: too few notes for glyph line=7 type=pes\n" +
		"gregotex: warning: odd glyph.name=\"two words\" glyph.empty=\"\"\n" +
		"gregotex: warning: grouped pos.x=1 pos.y=2\n"
	diff.Test(t, t.Errorf, b.String(), want)
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		n    int
		want slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{5, slog.LevelDebug},
	}
	for _, tt := range tests {
		if got := Verbosity(tt.n); got != tt.want {
			t.Errorf("Verbosity(%d) = %v; want %v", tt.n, got, tt.want)
		}
	}
}

func TestCounter(t *testing.T) {
	var b bytes.Buffer
	c := NewCounter(NewHandler(&b, slog.LevelError))
	log := slog.New(c)
	log.Info("ignored")
	log.Warn("counted but hidden")
	log.With("k", "v").Warn("again")
	log.Error("shown")

	w, e := c.Counts()
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, e)
	assert.Equal(t, "1 error, 2 warnings", c.Summary())
	assert.Equal(t, "gregotex: error: shown\n", b.String())

	assert.Empty(t, NewCounter(slog.DiscardHandler).Summary())
}

func TestReport(t *testing.T) {
	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(e *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, e)
			return nil
		},
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	var b bytes.Buffer
	log := slog.New(Report(NewHandler(&b, slog.LevelWarn), hub, slog.LevelError))
	log.Warn("local only")
	log.With("file", "kyrie.lb").Error("glyph without notes", "type", "pes")

	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "glyph without notes", e.Message)
	assert.Equal(t, sentry.LevelError, e.Level)
	assert.Equal(t, "kyrie.lb", e.Tags["file"])
	assert.Equal(t, "pes", e.Tags["type"])
	assert.Contains(t, b.String(), "gregotex: warning: local only\n")
	assert.Contains(t, b.String(), "gregotex: error: glyph without notes file=kyrie.lb type=pes\n")
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}
