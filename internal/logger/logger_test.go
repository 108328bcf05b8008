package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	level   slog.Level
	records []slog.Record
	err     error
}

func (h *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return h.err
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	debug := &recordingHandler{level: slog.LevelDebug}
	warn := &recordingHandler{level: slog.LevelWarn}
	l := slog.New(NewMultiHandler(debug, warn))

	l.Debug("search started")
	l.Warn("slow search")

	assert.Len(t, debug.records, 2)
	require.Len(t, warn.records, 1)
	assert.Equal(t, "slow search", warn.records[0].Message)
}

func TestMultiHandlerEnabled(t *testing.T) {
	h := NewMultiHandler(&recordingHandler{level: slog.LevelError}, &recordingHandler{level: slog.LevelInfo})
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandlerJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &recordingHandler{}
	h := NewMultiHandler(&recordingHandler{err: boom}, ok)

	err := h.Handle(context.Background(), slog.NewRecord(testTime, slog.LevelInfo, "msg", 0))
	assert.ErrorIs(t, err, boom)
	assert.Len(t, ok.records, 1, "a failing handler does not starve the others")
}

func TestNewWritesText(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)

	l.Info("[BOT] move selected", "column", 3)
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "[BOT] move selected")
	assert.Contains(t, out, "column=3")
	assert.NotContains(t, out, "hidden")
}

var testTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
