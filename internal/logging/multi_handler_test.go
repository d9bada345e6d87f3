package logging

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

// mockHandler is a test handler that can be configured to fail
type mockHandler struct {
	enabled   bool
	handleErr error
	handled   int
}

func (h *mockHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return h.enabled
}

func (h *mockHandler) Handle(_ context.Context, _ slog.Record) error {
	h.handled++
	return h.handleErr
}

func (h *mockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *mockHandler) WithGroup(name string) slog.Handler {
	return h
}

func TestMultiHandler_Handle(t *testing.T) {
	buf1 := &bytes.Buffer{}
	buf2 := &bytes.Buffer{}

	handler1 := slog.NewTextHandler(buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	multi := NewMultiHandler(handler1, handler2)
	logger := slog.New(multi)

	logger.Info("test message", "key", "value")

	// Both buffers should contain the message
	assert.Contains(t, buf1.String(), "test message")
	assert.Contains(t, buf1.String(), "key=value")
	assert.Contains(t, buf2.String(), "test message")
	assert.Contains(t, buf2.String(), "key=value")
}

func TestMultiHandler_Enabled(t *testing.T) {
	handler1 := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	multi := NewMultiHandler(handler1, handler2)

	// Info level should be enabled (handler1 accepts it)
	assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))

	// Debug level should be disabled (no handler accepts it)
	assert.False(t, multi.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandler_SkipsDisabledHandlers(t *testing.T) {
	buf := &bytes.Buffer{}
	infoHandler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	warnOnly := &mockHandler{enabled: false}

	multi := NewMultiHandler(infoHandler, warnOnly)
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "routed", 0)

	require.NoError(t, multi.Handle(context.Background(), record))
	assert.Contains(t, buf.String(), "routed")
	assert.Equal(t, 0, warnOnly.handled)
}

func TestMultiHandler_HandleError(t *testing.T) {
	failing := &mockHandler{enabled: true, handleErr: errors.New("write failed")}
	trailing := &mockHandler{enabled: true}

	multi := NewMultiHandler(failing, trailing)
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "test", 0)

	err := multi.Handle(context.Background(), record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write failed")

	// Handlers after the failing one are not called
	assert.Equal(t, 0, trailing.handled)
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	buf1 := &bytes.Buffer{}
	buf2 := &bytes.Buffer{}

	handler1 := slog.NewTextHandler(buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	multi := NewMultiHandler(handler1, handler2)
	logger := slog.New(multi.WithAttrs([]slog.Attr{slog.String("component", "syncer")}))

	logger.Info("attached")

	assert.Contains(t, buf1.String(), "component=syncer")
	assert.Contains(t, buf2.String(), "component=syncer")
}

func TestMultiHandler_WithGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	multi := NewMultiHandler(handler)
	logger := slog.New(multi.WithGroup("request"))

	logger.Info("grouped", "id", 42)

	assert.Contains(t, buf.String(), "request.id=42")
}
