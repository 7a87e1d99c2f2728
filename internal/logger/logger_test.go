package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	mu    sync.Mutex
	tags  []string
	posts []map[string]any
}

func (f *fakePoster) Post(tag string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posts = append(f.posts, message.(map[string]any))
	return nil
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := New(Config{Level: "debug", JSON: true, Writer: &buf})
	require.NoError(t, err)
	defer closeFn()

	l.Debug("Listing loaded", "step", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Listing loaded", line["msg"])
	assert.EqualValues(t, 1, line["step"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := New(Config{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "attempt", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "attempt=2")
}

func TestFluentHandler(t *testing.T) {
	poster := &fakePoster{}
	l := slog.New(NewFluentHandler(poster, "stayscraper", slog.LevelInfo)).
		With("trace_id", "abc").
		WithGroup("req")

	l.Debug("dropped")
	l.Error("Scrape failed", "step", 2, "error", errors.New("boom"))

	require.Len(t, poster.posts, 1)
	assert.Equal(t, "stayscraper.error", poster.tags[0])
	post := poster.posts[0]
	assert.Equal(t, "abc", post["trace_id"])
	assert.Equal(t, int64(2), post["req.step"])
	assert.Equal(t, "boom", post["req.error"])
	assert.Equal(t, "Scrape failed", post["message"])
	assert.Equal(t, "error", post["level"])
}

func TestMultiHandler(t *testing.T) {
	var buf bytes.Buffer
	poster := &fakePoster{}
	h := NewMultiHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}),
		NewFluentHandler(poster, "", slog.LevelInfo),
	)
	l := slog.New(h).With("component", "test")

	l.Info("only fluent")
	assert.Empty(t, buf.String())
	require.Len(t, poster.posts, 1)
	assert.Equal(t, "app.info", poster.tags[0])
	assert.Equal(t, "test", poster.posts[0]["component"])
}

func TestContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	l := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}
