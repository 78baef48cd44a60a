package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "page", 1)
	log.Info(ctx, "inf", "processed", 2)
	log.Warn(ctx, "wrn", "failed", 3)
	log.Error(ctx, "err", "stage", "subscribe")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "page=1",
		"level=INFO", "msg=inf", "processed=2",
		"level=WARN", "msg=wrn", "failed=3",
		"level=ERROR", "msg=err", "stage=subscribe",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	child := log.With("run_id", "r-1", "region", "eu-west-1")
	child.Info(context.Background(), "walk started")

	out := buf.String()
	for _, want := range []string{"run_id=r-1", "region=eu-west-1", "msg=\"walk started\""} {
		assert.Contains(t, out, want)
	}
}

func TestNewJSON_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, slog.LevelWarn)
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	ctx := context.TODO()
	log.Debug(ctx, "x")
	log.Info(ctx, "x")
	log.Warn(ctx, "x")
	log.Error(ctx, "x")
	log.With("a", 1).Info(ctx, "y")
}

func TestSlogLogger_ContextArgs(t *testing.T) {
	log, buf := newTestLogger(t)

	ctx := ContextWith(context.Background(), "request_id", "req-1")
	ctx = ContextWith(ctx, "run_id", "r-1")

	log.Info(ctx, "page fetched", "page", 2)
	log.With("region", "eu-west-1").Warn(ctx, "notification failed")
	log.Info(context.Background(), "unbound")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines[:2] {
		assert.Contains(t, line, "request_id=req-1")
		assert.Contains(t, line, "run_id=r-1")
	}
	assert.Contains(t, lines[0], "page=2")
	assert.Contains(t, lines[1], "region=eu-west-1")
	assert.NotContains(t, lines[2], "request_id")
}
