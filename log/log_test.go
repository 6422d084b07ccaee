package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// decode parses one JSON log line.
func decode(t *testing.T, line []byte) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(line, &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}

	return m
}

func plainJSON(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{WithPretty(false), WithFormat(FormatJSON)}, opts...)...)
}

func TestMake_Defaults(t *testing.T) {
	t.Parallel()

	l := Make(&bytes.Buffer{})

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", l.Format(), DefaultFormat)
	}

	if l.cfg.caller != DefaultCaller || l.cfg.pretty != DefaultPretty {
		t.Errorf("unexpected defaults: %+v", l.cfg)
	}
}

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		min   Level
		write func(Logger)
		want  string // empty when filtered
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("m") }, "TRACE"},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("m") }, ""},
		{"debug at debug", LevelDebug, func(l Logger) { l.Debug("m") }, "DEBUG"},
		{"info at warn", LevelWarn, func(l Logger) { l.Info("m") }, ""},
		{"warn at warn", LevelWarn, func(l Logger) { l.Warn("m") }, "WARN"},
		{"error at error", LevelError, func(l Logger) { l.Error("m") }, "ERROR"},
		{
			"context variant",
			LevelTrace,
			func(l Logger) { l.TraceContext(context.Background(), "m") },
			"TRACE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tt.write(plainJSON(&buf, WithLevel(tt.min)))

			if tt.want == "" {
				if buf.Len() != 0 {
					t.Errorf("message not filtered: %s", buf.String())
				}

				return
			}

			if got := decode(t, buf.Bytes())["level"]; got != tt.want {
				t.Errorf("level = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestLogger_Attributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := plainJSON(&buf).With(slog.String("component", "engine"))
	l.Info("parsed", slog.Int("tokens", 7))

	m := decode(t, buf.Bytes())

	if m["msg"] != "parsed" || m["component"] != "engine" || m["tokens"] != float64(7) {
		t.Errorf("unexpected record: %v", m)
	}
}

func TestLogger_Wrap(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := plainJSON(&buf)
	debug := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelInfo || debug.Level() != LevelDebug {
		t.Fatalf("levels = %v, %v", base.Level(), debug.Level())
	}

	base.Debug("dropped")
	debug.Debug("kept")

	if out := buf.String(); strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Errorf("output = %s", out)
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	plainJSON(&buf, WithTimeLayout("none")).Info("m")

	if _, ok := decode(t, buf.Bytes())["time"]; ok {
		t.Error("time present with layout none")
	}

	buf.Reset()
	plainJSON(&buf, WithTimeLayout("2006")).Info("m")

	if ts, _ := decode(t, buf.Bytes())["time"].(string); len(ts) != 4 {
		t.Errorf("time = %q, want a four digit year", ts)
	}
}

func TestLogger_Caller(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	plainJSON(&buf, WithCaller(true)).Info("m")

	src, ok := decode(t, buf.Bytes())["source"].(map[string]any)
	if !ok {
		t.Fatalf("no source in %s", buf.String())
	}

	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("source file = %q, want this test file", file)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	t.Parallel()

	var l Logger

	// None of these may panic.
	l.Trace("m")
	l.Error("m", slog.String("k", "v"))
	l = l.With(slog.String("k", "v"))

	if l.Level() != DefaultLevel || l.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger should report defaults and be disabled")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	t.Parallel()

	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	l := Make(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	}), WithPretty(false))

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			l.With(slog.Int("worker", i)).Info("tick")
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("got %d lines, want 16", n)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
