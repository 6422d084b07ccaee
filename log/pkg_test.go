package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// These tests replace the default logger, so they do not run in parallel.

func TestPackage_UsesDefaultLogger(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithLevel(LevelTrace), WithPretty(false)))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("hello", slog.String("key", "value"))

			m := decode(t, buf.Bytes())
			if m["level"] != tt.level || m["msg"] != "hello" || m["key"] != "value" {
				t.Errorf("unexpected record: %v", m)
			}
		})
	}
}

func TestPackage_Config(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithPretty(false)))
	Config(WithLevel(LevelError), WithFormat(FormatText))

	WarnContext(context.Background(), "dropped")
	ErrorContext(context.Background(), "kept")

	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "msg=kept") {
		t.Errorf("output = %q", out)
	}

	if Default().Level() != LevelError || Default().Format() != FormatText {
		t.Error("Config did not update the default logger")
	}

	buf.Reset()
	With(slog.String("component", "cli")).Error("boom")

	if !strings.Contains(buf.String(), "component=cli") {
		t.Errorf("With lost attributes: %q", buf.String())
	}
}
