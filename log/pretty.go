package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a pretty handler. Styles come from a renderer
// bound to the handler's output, so they render without color unless the
// output is a color terminal.
type palette struct {
	key   lipgloss.Style
	str   lipgloss.Style
	num   lipgloss.Style
	yes   lipgloss.Style
	no    lipgloss.Style
	when  lipgloss.Style
	dur   lipgloss.Style
	trace lipgloss.Style
	debug lipgloss.Style
	info  lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		when:  fg("4"),
		dur:   fg("5"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes records for humans: either a single line of
// key=value pairs, or an indented block of "key: value" lines when block is
// set. Nested groups are flattened into dotted keys.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  *palette
	block  bool
	prefix string      // dotted group prefix for attributes added later
	attrs  []slog.Attr // attributes from WithAttrs, already prefixed
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	block bool,
) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: newPalette(w),
		block: block,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(c.attrs)

	for _, a := range attrs {
		c.attrs = appendFlat(c.attrs, h.prefix, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.appendBuiltin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.appendBuiltin(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = h.appendBuiltin(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = h.appendBuiltin(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = appendFlat(fields, h.prefix, a)

		return true
	})

	buf := new(bytes.Buffer)

	if h.block {
		buf.WriteString("{\n")

		for i, a := range fields {
			if i > 0 {
				buf.WriteString(",\n")
			}

			buf.WriteString("  ")
			buf.WriteString(h.style.key.Render(a.Key))
			buf.WriteString(": ")
			buf.WriteString(h.value(a.Key, r.Level, a.Value))
		}

		buf.WriteString("\n}\n")
	} else {
		for i, a := range fields {
			if i > 0 {
				buf.WriteByte(' ')
			}

			buf.WriteString(h.style.key.Render(a.Key))
			buf.WriteByte('=')
			buf.WriteString(h.value(a.Key, r.Level, a.Value))
		}

		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// appendBuiltin appends one of the record's own fields after passing it
// through ReplaceAttr. Fields replaced by an empty attribute are dropped.
func (h *prettyHandler) appendBuiltin(fields []slog.Attr, a slog.Attr) []slog.Attr {
	if h.opts.ReplaceAttr != nil {
		key := a.Key
		a = h.opts.ReplaceAttr(nil, a)

		if a.Key == "" {
			return fields
		}

		// Keep the level key recognizable for coloring.
		if key == slog.LevelKey {
			a.Key = key
		}
	}

	return append(fields, a)
}

// appendFlat appends a to fields, resolving LogValuers and flattening
// groups into dotted keys under prefix.
func appendFlat(fields []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	v := a.Value.Resolve()

	if v.Kind() != slog.KindGroup {
		if a.Key == "" {
			return fields
		}

		return append(fields, slog.Attr{Key: prefix + a.Key, Value: v})
	}

	inner := prefix
	if a.Key != "" {
		inner += a.Key + "."
	}

	for _, ga := range v.Group() {
		fields = appendFlat(fields, inner, ga)
	}

	return fields
}

func (h *prettyHandler) value(key string, level slog.Level, v slog.Value) string {
	s := h.style

	if key == slog.LevelKey {
		return s.level(level).Render(v.String())
	}

	switch v.Kind() {
	case slog.KindString:
		return s.str.Render(v.String())
	case slog.KindInt64:
		return s.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return s.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return s.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return s.yes.Render("true")
		}

		return s.no.Render("false")
	case slog.KindDuration:
		return s.dur.Render(v.Duration().String())
	case slog.KindTime:
		return s.when.Render(v.Time().Format(time.RFC3339))
	default:
		if v.Any() == nil {
			return s.key.Render("null")
		}

		return s.str.Render(v.String())
	}
}
