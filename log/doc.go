// Package log provides a leveled structured logger built on [log/slog].
//
// A [Logger] is configured once with functional options and is immutable
// afterwards, so it can be copied and shared freely:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("loaded items", slog.Int("count", 12))
//
// Attributes are typed [slog.Attr] values only; there is no key/value
// variadic form.
//
// # Levels
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug] and
// is used for step-by-step tracing of the condition engine.
//
// # Formats
//
// [FormatJSON] writes one JSON object per record and [FormatText] writes
// key=value pairs. With [WithPretty] (the default) both are rendered for
// people instead: colored when writing to a terminal, with JSON records
// spread over several lines.
//
// # Default logger
//
// The package-level functions ([Info], [Error], ...) write through a default
// logger that [Config] reconfigures. The command line interface configures it
// from its --log-* flags before anything else runs.
package log
