// Package cli contains the command line interface for bucond.
//
// # Usage
//
//	bucond [flags] <command> [args]
//
// Without a command, bucond reports which items of the default manifest
// are due for backup.
//
// # Configuration
//
// Default flag values are read from config.yaml in the user configuration
// directory (~/.config/bucond on Linux). Keys are flag names without the
// leading dashes:
//
//	log-level: debug
//	max-depth: 16
//	log:
//	  pretty: false
//
// The init command writes the current flag values to that file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output on a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o bucond .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/bucond/pprof)
//
// # Examples
//
//	# Is a backup due two days after the last one?
//	bucond eval --last-backup=48h 'LastBU > 1 day || Modified'
//
//	# Check every condition in a file, also rejecting ill-typed ones
//	bucond -s conditions.txt check --strict
//
//	# Only the due items of one group
//	bucond due -f items.yaml --group=media --only-due
package cli
