package cmd

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/bahostetterlewis/PyBakUP/cond"
	"github.com/bahostetterlewis/PyBakUP/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	sourceFilesKey  struct{}
	outputKey       struct{}
	parseOptionsKey struct{}

	sourceFiles struct {
		paths    []string
		hasStdin bool

		open  []*os.File
		multi io.Reader
	}

	// SourceFiles reads the files named with --source in order, standard
	// input last. Files are opened on first use and must be released with
	// Close.
	SourceFiles interface {
		IsZero() bool
		Readers() iter.Seq[io.Reader]
		io.ReadCloser
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.paths) == 0 && !s.hasStdin }

// Readers returns an iterator over the source files one at a time,
// including stdin if present. Each file is closed once the loop body it
// was yielded to returns.
func (s *sourceFiles) Readers() iter.Seq[io.Reader] {
	return func(yield func(io.Reader) bool) {
		for _, path := range s.paths {
			f, err := os.Open(path)
			if err != nil {
				log.Warn("skipping unreadable source",
					slog.String("path", path), slog.Any("error", err))

				continue
			}

			more := yield(f)
			_ = f.Close()

			if !more {
				return
			}
		}

		if s.hasStdin {
			yield(os.Stdin)
		}
	}
}

// Read implements io.Reader by reading from all source files in order,
// including stdin if present.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	if s.multi == nil {
		readers := make([]io.Reader, 0, len(s.paths)+1)

		for _, path := range s.paths {
			f, err := os.Open(path)
			if err != nil {
				return 0, err
			}

			s.open = append(s.open, f)
			readers = append(readers, f)
		}

		if s.hasStdin {
			readers = append(readers, os.Stdin)
		}

		s.multi = io.MultiReader(readers...)
	}

	return s.multi.Read(p)
}

// Close closes the files opened by Read. Standard input is left open.
func (s *sourceFiles) Close() error {
	var errs []error

	for _, f := range s.open {
		errs = append(errs, f.Close())
	}

	s.open, s.multi = nil, nil

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing the given source
// files.
//
// Duplicate paths are dropped by resolving symlinks and comparing device/
// inode pairs. All occurrences of "-" are replaced with a single stdin reader.
// The stdin reader is placed last so it reads after all regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

// buildSourceFiles constructs a SourceFiles from the given source paths.
// It returns nil if none of the sources exist.
func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.paths = make([]string, 0, len(sources))
	seen := make(map[fileKey]struct{})

	var stdinKey fileKey

	if stdinInfo, err := os.Stdin.Stat(); err == nil {
		stdinKey, _ = makeFileKey(stdinInfo)
	}

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		path, ok := uniquePath(src, seen)
		if !ok {
			continue
		}

		srcs.paths = append(srcs.paths, path)
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		srcs.hasStdin = true
		srcs.paths = slices.DeleteFunc(srcs.paths, func(p string) bool {
			info, err := os.Stat(p)
			if err != nil {
				return false
			}

			key, _ := makeFileKey(info)

			return key == stdinKey
		})
	}

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// uniquePath returns the resolved form of path if no other path seen so far
// names the same file.
func uniquePath(path string, seen map[fileKey]struct{}) (string, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return "", false
	}

	if _, exists := seen[key]; exists {
		return "", false
	}

	seen[key] = struct{}{}

	return resolved, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// sourceFilesFrom retrieves the SourceFiles stored in ctx by WithSourceFiles.
// Returns nil if none were stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// inputFrom returns the source files stored in ctx, or standard input.
// The caller must close the result.
func inputFrom(ctx context.Context) io.ReadCloser {
	if src := sourceFilesFrom(ctx); src != nil {
		return src
	}

	return io.NopCloser(os.Stdin)
}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// WithParseOptions returns a new context.Context carrying the options every
// command uses to parse conditions.
func WithParseOptions(ctx context.Context, opts ...cond.Option) context.Context {
	return context.WithValue(ctx, parseOptionsKey{}, opts)
}

func parseOptionsFrom(ctx context.Context) []cond.Option {
	opts, _ := ctx.Value(parseOptionsKey{}).([]cond.Option)

	return opts
}
