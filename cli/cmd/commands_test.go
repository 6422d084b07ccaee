package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bahostetterlewis/PyBakUP/cond"
)

type runner interface {
	Run(ctx context.Context) error
}

// run executes a command and returns what it wrote. The buffer is not a
// terminal, so the output carries no color codes.
func run(t *testing.T, ctx context.Context, cmd runner) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	err := cmd.Run(WithOutput(ctx, &buf))

	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestCheckRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		conditions []string
		strict     bool
		want       []string
		wantErr    bool
	}{
		{
			name:       "valid",
			conditions: []string{"LastBU > 3 days", "Modified || False"},
			want:       []string{"ok      LastBU > 3 days\n", "ok      Modified || False\n"},
		},
		{
			name:       "lex_error",
			conditions: []string{"LastBU > 3 dayz"},
			want: []string{
				"invalid LastBU > 3 dayz\n",
				"                   ^ unknown word \"dayz\" at offset 11\n",
			},
			wantErr: true,
		},
		{
			name:       "syntax_error_at_end",
			conditions: []string{"LastBU >"},
			want:       []string{"invalid LastBU >\n", "                ^ at offset 8: unexpected end of input"},
			wantErr:    true,
		},
		{
			name:       "ill_typed_is_valid",
			conditions: []string{"3 days && True"},
			want:       []string{"ok      3 days && True\n"},
		},
		{
			name:       "ill_typed_strict",
			conditions: []string{"3 days && True"},
			strict:     true,
			want:       []string{"invalid 3 days && True\n", "operator && not defined for Duration and Boolean"},
			wantErr:    true,
		},
		{
			name:       "duration_strict",
			conditions: []string{"LastBU + 1 day"},
			strict:     true,
			want:       []string{"condition yields Duration, want Boolean"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, t.Context(), &Check{Conditions: tt.conditions, Strict: tt.strict})

			if (err != nil) != tt.wantErr {
				t.Fatalf("Check.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrInvalidCondition) {
				t.Errorf("Check.Run() error = %v, want ErrInvalidCondition", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestCheckRun_FromSource(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "conditions.txt",
		"# one per line\nLastBU > 7 days\n\n  Modified  \nLastBU >> 1\n")

	ctx := WithSourceFiles(t.Context(), []string{path})

	out, err := run(t, ctx, &Check{})
	if !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("Check.Run() error = %v, want ErrInvalidCondition", err)
	}

	if got := strings.Count(out, "ok "); got != 2 {
		t.Errorf("got %d valid conditions, want 2:\n%s", got, out)
	}

	if !strings.Contains(out, "invalid LastBU >> 1") {
		t.Errorf("output missing the invalid condition:\n%s", out)
	}
}

func TestCheckRun_ParseOptions(t *testing.T) {
	t.Parallel()

	ctx := WithParseOptions(t.Context(), cond.WithMaxDepth(1), cond.WithoutCache())

	out, err := run(t, ctx, &Check{Conditions: []string{"((True))"}})
	if err == nil {
		t.Fatalf("nesting beyond --max-depth accepted:\n%s", out)
	}

	if !strings.Contains(out, "maximum nesting depth exceeded") {
		t.Errorf("output %q missing depth diagnostic", out)
	}
}

func TestParseRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{"native", "LastBU > 7 days || Modified\n"},
		{"tree", "||\n  >\n    Keyword LastBU\n    TimeSpan 7 days\n  Keyword Modified\n"},
		{"json", `"keyword": "Modified"`},
		{"yaml", "keyword: Modified"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, t.Context(), &Parse{
				Condition: " (LastBU > 7 days) || Modified ",
				Format:    tt.format,
				Indent:    2,
			})
			if err != nil {
				t.Fatalf("Parse.Run() error = %v", err)
			}

			if tt.format == "native" || tt.format == "tree" {
				if out != tt.want {
					t.Errorf("got %q, want %q", out, tt.want)
				}

				return
			}

			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q missing %q", out, tt.want)
			}
		})
	}
}

func TestParseRun_Source(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "condition.txt", "Modified&&True\n")
	ctx := WithSourceFiles(t.Context(), []string{path})

	out, err := run(t, ctx, &Parse{Condition: "-", Format: "native"})
	if err != nil {
		t.Fatalf("Parse.Run() error = %v", err)
	}

	if out != "Modified && True\n" {
		t.Errorf("got %q", out)
	}
}

func TestParseRun_Invalid(t *testing.T) {
	t.Parallel()

	_, err := run(t, t.Context(), &Parse{Condition: "LastBU > > 1 day", Format: "json"})
	if !errors.Is(err, cond.ErrSyntax) {
		t.Errorf("Parse.Run() error = %v, want a syntax error", err)
	}
}

func TestEvalRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		eval    Eval
		want    string
		wantErr error
	}{
		{
			name: "go_duration",
			eval: Eval{Condition: "LastBU > 1 day", LastBackup: "36h"},
			want: "True\n",
		},
		{
			name: "time_span",
			eval: Eval{Condition: "LastBU >= 7 days", LastBackup: "6 days + 23 hours"},
			want: "False\n",
		},
		{
			name: "modified",
			eval: Eval{Condition: "Modified && True", Modified: true},
			want: "True\n",
		},
		{
			name: "short_circuit_needs_no_age",
			eval: Eval{Condition: "Modified || LastBU > 1 day", Modified: true},
			want: "True\n",
		},
		{
			name:    "missing_age",
			eval:    Eval{Condition: "LastBU > 1 day"},
			wantErr: cond.ErrContext,
		},
		{
			name:    "bad_age",
			eval:    Eval{Condition: "True", LastBackup: "soon"},
			wantErr: ErrLastBackup,
		},
		{
			name:    "boolean_age",
			eval:    Eval{Condition: "True", LastBackup: "True"},
			wantErr: ErrLastBackup,
		},
		{
			name:    "duration_result",
			eval:    Eval{Condition: "LastBU + 1 day", LastBackup: "1h"},
			wantErr: cond.ErrType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, t.Context(), &tt.eval)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Eval.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Eval.Run() error = %v", err)
			}

			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestEvalRun_TypedErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cmd       runner
		as        func(error) bool
		wantText  string
		wantClass error
	}{
		{
			name: "eval_syntax",
			cmd:  &Eval{Condition: "(3 days"},
			as: func(err error) bool {
				var e *cond.SyntaxError
				return errors.As(err, &e) && e.Pos == 7
			},
			wantText:  "at offset 7",
			wantClass: cond.ErrSyntax,
		},
		{
			name: "eval_type",
			cmd:  &Eval{Condition: "3 days && True"},
			as: func(err error) bool {
				var e *cond.TypeError
				return errors.As(err, &e) && e.Operator == "&&"
			},
			wantText:  "operator && not defined for Duration and Boolean",
			wantClass: cond.ErrType,
		},
		{
			name: "eval_context",
			cmd:  &Eval{Condition: "LastBU > 1 day"},
			as: func(err error) bool {
				var e *cond.ContextError
				return errors.As(err, &e) && e.Keyword == cond.LastBackupAge
			},
			wantText:  "no value for LastBU",
			wantClass: cond.ErrContext,
		},
		{
			name: "parse_syntax",
			cmd:  &Parse{Condition: "3 days &&", Format: "native"},
			as: func(err error) bool {
				var e *cond.SyntaxError
				return errors.As(err, &e) && e.Pos == 9
			},
			wantText:  "at offset 9",
			wantClass: cond.ErrSyntax,
		},
		{
			name: "parse_lex",
			cmd:  &Parse{Condition: "LastBU > 3 dayz", Format: "json"},
			as: func(err error) bool {
				var e *cond.LexError
				return errors.As(err, &e) && e.Pos == 11
			},
			wantText:  `unknown word "dayz" at offset 11`,
			wantClass: cond.ErrLex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, t.Context(), tt.cmd)
			if err == nil {
				t.Fatal("Run() error = nil")
			}

			if !tt.as(err) {
				t.Errorf("Run() error = %v, typed error lost", err)
			}

			if !errors.Is(err, tt.wantClass) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantClass)
			}

			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Run() error = %q, want it to contain %q", err, tt.wantText)
			}
		})
	}
}

func TestParseAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"90s", 90, false},
		{"1h30m", 5400, false},
		{"2 days", 2 * 86400, false},
		{"1 month + 1 min", 2629743 + 60, false},
		{"-1h", 0, true},
		{"Modified", 0, true},
		{"LastBU", 0, true},
	}

	for _, tt := range tests {
		got, err := parseAge(t.Context(), tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAge(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)

			continue
		}

		if got != tt.want {
			t.Errorf("parseAge(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

const dueManifest = `
items:
  - name: photos
    group: media
    condition: LastBU > 7 days
    last_backup: 2024-03-01T00:00:00Z
  - name: thesis
    condition: Modified
    last_backup: 2024-03-09T00:00:00Z
  - name: music
    group: media
    condition: LastBU > 7 days
    last_backup: 2024-03-09T00:00:00Z
  - name: new
    condition: LastBU > 1 day
  - name: typo
    condition: LastBU > 1 weak
`

func TestDueRun(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "items.yaml", dueManifest)
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	out, err := run(t, t.Context(), &Due{File: []string{path}, Now: now, Jobs: 2})
	if err != nil {
		t.Fatalf("Due.Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}

	wantPrefix := []string{
		"DUE   photos LastBU > 7 days",
		"skip  thesis Modified",
		"skip  music  LastBU > 7 days",
		"error new    no value for LastBU",
		"error typo   invalid condition:",
	}

	for i, want := range wantPrefix {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
}

func TestDueRun_Filters(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "items.yaml", dueManifest)
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	out, err := run(t, t.Context(), &Due{
		File:    []string{path, path},
		Group:   "media",
		Now:     now,
		OnlyDue: true,
	})
	if err != nil {
		t.Fatalf("Due.Run() error = %v", err)
	}

	if out != "DUE   photos LastBU > 7 days\n" {
		t.Errorf("got %q", out)
	}
}

func TestDueRun_Errors(t *testing.T) {
	t.Parallel()

	_, err := run(t, t.Context(), &Due{File: []string{"/nonexistent/items.yaml"}})
	if !errors.Is(err, ErrNoItems) {
		t.Errorf("Due.Run() error = %v, want ErrNoItems", err)
	}

	path := writeFile(t, "items.yaml", "items:\n  - name: a\n    colour: red\n")

	_, err = run(t, t.Context(), &Due{File: []string{path}})
	if !errors.Is(err, ErrReadItems) {
		t.Errorf("Due.Run() error = %v, want ErrReadItems", err)
	}
}
