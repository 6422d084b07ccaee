package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "flat",
			input: "log-level: debug\nmax-depth: 8\nno-cache: true\n",
			want: map[string]any{
				"log-level": "debug",
				"max-depth": "8",
				"no-cache":  true,
			},
		},
		{
			name:  "nested",
			input: "log:\n  level: warn\n  pretty: false\n",
			want: map[string]any{
				"log-level":  "warn",
				"log-pretty": false,
			},
		},
		{
			name:  "underscores",
			input: "max_length: 128\n",
			want:  map[string]any{"max-length": "128"},
		},
		{
			name:  "empty",
			input: "",
			want:  map[string]any{"max-depth": nil},
		},
		{
			name:  "invalid",
			input: "log-level: [\n",
			want:  map[string]any{"log-level": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := load(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("load() error = %v", err)
			}

			if err := res.Validate(nil); err != nil {
				t.Errorf("Validate() error = %v", err)
			}

			for name, want := range tt.want {
				got, err := res.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
				if err != nil {
					t.Fatalf("Resolve(%q) error = %v", name, err)
				}

				if got != want {
					t.Errorf("Resolve(%q) = %#v, want %#v", name, got, want)
				}
			}
		})
	}
}

func TestLoad_Sequence(t *testing.T) {
	t.Parallel()

	res, err := load(strings.NewReader("source:\n  - a.txt\n  - b.txt\n"))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	got, err := res.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "source"}})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	seq, ok := got.([]any)
	if !ok || len(seq) != 2 || seq[0] != "a.txt" || seq[1] != "b.txt" {
		t.Errorf("Resolve() = %#v, want [a.txt b.txt]", got)
	}
}

func TestScalar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want any
	}{
		{int(3), "3"},
		{int64(-4), "-4"},
		{uint64(5), "5"},
		{1.5, "1.5"},
		{true, true},
		{"text", "text"},
		{nil, nil},
	}

	for _, tt := range tests {
		if got := scalar(tt.in); got != tt.want {
			t.Errorf("scalar(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
