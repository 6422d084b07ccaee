package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bahostetterlewis/PyBakUP/cond"
)

// Parse prints the syntax tree of a condition.
type Parse struct {
	Format string `default:"native" enum:"native,json,yaml,tree" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                                   help:"Indent width for JSON and YAML output." short:"i"`

	Condition string `arg:"" default:"-" help:"Condition to parse, or '-' to read it from --source or stdin." name:"condition"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts := parseOptionsFrom(ctx)

	var ast *cond.AST

	if p.Condition == stdinSource {
		in := inputFrom(ctx)
		ast, err = cond.ParseReader(ctx, in, opts...)
		_ = in.Close()
	} else {
		ast, err = cond.ParseContext(ctx, strings.TrimSpace(p.Condition), opts...)
	}

	if err != nil {
		return cond.WrapError(err).
			With(slog.String("format", p.Format))
	}

	w := outputFrom(ctx)

	switch p.Format {
	case "json":
		return ast.FormatJSON(ctx, w, p.Indent)
	case "yaml":
		return ast.FormatYAML(ctx, w, p.Indent)
	case "tree":
		return ast.Print(w)
	default:
		return ast.Format(ctx, w)
	}
}
