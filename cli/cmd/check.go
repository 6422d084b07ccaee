package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bahostetterlewis/PyBakUP/cond"
	"github.com/bahostetterlewis/PyBakUP/log"
)

// Check reports whether conditions are well-formed.
type Check struct {
	Strict bool `help:"Also reject conditions that are ill-typed or do not yield a Boolean."`

	Conditions []string `arg:"" help:"Conditions to check. Read one per line from --source or stdin if omitted." name:"condition" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	conditions := c.Conditions
	if len(conditions) == 0 {
		in := inputFrom(ctx)
		conditions, err = readConditions(in)
		_ = in.Close()

		if err != nil {
			return cond.ErrReadInput.Wrap(err)
		}
	}

	w := outputFrom(ctx)
	st := newStyles(w)
	opts := parseOptionsFrom(ctx)

	var invalid int

	for _, src := range conditions {
		err := c.check(ctx, src, opts)
		if err == nil {
			fmt.Fprintln(w, st.ok.Render("ok     "), src)

			continue
		}

		invalid++

		fmt.Fprintln(w, st.bad.Render("invalid"), src)

		if pos, ok := errorOffset(err); ok {
			// Align with src, which follows the 8-cell status column.
			fmt.Fprintln(w, "        "+st.caretLine(src, pos, err.Error()))
		} else {
			fmt.Fprintln(w, "        "+st.dim.Render(err.Error()))
		}

		log.DebugContext(ctx, "invalid condition",
			slog.String("condition", src),
			slog.Any("error", err))
	}

	if invalid > 0 {
		return ErrInvalidCondition.With(
			slog.Int("invalid", invalid),
			slog.Int("checked", len(conditions)),
		)
	}

	return nil
}

func (c *Check) check(ctx context.Context, src string, opts []cond.Option) error {
	ast, err := cond.ParseContext(ctx, src, opts...)
	if err != nil {
		return err
	}

	if c.Strict {
		return ast.Check()
	}

	return nil
}

// errorOffset returns the offset in the condition an error points at.
func errorOffset(err error) (int, bool) {
	var lexErr *cond.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}

	var synErr *cond.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Pos, true
	}

	return 0, false
}

// readConditions reads one condition per line, skipping blank lines and
// lines starting with '#'.
func readConditions(r io.Reader) ([]string, error) {
	var conditions []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		conditions = append(conditions, line)
	}

	return conditions, scanner.Err()
}
