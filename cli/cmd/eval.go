package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bahostetterlewis/PyBakUP/cond"
	"github.com/bahostetterlewis/PyBakUP/log"
)

// Eval evaluates a condition against signals given on the command line.
type Eval struct {
	LastBackup string `help:"Time since the last backup, as a Go duration (36h) or a time span (3 days)." name:"last-backup" placeholder:"AGE" short:"l"`
	Modified   bool   `help:"The item was modified since its last backup."                                                    short:"m"`

	Condition string `arg:"" help:"Condition to evaluate." name:"condition"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := flagContext{modified: e.Modified}

	if e.LastBackup != "" {
		age, err := parseAge(ctx, e.LastBackup)
		if err != nil {
			return ErrLastBackup.
				With(slog.String("value", e.LastBackup)).
				Wrap(err)
		}

		env.age = &age
	}

	ast, err := cond.ParseContext(ctx, e.Condition, parseOptionsFrom(ctx)...)
	if err != nil {
		return cond.WrapError(err).With(slog.String("command", "eval"))
	}

	due, err := ast.Decide(env)
	if err != nil {
		return cond.WrapError(err).With(
			slog.String("command", "eval"),
			slog.String("condition", ast.Source),
		)
	}

	log.DebugContext(ctx, "evaluated",
		slog.String("condition", ast.Source),
		slog.Bool("due", due))

	_, err = fmt.Fprintln(outputFrom(ctx), cond.Boolean(due))

	return err
}

// parseAge reads an age in seconds written either as a Go duration or as a
// condition that yields a Duration, such as "7 days + 2 days".
func parseAge(ctx context.Context, s string) (int64, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative age %s", d)
		}

		return int64(d / time.Second), nil
	}

	ast, err := cond.ParseContext(ctx, s, parseOptionsFrom(ctx)...)
	if err != nil {
		return 0, err
	}

	// A span expression has no keywords, so it needs no Context.
	v, err := ast.Eval(nil)
	if err != nil {
		return 0, err
	}

	secs, ok := v.Seconds()
	if !ok {
		return 0, fmt.Errorf("%q yields %s, want Duration", s, v.Type())
	}

	return secs, nil
}

// flagContext answers the keywords of a condition from command line flags.
type flagContext struct {
	age      *int64
	modified bool
}

func (c flagContext) LastBackupAge() (int64, error) {
	if c.age == nil {
		return 0, ErrNoLastBackup
	}

	return *c.age, nil
}

func (c flagContext) WasModifiedSinceLastBackup() (bool, error) {
	return c.modified, nil
}
