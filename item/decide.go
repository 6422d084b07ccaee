package item

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bahostetterlewis/PyBakUP/cond"
	"github.com/bahostetterlewis/PyBakUP/log"
)

// Decision is the outcome of evaluating the condition of one item.
type Decision struct {
	Err  error
	Item Item
	Due  bool
}

// DefaultLimit is the default number of items evaluated at once.
var DefaultLimit = runtime.GOMAXPROCS(0)

type decider struct {
	now    func() time.Time
	logger log.Logger
	parse  []cond.Option
	limit  int
}

// Option configures [Decide].
type Option func(*decider)

// WithLimit sets the number of items evaluated at once.
// A value of zero or less means no limit.
func WithLimit(n int) Option {
	return func(d *decider) { d.limit = n }
}

// WithNow sets the clock used to compute the age of each backup.
func WithNow(now func() time.Time) Option {
	return func(d *decider) { d.now = now }
}

// WithParseOptions sets the options used to parse each condition.
func WithParseOptions(opts ...cond.Option) Option {
	return func(d *decider) { d.parse = append(d.parse, opts...) }
}

// WithLogger sets the logger for per-item debugging.
func WithLogger(logger log.Logger) Option {
	return func(d *decider) { d.logger = logger }
}

// Decide evaluates the condition of every item and returns the decisions in
// the order of items.
//
// A condition that fails to parse or evaluate is recorded in the Err field
// of its decision and does not stop the others. The returned error is
// non-nil only if ctx is done before every item was decided.
func Decide(ctx context.Context, items []Item, opts ...Option) ([]Decision, error) {
	d := decider{now: time.Now, limit: DefaultLimit}
	for _, opt := range opts {
		opt(&d)
	}

	// One clock reading for the whole run.
	at := d.now()
	now := func() time.Time { return at }

	decisions := make([]Decision, len(items))

	g, ctx := errgroup.WithContext(ctx)
	if d.limit > 0 {
		g.SetLimit(d.limit)
	}

	for i, it := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			decisions[i] = d.decide(ctx, it, now)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return decisions, err
	}

	return decisions, nil
}

func (d decider) decide(ctx context.Context, it Item, now func() time.Time) Decision {
	ast, err := cond.ParseContext(ctx, it.Condition, d.parse...)
	if err != nil {
		d.logger.DebugContext(ctx, "invalid condition",
			slog.Any("item", it), slog.Any("error", err))

		return Decision{Item: it, Err: err}
	}

	due, err := ast.Decide(it.Context(now))
	if err != nil {
		d.logger.DebugContext(ctx, "evaluation failed",
			slog.Any("item", it), slog.Any("error", err))

		return Decision{Item: it, Err: err}
	}

	d.logger.DebugContext(ctx, "decided",
		slog.Any("item", it), slog.Bool("due", due))

	return Decision{Item: it, Due: due}
}
