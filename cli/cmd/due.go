package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bahostetterlewis/PyBakUP/cond"
	"github.com/bahostetterlewis/PyBakUP/item"
	"github.com/bahostetterlewis/PyBakUP/log"
)

// ItemsIdentifier is the kong variable identifier containing the path to
// the default item manifest.
const ItemsIdentifier = "items"

// Due reports which items of a manifest are due for backup.
type Due struct {
	File    []string  `default:"${items}" help:"Item manifest file(s), or '-' for stdin." placeholder:"PATH" short:"f"`
	Group   string    `                   help:"Only report items of this group."`
	Now     time.Time `                   help:"Decide as if it were this time (RFC 3339)."`
	Jobs    int       `default:"0"        help:"Number of items evaluated at once (0 for one per CPU)." short:"j"`
	OnlyDue bool      `                   help:"Omit items that are not due."`
}

// Run executes the due command.
func (d *Due) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	items, err := d.load(ctx)
	if err != nil {
		return err
	}

	opts := []item.Option{
		item.WithParseOptions(parseOptionsFrom(ctx)...),
		item.WithLogger(log.Default()),
	}

	if d.Jobs > 0 {
		opts = append(opts, item.WithLimit(d.Jobs))
	}

	if !d.Now.IsZero() {
		opts = append(opts, item.WithNow(func() time.Time { return d.Now }))
	}

	decisions, err := item.Decide(ctx, items, opts...)
	if err != nil {
		return err
	}

	d.report(outputFrom(ctx), decisions)

	return nil
}

// load reads every manifest named by --file, keeping the items of the
// selected group.
func (d *Due) load(ctx context.Context) ([]item.Item, error) {
	srcs := buildSourceFiles(d.File)
	if srcs == nil {
		return nil, ErrNoItems.With(slog.Any("file", d.File))
	}

	var items []item.Item

	for r := range srcs.Readers() {
		loaded, err := item.Load(ctx, r)
		if err != nil {
			return nil, ErrReadItems.Wrap(err)
		}

		for _, it := range loaded {
			if d.Group == "" || it.Group == d.Group {
				items = append(items, it)
			}
		}
	}

	log.DebugContext(ctx, "loaded items",
		slog.Int("count", len(items)),
		slog.String("group", d.Group))

	return items, nil
}

func (d *Due) report(w io.Writer, decisions []item.Decision) {
	st := newStyles(w)

	width := 0
	for _, dec := range decisions {
		width = max(width, len(dec.Item.Name))
	}

	for _, dec := range decisions {
		name := column(dec.Item.Name, width)

		switch {
		case dec.Err != nil:
			fmt.Fprintln(w, st.bad.Render("error"), name, st.dim.Render(describeError(dec.Err)))
		case dec.Due:
			fmt.Fprintln(w, st.due.Render("DUE  "), name, st.dim.Render(dec.Item.Condition))
		case !d.OnlyDue:
			fmt.Fprintln(w, st.skip.Render("skip "), name, st.dim.Render(dec.Item.Condition))
		}
	}
}

// describeError shortens the errors of a decision for a one-line report.
func describeError(err error) string {
	if cond.IsParseError(err) {
		return "invalid condition: " + err.Error()
	}

	return err.Error()
}
