package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/bahostetterlewis/PyBakUP/cli/cmd"
	"github.com/bahostetterlewis/PyBakUP/cond"
	"github.com/bahostetterlewis/PyBakUP/log"
	"github.com/bahostetterlewis/PyBakUP/pkg"
)

// CLI is the top-level command-line interface for bucond.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Source    []string `help:"Input source file(s) or '-' for stdin"                name:"source" short:"s" type:"existingfile"`
	MaxDepth  int      `default:"${maxDepth}"  help:"Maximum nesting depth of parentheses in a condition."`
	MaxLength int      `default:"${maxLength}" help:"Maximum length of a condition in bytes."`
	NoCache   bool     `                       help:"Parse every condition anew instead of caching it."`

	Init  cmd.Init  `cmd:"" help:"Initialize configuration file"`
	Check cmd.Check `cmd:"" help:"Check the syntax of conditions"`
	Parse cmd.Parse `cmd:"" help:"Print the syntax tree of a condition"`
	Eval  cmd.Eval  `cmd:"" help:"Evaluate a condition against flag values"`
	Due   cmd.Due   `cmd:"" help:"Report which items are due for backup" default:"1"`
}

// paths locates the files a [CLI] reads and writes by default.
type paths struct {
	config string
	cache  string
	items  string
}

func defaultPaths() paths {
	return paths{
		config: configPath(configFile),
		cache:  cacheDir(),
		items:  configPath(itemsFile),
	}
}

// vars returns the kong variables interpolated into the flags of cli.
func (cli *CLI) vars(p paths) kong.Vars {
	return kong.Vars{
		"version":            pkg.Version,
		"maxDepth":           strconv.Itoa(cond.DefaultMaxDepth),
		"maxLength":          strconv.Itoa(cond.DefaultMaxLength),
		cmd.ConfigIdentifier: p.config,
		cmd.CacheIdentifier:  p.cache,
		cmd.ItemsIdentifier:  p.items,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())
}

// groups returns the flag groups of cli that have flags.
func (cli *CLI) groups() []kong.Group {
	var groups []kong.Group

	for _, g := range []kong.Group{cli.Log.group(), cli.Pprof.group()} {
		if g.Key != "" {
			groups = append(groups, g)
		}
	}

	return groups
}

// parseOptions returns the options for parsing conditions selected by the
// global flags.
func (cli *CLI) parseOptions() []cond.Option {
	opts := []cond.Option{
		cond.WithMaxDepth(cli.MaxDepth),
		cond.WithMaxLength(cli.MaxLength),
		cond.WithLogger(log.Default()),
	}

	if cli.NoCache {
		opts = append(opts, cond.WithoutCache())
	}

	return opts
}

// newParser returns a kong parser for cli that reads defaults from the
// configuration file in p.
func newParser(cli *CLI, p paths, opts ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli,
		append([]kong.Option{
			kong.Name(pkg.Name),
			kong.Description(pkg.Description),
			kong.UsageOnError(),
			kong.ExplicitGroups(cli.groups()),
			kong.ConfigureHelp(
				kong.HelpOptions{
					Compact:             true,
					Summary:             true,
					Tree:                true,
					FlagsLast:           false,
					NoAppSummary:        false,
					NoExpandSubcommands: true,
				}),
			kong.Configuration(load, p.config),
			cli.vars(p),
		}, opts...)...,
	)
}

// Run executes the bucond CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure the logger before kong reports anything.
	cli.Log.scan(args)

	parser, err := newParser(&cli, defaultPaths(),
		kong.Exit(exit),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Apply the logger flags that have no encoding.TextUnmarshaler.
	cli.Log.start(ctx)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)
	ctx = cmd.WithParseOptions(ctx, cli.parseOptions()...)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
