// Package cmd implements the subcommands of bucond: check, parse, eval, due
// and init.
//
// Commands receive everything beyond their own flags through the
// [context.Context] they run with: the kong context ([WithContext]), the
// files named with --source ([WithSourceFiles]), the options for parsing
// conditions ([WithParseOptions]) and the writer for results
// ([WithOutput]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
