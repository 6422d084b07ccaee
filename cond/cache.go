package cond

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

// MaxCacheEntries bounds the number of distinct conditions kept by the parse
// cache. Conditions parsed once the cache is full are parsed afresh on every
// call.
var MaxCacheEntries = 1024

var (
	// globalCache stores parse results keyed by (source_hash ^ opts_hash).
	globalCache sync.Map

	// cacheSize counts the entries of globalCache.
	cacheSize atomic.Int64
)

// entry is the parse result of one source under one set of options.
// Failed parses are cached as their error.
type entry struct {
	once   sync.Once
	source string
	root   Node
	err    error
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(opts options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	// Encode relevant options fields
	_ = enc.Encode(opts.maxDepth)
	_ = enc.Encode(opts.maxLength)

	return xxh3.Hash(buf.Bytes())
}

// parseStringCached parses a string with caching.
func parseStringCached(
	ctx context.Context,
	source string,
	opts ...Option,
) (*AST, error) {
	// Build a temporary AST to get effective options
	var tempAST AST

	applyDefaults(&tempAST)
	applyOptions(&tempAST, opts...)

	sourceHash := xxh3.HashString(source)
	optsHash := hashOptions(tempAST.opts)
	key := sourceHash ^ optsHash

	value, cacheHit := globalCache.Load(key)
	if !cacheHit {
		if cacheSize.Load() >= int64(MaxCacheEntries) {
			tempAST.logger.TraceContext(ctx, "cache full",
				slog.Int("max_entries", MaxCacheEntries))

			return parseString(ctx, source, opts...)
		}

		var loaded bool

		value, loaded = globalCache.LoadOrStore(key, &entry{source: source})
		if !loaded {
			cacheSize.Add(1)
		}
	}

	cached, ok := value.(*entry)
	if !ok || cached.source != source {
		// Hash collision with a different source.
		tempAST.logger.TraceContext(ctx, "cache bypass",
			slog.String("key", strconv.FormatUint(key, 16)))

		return parseString(ctx, source, opts...)
	}

	tempAST.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	cached.once.Do(func() {
		ast, err := parseString(ctx, source, opts...)
		if err != nil {
			cached.err = err

			return
		}

		cached.root = ast.Root
	})

	if cached.err != nil {
		return nil, cached.err
	}

	ast := &AST{Root: cached.root, Source: source}

	applyDefaults(ast)
	applyOptions(ast, opts...)

	return ast, nil
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
	cacheSize.Store(0)
}

// cacheLen returns the number of cached conditions.
func cacheLen() int { return int(cacheSize.Load()) }
