package cond

import (
	"fmt"
	"sync"
	"testing"
)

// The cache is package state, so these tests do not run in parallel.

func TestParseCache_Hit(t *testing.T) {
	ClearCache()

	const src = "LastBU > 1 day && Modified"

	a, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	if n := cacheLen(); n != 1 {
		t.Errorf("cache holds %d entries, want 1", n)
	}

	if a == b {
		t.Error("cache handed out the same *AST twice")
	}

	if !a.Equal(b) || a.Source != b.Source {
		t.Error("cached parse differs from first parse")
	}
}

func TestParseCache_KeyedByOptions(t *testing.T) {
	ClearCache()

	const src = "((True))"

	if _, err := Parse(src); err != nil {
		t.Fatal(err)
	}

	// Same text, different limit: must not reuse the successful parse.
	if _, err := Parse(src, WithMaxDepth(1)); err == nil {
		t.Error("cached result ignored WithMaxDepth")
	}

	if n := cacheLen(); n != 2 {
		t.Errorf("cache holds %d entries, want 2", n)
	}
}

func TestParseCache_Errors(t *testing.T) {
	ClearCache()

	_, err1 := Parse("(True")
	_, err2 := Parse("(True")

	if err1 == nil || err1 != err2 {
		t.Errorf("errors %v and %v, want the same cached error", err1, err2)
	}
}

func TestParseCache_Bypass(t *testing.T) {
	ClearCache()

	if _, err := Parse("True", WithoutCache()); err != nil {
		t.Fatal(err)
	}

	if n := cacheLen(); n != 0 {
		t.Errorf("WithoutCache stored %d entries", n)
	}
}

func TestParseCache_Limit(t *testing.T) {
	ClearCache()

	saved := MaxCacheEntries
	MaxCacheEntries = 2

	defer func() { MaxCacheEntries = saved }()

	for i := range 5 {
		src := fmt.Sprintf("%d days > LastBU", i+1)

		ast, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}

		if ast.Source != src {
			t.Errorf("Source = %q, want %q", ast.Source, src)
		}
	}

	if n := cacheLen(); n != 2 {
		t.Errorf("cache holds %d entries, want 2", n)
	}
}

func TestParseCache_Concurrent(t *testing.T) {
	ClearCache()

	const src = "LastBU >= 1 month || LastBU > 2 hours && Modified"

	want, err := Parse(src, WithoutCache())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup

	results := make([]*AST, 32)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i], _ = Parse(src)
		}()
	}

	wg.Wait()

	for i, got := range results {
		if !want.Equal(got) {
			t.Errorf("result %d = %v, want %v", i, got, want)
		}
	}

	if n := cacheLen(); n != 1 {
		t.Errorf("cache holds %d entries, want 1", n)
	}
}
