package sandbox

import (
	"sync"
	"testing"
)

func TestModuleCacheReturnsSameModuleOnRepeatLookup(t *testing.T) {
	cache := NewModuleCache(DefaultMaxBytes)
	a, err := cache.GetOrCompile(ModeArticle)
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	b, err := cache.GetOrCompile(ModeArticle)
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}
	if a != b {
		t.Fatalf("expected cache hit to return the identical *Module, got distinct pointers")
	}
	if cache.Len() != 1 {
		t.Fatalf("expected exactly one cached module, got %d", cache.Len())
	}
}

func TestModuleCacheDedupsConcurrentCompiles(t *testing.T) {
	cache := NewModuleCache(DefaultMaxBytes)
	const n = 32
	results := make([]*Module, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			m, err := cache.GetOrCompile(ModeArticle)
			if err != nil {
				t.Errorf("compile %d: %v", i, err)
				return
			}
			results[i] = m
		}()
	}
	wg.Wait()

	first := results[0]
	for i, m := range results {
		if m != first {
			t.Fatalf("goroutine %d got a different module pointer than goroutine 0", i)
		}
	}
	if cache.Len() != 1 {
		t.Fatalf("concurrent compiles of the same key produced %d cache entries, want 1", cache.Len())
	}
}

func TestModuleCacheInvalidate(t *testing.T) {
	cache := NewModuleCache(DefaultMaxBytes)
	if _, err := cache.GetOrCompile(ModeArticle); err != nil {
		t.Fatalf("compile: %v", err)
	}
	patterns := builtinPatterns(ModeArticle)
	cache.Invalidate(patterns.sourceHash, ModeArticle)
	if cache.Len() != 0 {
		t.Fatalf("expected cache empty after invalidate, got %d entries", cache.Len())
	}
}

func TestModuleCacheEvictsUnderByteBudget(t *testing.T) {
	patterns := builtinPatterns(ModeArticle)
	cache := NewModuleCache(patterns.sizeHint + patterns.sizeHint/2)

	if _, err := cache.GetOrCompile(ModeArticle); err != nil {
		t.Fatalf("compile article: %v", err)
	}
	if _, err := cache.GetOrCompile(ModeFull); err != nil {
		t.Fatalf("compile full: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected LRU eviction to cap the cache at 1 entry under a tight byte budget, got %d", cache.Len())
	}
}
