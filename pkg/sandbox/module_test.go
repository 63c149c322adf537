package sandbox

import "testing"

func TestCompileModuleIsDeterministic(t *testing.T) {
	a, err := compileModule(ModeArticle)
	if err != nil {
		t.Fatalf("compile a: %v", err)
	}
	b, err := compileModule(ModeArticle)
	if err != nil {
		t.Fatalf("compile b: %v", err)
	}
	if a.Key != b.Key {
		t.Fatalf("module keys differ across identical compiles: %s vs %s", a.Key, b.Key)
	}
}

func TestModuleKeyDistinguishesModes(t *testing.T) {
	article := ModuleKey("abc", ModeArticle)
	full := ModuleKey("abc", ModeFull)
	if article == full {
		t.Fatalf("expected distinct keys for distinct modes, got %s for both", article)
	}
}

func TestBuiltinPatternsDifferByMode(t *testing.T) {
	article := builtinPatterns(ModeArticle)
	full := builtinPatterns(ModeFull)
	metadata := builtinPatterns(ModeMetadata)

	if article.content == full.content {
		t.Fatalf("expected article and full modes to use different content patterns")
	}
	if article.content == metadata.content {
		t.Fatalf("expected article and metadata modes to use different content patterns")
	}
	if full.boiler != noMatchPattern || metadata.boiler != noMatchPattern {
		t.Fatalf("expected full and metadata modes to skip boilerplate stripping")
	}
}

func TestHashSourceStable(t *testing.T) {
	h1 := HashSource([]byte("same input"))
	h2 := HashSource([]byte("same input"))
	if h1 != h2 {
		t.Fatalf("expected stable hash, got %s and %s", h1, h2)
	}
	h3 := HashSource([]byte("different input"))
	if h1 == h3 {
		t.Fatalf("expected distinct hashes for distinct inputs")
	}
}
