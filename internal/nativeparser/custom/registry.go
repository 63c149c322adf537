package custom

import "sync"

// Registry maps a domain to the Extractor that handles it, including every
// alias the extractor claims through SupportedDomains.
type Registry struct {
	mu      sync.RWMutex
	byHost  map[string]*Extractor
}

// NewRegistry builds a Registry preloaded with every extractor in this
// package's curated set.
func NewRegistry() *Registry {
	r := &Registry{byHost: make(map[string]*Extractor)}
	for _, e := range builtins {
		r.Register(e)
	}
	return r
}

// Register adds e under its Domain and every SupportedDomains alias.
func (r *Registry) Register(e *Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHost[e.Domain] = e
	for _, alias := range e.SupportedDomains {
		r.byHost[alias] = e
	}
}

// Lookup returns the extractor registered for host, or nil if none claims
// it. host should already be lowercased.
func (r *Registry) Lookup(host string) *Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byHost[host]
}

var builtins = []*Extractor{
	wikipediaExtractor,
	mediumExtractor,
	githubExtractor,
	substackExtractor,
	nytimesExtractor,
}
