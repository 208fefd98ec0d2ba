package brand

import (
	"strings"
	"sync"
)

// DefaultContext is the persona used when no guidelines have been ingested and
// the request carries no context of its own.
const DefaultContext = "You are a helpful, professional brand strategist. Visual style is clean and modern."

// Store holds the process-wide brand guideline text. Requests that carry their
// own context never touch it; the stored value only backs requests that omit
// one. Updates replace the whole value under a write lock so a concurrent
// reader can never observe a torn or interleaved context.
type Store struct {
	mu      sync.RWMutex
	context string
}

// NewStore returns a store seeded with DefaultContext.
func NewStore() *Store {
	return &Store{context: DefaultContext}
}

// Get returns the currently stored guideline text.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

// Set replaces the stored guideline text. Last writer wins.
func (s *Store) Set(text string) {
	s.mu.Lock()
	s.context = text
	s.mu.Unlock()
}

// Resolve prefers a non-empty per-request context over the stored default.
func (s *Store) Resolve(requestContext string) string {
	if strings.TrimSpace(requestContext) != "" {
		return requestContext
	}
	return s.Get()
}
