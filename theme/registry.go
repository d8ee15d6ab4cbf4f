package theme

import (
	"log"
	"sync"

	"github.com/lixenwraith/termfolio/store"
)

// Registry owns the active theme token
// Exactly one token is active at any time; the active key is always valid
type Registry struct {
	mu        sync.RWMutex
	store     store.Store
	fallback  Key
	active    Token
	listeners map[int]func(Token)
	nextID    int
}

// NewRegistry creates a registry persisting to s
// fallback is applied when nothing valid is persisted; an invalid fallback means DefaultKey
func NewRegistry(s store.Store, fallback Key) *Registry {
	if !fallback.Valid() {
		fallback = DefaultKey
	}
	return &Registry{
		store:     s,
		fallback:  fallback,
		active:    TokenFor(fallback),
		listeners: make(map[int]func(Token)),
	}
}

// Active returns the current token
func (r *Registry) Active() Token {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Apply activates key, persists it and notifies subscribers
// Unknown keys fall back to the registry fallback without error
func (r *Registry) Apply(key string) Token {
	k, ok := Parse(key)
	if !ok {
		k = r.fallback
	}

	tok := TokenFor(k)
	r.mu.Lock()
	r.active = tok
	listeners := make([]func(Token), 0, len(r.listeners))
	for _, fn := range r.listeners {
		listeners = append(listeners, fn)
	}
	r.mu.Unlock()

	if err := r.store.Set(store.KeyTheme, string(k)); err != nil {
		log.Printf("theme: persisting %q failed: %v", k, err)
	}

	for _, fn := range listeners {
		fn(tok)
	}
	return tok
}

// Restore applies the persisted key, or the fallback when it is missing or invalid
func (r *Registry) Restore() Token {
	saved, ok := r.store.Get(store.KeyTheme)
	if !ok {
		return r.Apply(string(r.fallback))
	}
	return r.Apply(saved)
}

// Subscribe registers fn for palette changes and returns its cancel function
// The cancel function is safe to call more than once
func (r *Registry) Subscribe(fn func(Token)) (cancel func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.listeners, id)
			r.mu.Unlock()
		})
	}
}
