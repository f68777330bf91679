package credential

import (
	"context"
	"os"
)

// EnvStore overlays an environment variable on top of another Store. A
// non-empty variable wins on reads; writes always go to the wrapped store.
type EnvStore struct {
	Store
	name   string
	lookup func(string) (string, bool)
}

// WithEnv wraps s so that the environment variable name, when set, is
// returned by Get. An empty name returns s unchanged.
func WithEnv(s Store, name string) Store {
	if name == "" {
		return s
	}
	return &EnvStore{Store: s, name: name, lookup: os.LookupEnv}
}

func (e *EnvStore) Get(ctx context.Context) (string, error) {
	if v, ok := e.lookup(e.name); ok && v != "" {
		return v, nil
	}
	return e.Store.Get(ctx)
}

// Source names where the active credential comes from: the environment
// variable, the wrapped store, or "" when none is configured.
func (e *EnvStore) Source(ctx context.Context) string {
	if v, ok := e.lookup(e.name); ok && v != "" {
		return "env:" + e.name
	}
	if _, err := e.Store.Get(ctx); err == nil {
		return "store"
	}
	return ""
}
