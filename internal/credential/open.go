package credential

import (
	"fmt"
	"path/filepath"

	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/store"
)

// Open builds the credential store selected by cfg. settings may be nil
// unless the local backend is selected.
func Open(cfg *model.AppConfig, settings store.Store) (Store, error) {
	var base Store
	switch cfg.Storage.Backend {
	case model.BackendLocal:
		if settings == nil {
			return nil, fmt.Errorf("local credential backend requires a settings store")
		}
		base = NewLocalStore(settings)
	case model.BackendKeyring:
		ks, err := NewKeyringStore(filepath.Join(model.ConfigDir(), "credentials"))
		if err != nil {
			return nil, err
		}
		base = ks
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return WithEnv(base, cfg.Completion.APIKeyEnv), nil
}
