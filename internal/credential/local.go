package credential

import (
	"context"
	"errors"

	"github.com/solo-ai/solo/internal/store"
)

// LocalStore keeps the credential in the local settings database, the
// unsynced profile-scoped store a browser extension would use.
type LocalStore struct {
	settings store.Store
}

// NewLocalStore returns a Store backed by the settings database.
func NewLocalStore(s store.Store) *LocalStore {
	return &LocalStore{settings: s}
}

func (s *LocalStore) Get(ctx context.Context) (string, error) {
	st, err := s.settings.GetSetting(ctx, KeyName)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if st.Value == "" {
		return "", ErrNotFound
	}
	return st.Value, nil
}

func (s *LocalStore) Set(ctx context.Context, value string) error {
	return s.settings.SetSetting(ctx, KeyName, value)
}

func (s *LocalStore) Clear(ctx context.Context) error {
	return s.settings.DeleteSetting(ctx, KeyName)
}
