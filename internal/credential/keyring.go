package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "solo-ai"

// KeyringStore keeps the credential in the operating system keyring.
type KeyringStore struct {
	ring keyring.Keyring
	key  string
}

// openKeyring returns a configured keyring instance.
func openKeyring(fileDir string) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("solo-ai-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// NewKeyringStore opens the system keyring. fileDir is used by the
// encrypted-file fallback backend.
func NewKeyringStore(fileDir string) (*KeyringStore, error) {
	ring, err := openKeyring(fileDir)
	if err != nil {
		return nil, err
	}
	return NewKeyringStoreWith(ring), nil
}

// NewKeyringStoreWith wraps an already opened keyring.
func NewKeyringStoreWith(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring, key: KeyName}
}

// Get retrieves the credential from the keyring.
func (s *KeyringStore) Get(_ context.Context) (string, error) {
	item, err := s.ring.Get(s.key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", s.key, err)
	}
	if len(item.Data) == 0 {
		return "", ErrNotFound
	}
	return string(item.Data), nil
}

// Set stores the credential in the keyring.
func (s *KeyringStore) Set(_ context.Context, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   s.key,
		Data:  []byte(value),
		Label: "Solo AI API key",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", s.key, err)
	}
	return nil
}

// Clear removes the credential from the keyring.
func (s *KeyringStore) Clear(_ context.Context) error {
	err := s.ring.Remove(s.key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", s.key, err)
	}
	return nil
}
