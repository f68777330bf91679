package credential_test

import (
	"context"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/tests/testutil"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero width space", "  sk-abc\u200b123  ", "sk-abc123"},
		{"plain", "sk-abc123", "sk-abc123"},
		{"inner space kept", "sk abc", "sk abc"},
		{"tabs and newlines", "\tsk-abc\n", "sk-abc"},
		{"non-breaking space", "sk-\u00a0abc", "sk-abc"},
		{"control characters", "sk-\x00abc\x7f", "sk-abc"},
		{"only invisible", "\u200b\u200c", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, credential.Sanitize(tt.in))
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", credential.Mask(""))
	assert.Equal(t, "•••", credential.Mask("abc"))
	assert.Equal(t, "sk-p…yz", credential.Mask("sk-proj-abcdefxyz"))
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	s := credential.NewLocalStore(testutil.NewTestStore(t))

	_, err := s.Get(ctx)
	assert.ErrorIs(t, err, credential.ErrNotFound)

	require.NoError(t, s.Set(ctx, "sk-abc"))
	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc", got)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestKeyringStore(t *testing.T) {
	ctx := context.Background()
	s := credential.NewKeyringStoreWith(keyring.NewArrayKeyring(nil))

	_, err := s.Get(ctx)
	assert.ErrorIs(t, err, credential.ErrNotFound)

	require.NoError(t, s.Set(ctx, "sk-ring"))
	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-ring", got)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	s := credential.NewLocalStore(testutil.NewTestStore(t))

	configured, err := credential.Save(ctx, s, "  sk-trim  ")
	require.NoError(t, err)
	assert.True(t, configured)
	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-trim", got)

	configured, err = credential.Save(ctx, s, "   ")
	require.NoError(t, err)
	assert.False(t, configured)
	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestWithEnv(t *testing.T) {
	ctx := context.Background()
	base := credential.NewLocalStore(testutil.NewTestStore(t))
	require.NoError(t, base.Set(ctx, "sk-stored"))

	s := credential.WithEnv(base, "SOLO_TEST_KEY")

	t.Setenv("SOLO_TEST_KEY", "")
	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-stored", got)

	t.Setenv("SOLO_TEST_KEY", "sk-env")
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", got)

	env, ok := s.(*credential.EnvStore)
	require.True(t, ok)
	assert.Equal(t, "env:SOLO_TEST_KEY", env.Source(ctx))

	// Writes land in the wrapped store.
	require.NoError(t, s.Clear(ctx))
	_, err = base.Get(ctx)
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestWithEnv_EmptyNameReturnsStore(t *testing.T) {
	base := credential.NewLocalStore(testutil.NewTestStore(t))
	assert.Same(t, base, credential.WithEnv(base, "").(*credential.LocalStore))
}
