package pass

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "-m", "-f", "keystamp/api-keys/02abcdef"}, args)
			assert.Equal(t, "private-hex\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "keystamp/api-keys/02abcdef", "private-hex")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "keystamp/api-keys/02abcdef"}, args)
			assert.Empty(t, input)
			return "private-hex\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "keystamp/api-keys/02abcdef")
	require.NoError(t, err)
	assert.Equal(t, "private-hex", value)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "keystamp/api-keys/02abcdef"}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), "keystamp/api-keys/02abcdef")
	require.NoError(t, err)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), "keystamp/api-keys/02abcdef")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "keystamp/api-keys/02abcdef")
	assert.ErrorContains(t, err, "decryption failed")
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: keystamp/api-keys/02abcdef is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "keystamp/api-keys/02abcdef")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreListWalksPasswordStoreDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{
		"keystamp/api-keys/02bb.gpg",
		"keystamp/api-keys/02aa.gpg",
		"other/entry.gpg",
		".git/config",
	} {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	store := &Store{storeDir: func() (string, error) { return root, nil }}

	keys, err := store.List(context.Background(), "keystamp/")
	require.NoError(t, err)
	assert.Equal(t, []string{"keystamp/api-keys/02aa", "keystamp/api-keys/02bb"}, keys)
}
