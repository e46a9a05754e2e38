package keychain

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bnema/keystamp/internal/adapters/secrets/chain"
	filestore "github.com/bnema/keystamp/internal/adapters/secrets/file"
	"github.com/bnema/keystamp/internal/crypto/p256"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *filestore.Store) {
	t.Helper()

	secrets := filestore.NewStore(t.TempDir())
	return NewStore(secrets, "test/api-keys"), secrets
}

func TestStoreCreateThenStampVerifies(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	publicKey, err := store.Create(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, publicKey, 66)

	stamp, err := store.Stamp(ctx, []byte(`{"organizationId":"org-1"}`), publicKey)
	require.NoError(t, err)

	envelope, err := domain.DecodeStamp(stamp)
	require.NoError(t, err)
	assert.Equal(t, publicKey, envelope.PublicKey)
	assert.Equal(t, domain.SchemeP256, envelope.Scheme)
}

func TestStoreListOnlyReturnsNamespacedKeys(t *testing.T) {
	t.Parallel()

	store, secrets := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, nil)
	require.NoError(t, err)
	second, err := store.Create(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, secrets.Put(ctx, "unrelated/entry", "value"))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, keys)
}

func TestStoreStampMigratesLegacyEntry(t *testing.T) {
	t.Parallel()

	store, secrets := newTestStore(t)
	ctx := context.Background()

	privateKey, err := p256.GenerateKey()
	require.NoError(t, err)
	publicKey := p256.PublicKeyHex(&privateKey.PublicKey)
	require.NoError(t, secrets.Put(ctx, publicKey, p256.PrivateKeyHex(privateKey)))

	_, err = store.Stamp(ctx, []byte("payload"), publicKey)
	require.NoError(t, err)

	_, err = secrets.Get(ctx, publicKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	migrated, err := secrets.Get(ctx, "test/api-keys/"+publicKey)
	require.NoError(t, err)
	assert.Equal(t, p256.PrivateKeyHex(privateKey), migrated)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{publicKey}, keys)
}

func TestStoreCreateImportsExternalKeyPair(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	privateKey, err := p256.GenerateKey()
	require.NoError(t, err)
	want := p256.PublicKeyHex(&privateKey.PublicKey)

	got, err := store.Create(ctx, &domain.ExternalKeyPair{
		PublicKey:  want,
		PrivateKey: p256.PrivateKeyHex(privateKey),
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreStampUnknownKeyIsNotFound(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	_, err := store.Stamp(context.Background(), []byte("payload"), "02deadbeef")
	require.ErrorIs(t, err, domain.ErrKeyPairNotFound)
}

func TestStoreDeleteRemovesKey(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	publicKey, err := store.Create(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, publicKey))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = store.Stamp(ctx, []byte("payload"), publicKey)
	require.ErrorIs(t, err, domain.ErrKeyPairNotFound)
}

// newPassFirstStore builds the default pass-then-file chain around a pass that
// was never initialised, so every entry lands in the file fallback.
func newPassFirstStore(t *testing.T) (*Store, *filestore.Store) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake pass needs a POSIX shell")
	}

	bin := t.TempDir()
	script := `#!/bin/sh
case "$1" in
insert)
	cat >/dev/null
	echo "Error: password store is empty. Try \"pass init\"." >&2
	exit 1
	;;
*)
	echo "Error: entry is not in the password store." >&2
	exit 1
	;;
esac
`
	require.NoError(t, os.WriteFile(filepath.Join(bin, "pass"), []byte(script), 0o755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("PASSWORD_STORE_DIR", t.TempDir())

	root := t.TempDir()
	secrets, err := chain.NewPassFirstWithFileFallback(root)
	require.NoError(t, err)

	return NewStore(secrets, "test/api-keys"), filestore.NewStore(root)
}

func TestPassFirstStoreDeleteRemovesFallbackEntry(t *testing.T) {
	store, files := newPassFirstStore(t)
	ctx := context.Background()

	publicKey, err := store.Create(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, publicKey))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = files.Get(ctx, "test/api-keys/"+publicKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestPassFirstStoreMigrationRemovesFallbackLegacyEntry(t *testing.T) {
	store, files := newPassFirstStore(t)
	ctx := context.Background()

	privateKey, err := p256.GenerateKey()
	require.NoError(t, err)
	publicKey := p256.PublicKeyHex(&privateKey.PublicKey)
	require.NoError(t, files.Put(ctx, publicKey, p256.PrivateKeyHex(privateKey)))

	_, err = store.Stamp(ctx, []byte("payload"), publicKey)
	require.NoError(t, err)

	_, err = store.secrets.Get(ctx, publicKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{publicKey}, keys)
}
