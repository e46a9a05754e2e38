package enclave

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/keystamp/internal/crypto/p256"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKDF = kdfParams{Time: 1, MemoryKB: 8, Threads: 1}

func newTestStore(t *testing.T, dir string, secret string) *Store {
	t.Helper()

	store, err := NewStore(dir, secret)
	require.NoError(t, err)
	store.kdf = testKDF
	return store
}

func TestStoreCreateStampAndReload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()
	store := newTestStore(t, dir, "device-secret")

	publicKey, err := store.Create(ctx, nil)
	require.NoError(t, err)

	reopened := newTestStore(t, dir, "device-secret")
	keys, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{publicKey}, keys)

	payload := []byte(`{"publicKey":"` + publicKey + `"}`)
	stamp, err := reopened.Stamp(ctx, payload, publicKey)
	require.NoError(t, err)

	envelope, err := domain.DecodeStamp(stamp)
	require.NoError(t, err)
	assert.Equal(t, publicKey, envelope.PublicKey)
	assert.Equal(t, domain.SchemeP256, envelope.Scheme)
}

func TestStoreFileIsSealed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()
	store := newTestStore(t, dir, "device-secret")

	privateKey, err := p256.GenerateKey()
	require.NoError(t, err)
	privateHex := p256.PrivateKeyHex(privateKey)

	_, err = store.Create(ctx, &domain.ExternalKeyPair{PrivateKey: privateHex})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, keysFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), privateHex)

	info, err := os.Stat(filepath.Join(dir, keysFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keysFileMode), info.Mode().Perm())
}

func TestStoreRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	_, err := newTestStore(t, dir, "device-secret").Create(ctx, nil)
	require.NoError(t, err)

	_, err = newTestStore(t, dir, "other-secret").List(ctx)
	require.ErrorIs(t, err, ErrAuthFailed)
}

func TestStoreDeleteForgetsKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, t.TempDir(), "device-secret")

	publicKey, err := store.Create(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, publicKey))
	require.NoError(t, store.Delete(ctx, publicKey))

	_, err = store.Stamp(ctx, []byte("payload"), publicKey)
	require.ErrorIs(t, err, domain.ErrKeyPairNotFound)
}

func TestNewStoreRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir(), "  ")
	require.Error(t, err)
}
