package platform

import (
	"testing"

	"github.com/bnema/keystamp/internal/adapters/auth"
	"github.com/bnema/keystamp/internal/adapters/keystore/enclave"
	"github.com/bnema/keystamp/internal/adapters/keystore/keychain"
	"github.com/bnema/keystamp/internal/adapters/stamp/passkey"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "", want: Native},
		{in: "native", want: Native},
		{in: " WEB ", want: Web},
		{in: "desktop", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResolveNativeUsesSoftwareAuthenticatorWithoutHelper(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	caps, err := Resolve(Options{Kind: Native, SecretsDir: dir, KeysNamespace: "test", Origin: "https://localhost"})
	require.NoError(t, err)

	assert.Equal(t, Native, caps.Kind)
	assert.IsType(t, &keychain.Store{}, caps.Keys)
	assert.IsType(t, &passkey.Software{}, caps.Ceremony)
	assert.NotNil(t, caps.Secrets)
}

func TestResolveNativeUsesHelperWhenConfigured(t *testing.T) {
	t.Parallel()

	caps, err := Resolve(Options{Kind: Native, SecretsDir: t.TempDir(), PasskeyHelper: "ks-passkey"})
	require.NoError(t, err)
	assert.IsType(t, passkey.NativeCeremony{}, caps.Ceremony)
}

func TestResolveWebRequiresDeviceSecret(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Options{Kind: Web, KeysDir: t.TempDir(), SecretsDir: t.TempDir()})
	require.ErrorIs(t, err, domain.ErrCredentialNotInitialized)
}

func TestResolveWebUsesEnclave(t *testing.T) {
	t.Parallel()

	caps, err := Resolve(Options{Kind: Web, KeysDir: t.TempDir(), SecretsDir: t.TempDir(), DeviceSecret: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, Web, caps.Kind)
	assert.IsType(t, &enclave.Store{}, caps.Keys)
	assert.IsType(t, &passkey.Software{}, caps.Ceremony)
}

func TestResolveRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Options{Kind: "desktop"})
	require.Error(t, err)
}

func TestResolveBrowserCeremony(t *testing.T) {
	t.Parallel()

	caps, err := Resolve(Options{
		Kind:         Web,
		KeysDir:      t.TempDir(),
		SecretsDir:   t.TempDir(),
		DeviceSecret: "s3cret",
		Ceremony:     CeremonyBrowser,
		OpenBrowser:  func(string) error { return nil },
	})
	require.NoError(t, err)
	assert.IsType(t, &auth.BrowserCeremony{}, caps.Ceremony)
}

func TestResolveHelperCeremonyNeedsHelper(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Options{Kind: Native, SecretsDir: t.TempDir(), Ceremony: CeremonyHelper})
	require.ErrorIs(t, err, domain.ErrCredentialNotInitialized)

	_, err = Resolve(Options{Kind: Native, SecretsDir: t.TempDir(), Ceremony: "carrier-pigeon"})
	require.ErrorContains(t, err, "unknown ceremony")
}
