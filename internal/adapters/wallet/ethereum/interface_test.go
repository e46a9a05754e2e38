package ethereum_test

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/bnema/keystamp/internal/adapters/wallet/discovery"
	"github.com/bnema/keystamp/internal/adapters/wallet/ethereum"
	"github.com/bnema/keystamp/internal/adapters/wallet/softwallet"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type rejectingProvider struct{}

func (rejectingProvider) Request(context.Context, string, ...any) (json.RawMessage, error) {
	return nil, &ports.RPCError{Code: ports.RPCCodeUserRejected, Message: "User rejected the request."}
}

func setup(t *testing.T) (*ethereum.Interface, *softwallet.Wallet, domain.WalletProvider) {
	t.Helper()

	wallet, err := softwallet.New(testMnemonic)
	require.NoError(t, err)

	bus := discovery.NewBus()
	wallet.Register(bus)

	iface := ethereum.NewInterface(bus, 5*time.Millisecond)
	providers, err := iface.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)

	return iface, wallet, providers[0]
}

func connect(t *testing.T, iface *ethereum.Interface, provider domain.WalletProvider) domain.WalletProvider {
	t.Helper()

	address, err := iface.Connect(context.Background(), provider)
	require.NoError(t, err)
	provider.ConnectedAddresses = []string{address}
	return provider
}

func TestInterfaceDiscoversSoftwareWallet(t *testing.T) {
	t.Parallel()

	_, wallet, provider := setup(t)

	assert.Equal(t, domain.InterfaceEthereum, provider.InterfaceType)
	assert.Equal(t, domain.ChainInfo{Namespace: domain.NamespaceEIP155, ChainID: "1"}, provider.ChainInfo)
	assert.Equal(t, softwallet.Name, provider.Info.Name)
	assert.Empty(t, provider.ConnectedAddresses)
	assert.NotEmpty(t, wallet.Ethereum.Address())
}

func TestInterfaceSignMessageRecoversSigner(t *testing.T) {
	t.Parallel()

	iface, wallet, provider := setup(t)
	provider = connect(t, iface, provider)
	message := []byte(`{"organizationId":"org-1"}`)

	signature, err := iface.Sign(context.Background(), message, provider, domain.IntentSignMessage)
	require.NoError(t, err)

	raw, err := ethereum.DecodeSignature(signature)
	require.NoError(t, err)
	assert.Len(t, raw, 65)

	address, err := ethereum.RecoverAddress(message, signature)
	require.NoError(t, err)
	assert.Equal(t, wallet.Ethereum.Address(), address)
}

func TestInterfacePublicKeyRecoveryIsIdempotent(t *testing.T) {
	t.Parallel()

	iface, _, provider := setup(t)
	provider = connect(t, iface, provider)

	first, err := iface.PublicKey(context.Background(), provider)
	require.NoError(t, err)
	second, err := iface.PublicKey(context.Background(), provider)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	decoded, err := hex.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, decoded, 33)
}

func TestInterfaceSignTransactionIsUnsupported(t *testing.T) {
	t.Parallel()

	iface, _, provider := setup(t)
	provider = connect(t, iface, provider)

	_, err := iface.Sign(context.Background(), []byte(`{"to":"0x0"}`), provider, domain.IntentSignTransaction)
	require.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestInterfaceSignWithoutAddressHasNoCredential(t *testing.T) {
	t.Parallel()

	iface, _, provider := setup(t)

	_, err := iface.Sign(context.Background(), []byte("hello"), provider, domain.IntentSignMessage)
	require.ErrorIs(t, err, domain.ErrNoCredentialAvailable)
}

func TestInterfaceSwitchChainAddsUnknownChainWhenMetadataIsGiven(t *testing.T) {
	t.Parallel()

	iface, _, provider := setup(t)
	provider = connect(t, iface, provider)
	ctx := context.Background()
	base := domain.ChainInfo{Namespace: domain.NamespaceEIP155, ChainID: "8453"}

	err := iface.SwitchChain(ctx, provider, domain.SwitchTarget{Chain: base})
	require.Error(t, err)

	err = iface.SwitchChain(ctx, provider, domain.SwitchTarget{
		Chain: base,
		Metadata: &domain.ChainMetadata{
			Name:     "Base",
			RPCURLs:  []string{"https://mainnet.base.org"},
			Currency: domain.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		},
	})
	require.NoError(t, err)

	providers, err := iface.Providers(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "8453", providers[0].ChainInfo.ChainID)
}

func TestInterfaceSwitchChainRejectsOtherNamespace(t *testing.T) {
	t.Parallel()

	iface, _, provider := setup(t)

	err := iface.SwitchChain(context.Background(), provider, domain.SwitchTarget{Chain: domain.ChainInfo{Namespace: domain.NamespaceSolana}})
	require.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestInterfaceMapsUserRejectionToCancellation(t *testing.T) {
	t.Parallel()

	bus := discovery.NewBus()
	bus.OnRequest(func(b *discovery.Bus) {
		b.Announce(discovery.Announcement{
			Info:      domain.ProviderInfo{Name: "Rejecting", UUID: "rejecting"},
			Interface: domain.InterfaceEthereum,
			Ethereum:  rejectingProvider{},
		})
	})
	iface := ethereum.NewInterface(bus, 5*time.Millisecond)
	providers, err := iface.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)

	_, err = iface.Connect(context.Background(), providers[0])
	require.True(t, domain.IsUserCancelled(err))
}

func TestInterfaceUndiscoveredWalletHasNoCredential(t *testing.T) {
	t.Parallel()

	iface := ethereum.NewInterface(discovery.NewBus(), time.Millisecond)

	_, err := iface.Connect(context.Background(), domain.WalletProvider{Info: domain.ProviderInfo{UUID: "missing"}})
	require.ErrorIs(t, err, domain.ErrNoCredentialAvailable)
}

func TestChecksumAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ethereum.ChecksumAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.Equal(t, "not-an-address", ethereum.ChecksumAddress(" not-an-address "))
}
