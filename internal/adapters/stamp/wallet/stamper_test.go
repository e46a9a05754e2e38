package wallet_test

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/bnema/keystamp/internal/adapters/stamp/wallet"
	"github.com/bnema/keystamp/internal/adapters/wallet/discovery"
	"github.com/bnema/keystamp/internal/adapters/wallet/ethereum"
	"github.com/bnema/keystamp/internal/adapters/wallet/softwallet"
	"github.com/bnema/keystamp/internal/adapters/wallet/solana"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/metrics"
	"github.com/bnema/keystamp/internal/ports/mocks"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type fixture struct {
	eth     *ethereum.Interface
	sol     *solana.Interface
	stamper *wallet.Stamper
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	w, err := softwallet.New(testMnemonic)
	require.NoError(t, err)

	bus := discovery.NewBus()
	w.Register(bus)

	eth := ethereum.NewInterface(bus, 5*time.Millisecond)
	sol := solana.NewInterface(bus, 5*time.Millisecond)
	return fixture{eth: eth, sol: sol, stamper: wallet.NewStamper(metrics.New(), eth, sol)}
}

func connected(t *testing.T, iface interface {
	Providers(context.Context) ([]domain.WalletProvider, error)
	Connect(context.Context, domain.WalletProvider) (string, error)
}) domain.WalletProvider {
	t.Helper()

	providers, err := iface.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)

	address, err := iface.Connect(context.Background(), providers[0])
	require.NoError(t, err)
	provider := providers[0]
	provider.ConnectedAddresses = []string{address}
	return provider
}

func parseDER(t *testing.T, sigHex string) []byte {
	t.Helper()

	der, err := hex.DecodeString(sigHex)
	require.NoError(t, err)

	var r, s big.Int
	input := cryptobyte.String(der)
	var inner cryptobyte.String
	require.True(t, input.ReadASN1(&inner, cbasn1.SEQUENCE))
	require.True(t, inner.ReadASN1Integer(&r))
	require.True(t, inner.ReadASN1Integer(&s))
	require.True(t, inner.Empty())

	out := make([]byte, 64)
	r.FillBytes(out[:32])
	s.FillBytes(out[32:])
	return out
}

func TestEthereumStampMatchesWalletKey(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	provider := connected(t, f.eth)
	f.stamper.SetActiveProvider(provider)

	payload := []byte(`{"type":"ACTIVITY_TYPE_STAMP_LOGIN"}`)
	stamp, err := f.stamper.Stamp(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, domain.StampHeaderName, stamp.HeaderName)

	envelope, err := domain.DecodeStamp(stamp)
	require.NoError(t, err)
	assert.Equal(t, domain.SchemeSecp256k1EIP191, envelope.Scheme)

	publicKey, err := f.eth.PublicKey(context.Background(), provider)
	require.NoError(t, err)
	assert.Equal(t, publicKey, envelope.PublicKey)

	compressed, err := hex.DecodeString(envelope.PublicKey)
	require.NoError(t, err)
	assert.True(t, crypto.VerifySignature(compressed, accounts.TextHash(payload), parseDER(t, envelope.Signature)))
}

func TestSolanaStampIsRawEd25519(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	provider := connected(t, f.sol)
	f.stamper.SetActiveProvider(provider)

	payload := []byte("stamp me")
	stamp, err := f.stamper.Stamp(context.Background(), payload)
	require.NoError(t, err)

	envelope, err := domain.DecodeStamp(stamp)
	require.NoError(t, err)
	assert.Equal(t, domain.SchemeEd25519, envelope.Scheme)

	pub, err := hex.DecodeString(envelope.PublicKey)
	require.NoError(t, err)
	sig, err := hex.DecodeString(envelope.Signature)
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(pub, payload, sig))

	key, curve, err := f.stamper.PublicKey(context.Background(), provider)
	require.NoError(t, err)
	assert.Equal(t, envelope.PublicKey, key)
	assert.Equal(t, domain.CurveTypeEd25519, curve)
}

func TestStampWithoutActiveProvider(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.stamper.Stamp(context.Background(), []byte("x"))
	require.ErrorIs(t, err, domain.ErrNoCredentialAvailable)

	provider := connected(t, f.eth)
	f.stamper.SetActiveProvider(provider)
	f.stamper.ClearActiveProvider()
	_, err = f.stamper.Stamp(context.Background(), []byte("x"))
	require.ErrorIs(t, err, domain.ErrNoCredentialAvailable)
}

func TestStampPropagatesUserCancellation(t *testing.T) {
	t.Parallel()

	iface := mocks.NewMockWalletInterface(t)
	iface.EXPECT().Type().Return(domain.InterfaceEthereum)
	iface.EXPECT().Sign(mock.Anything, []byte("x"), mock.Anything, domain.IntentSignMessage).
		Return("", domain.Wrap(domain.ErrUserCancelled, "sign ethereum message", errors.New("rejected")))

	stamper := wallet.NewStamper(nil, iface)
	stamper.SetActiveProvider(domain.WalletProvider{
		InterfaceType:      domain.InterfaceEthereum,
		ChainInfo:          domain.ChainInfo{Namespace: domain.NamespaceEIP155},
		ConnectedAddresses: []string{"0xabc"},
	})

	_, err := stamper.Stamp(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.True(t, domain.IsUserCancelled(err))
}

func TestInterfaceResolution(t *testing.T) {
	t.Parallel()

	eth := mocks.NewMockWalletInterface(t)
	eth.EXPECT().Type().Return(domain.InterfaceEthereum)
	sol := mocks.NewMockWalletInterface(t)
	sol.EXPECT().Type().Return(domain.InterfaceSolana)
	remote := mocks.NewMockWalletInterface(t)
	remote.EXPECT().Type().Return(domain.InterfaceWalletConnect)

	stamper := wallet.NewStamper(nil, remote, sol, eth)

	def, err := stamper.DefaultInterface()
	require.NoError(t, err)
	assert.Same(t, eth, def)

	stamper.SetActiveProvider(domain.WalletProvider{InterfaceType: domain.InterfaceWalletConnect})
	def, err = stamper.DefaultInterface()
	require.NoError(t, err)
	assert.Same(t, remote, def)

	explicit, err := stamper.Interface(domain.InterfaceSolana)
	require.NoError(t, err)
	assert.Same(t, sol, explicit)

	assert.Len(t, stamper.Interfaces(), 3)
}

func TestInterfaceResolutionFallsBackInOrder(t *testing.T) {
	t.Parallel()

	remote := mocks.NewMockWalletInterface(t)
	remote.EXPECT().Type().Return(domain.InterfaceWalletConnect)
	sol := mocks.NewMockWalletInterface(t)
	sol.EXPECT().Type().Return(domain.InterfaceSolana)

	stamper := wallet.NewStamper(nil, remote, sol)
	def, err := stamper.DefaultInterface()
	require.NoError(t, err)
	assert.Same(t, sol, def)

	_, err = stamper.Interface(domain.InterfaceEthereum)
	require.ErrorIs(t, err, domain.ErrCredentialNotInitialized)

	_, err = wallet.NewStamper(nil).DefaultInterface()
	require.ErrorIs(t, err, domain.ErrCredentialNotInitialized)
}

func TestSignatureToDER(t *testing.T) {
	t.Parallel()

	raw := make([]byte, 65)
	raw[31] = 0x01
	raw[32] = 0x80
	raw[63] = 0x02
	raw[64] = 0x1b

	der, err := wallet.SignatureToDER("0x" + hex.EncodeToString(raw))
	require.NoError(t, err)
	// r = 1, s has its high bit set and gains a leading zero byte.
	assert.Equal(t, "3026020101022100"+hex.EncodeToString(raw[32:64]), der)

	_, err = wallet.SignatureToDER("0x1234")
	require.Error(t, err)
}
