package walletconnect

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remoteWallet answers session requests with real keys.
func remoteWallet(t *testing.T) (ports.RemoteSession, func(string, json.RawMessage) (json.RawMessage, error), string, ed25519.PublicKey) {
	t.Helper()

	ethKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	ethAddress := crypto.PubkeyToAddress(ethKey.PublicKey).Hex()

	solPub, solKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	solAddress := base58.Encode(solPub)

	session := ports.RemoteSession{
		Topic:    "remote-topic",
		PeerName: "Remote Wallet",
		Namespaces: map[domain.Namespace]ports.RemoteNamespace{
			domain.NamespaceEIP155: {
				Chains:   []string{"eip155:1"},
				Accounts: []string{"eip155:1:" + ethAddress},
			},
			domain.NamespaceSolana: {
				Chains:   []string{"solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"},
				Accounts: []string{"solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp:" + solAddress},
			},
		},
	}

	respond := func(method string, params json.RawMessage) (json.RawMessage, error) {
		switch method {
		case "personal_sign":
			var args []string
			if err := json.Unmarshal(params, &args); err != nil {
				return nil, err
			}
			message, err := hexutil.Decode(args[0])
			if err != nil {
				return nil, err
			}
			sig, err := crypto.Sign(accounts.TextHash(message), ethKey)
			if err != nil {
				return nil, err
			}
			sig[64] += 27
			return json.Marshal(hexutil.Encode(sig))

		case "solana_signMessage":
			var args map[string]string
			if err := json.Unmarshal(params, &args); err != nil {
				return nil, err
			}
			message, err := base58.Decode(args["message"])
			if err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"signature": base58.Encode(ed25519.Sign(solKey, message))})

		case "eth_sendTransaction":
			return json.Marshal("0xfeed")

		default:
			return nil, &ports.RPCError{Code: ports.RPCCodeUnsupported, Message: "unsupported"}
		}
	}

	return session, respond, hex.EncodeToString(crypto.CompressPubkey(&ethKey.PublicKey)), solPub
}

func connectedInterface(t *testing.T) (*Interface, []domain.WalletProvider, string, ed25519.PublicKey) {
	t.Helper()

	session, respond, ethPub, solPub := remoteWallet(t)

	sign := newFakeSign()
	sign.respond = respond
	iface := NewInterface(NewClient(sign, Config{}))

	providers, err := iface.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	require.NotEmpty(t, providers[0].PairingURI)

	sign.approvals <- approvalResult{session: session}
	_, err = iface.Connect(context.Background(), providers[0])
	require.NoError(t, err)

	providers, err = iface.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 2)

	return iface, providers, ethPub, solPub
}

func TestProvidersExposePairingURIUntilApproved(t *testing.T) {
	t.Parallel()

	sign := newFakeSign()
	iface := NewInterface(NewClient(sign, Config{}))

	first, err := iface.Providers(context.Background())
	require.NoError(t, err)
	second, err := iface.Providers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first[0].PairingURI, second[0].PairingURI)
	assert.Equal(t, domain.InterfaceWalletConnect, first[0].InterfaceType)
	assert.Empty(t, first[0].ConnectedAddresses)
	assert.Equal(t, 1, sign.proposalCount())
}

func TestProvidersListNegotiatedNamespaces(t *testing.T) {
	t.Parallel()

	_, providers, _, _ := connectedInterface(t)

	assert.Equal(t, domain.NamespaceEIP155, providers[0].ChainInfo.Namespace)
	assert.Equal(t, "1", providers[0].ChainInfo.ChainID)
	assert.Equal(t, domain.NamespaceSolana, providers[1].ChainInfo.Namespace)
	for _, p := range providers {
		assert.Len(t, p.ConnectedAddresses, 1)
		assert.Equal(t, "Remote Wallet", p.Info.Name)
	}
}

func TestEthereumPublicKeyRecoveryIsIdempotent(t *testing.T) {
	t.Parallel()

	iface, providers, ethPub, _ := connectedInterface(t)

	first, err := iface.PublicKey(context.Background(), providers[0])
	require.NoError(t, err)
	second, err := iface.PublicKey(context.Background(), providers[0])
	require.NoError(t, err)

	assert.Equal(t, ethPub, first)
	assert.Equal(t, first, second)
}

func TestEthereumSignReturnsNormalisedSignature(t *testing.T) {
	t.Parallel()

	iface, providers, _, _ := connectedInterface(t)

	signature, err := iface.Sign(context.Background(), []byte("payload"), providers[0], domain.IntentSignMessage)
	require.NoError(t, err)

	raw, err := hexutil.Decode(signature)
	require.NoError(t, err)
	require.Len(t, raw, 65)
	assert.LessOrEqual(t, raw[64], byte(1))

	hash, err := iface.Sign(context.Background(), []byte(`{"to":"0x0"}`), providers[0], domain.IntentSignAndSendTransaction)
	require.NoError(t, err)
	assert.Equal(t, "0xfeed", hash)
}

func TestSolanaSignAndPublicKey(t *testing.T) {
	t.Parallel()

	iface, providers, _, solPub := connectedInterface(t)

	publicKey, err := iface.PublicKey(context.Background(), providers[1])
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(solPub), publicKey)

	signature, err := iface.Sign(context.Background(), []byte("payload"), providers[1], domain.IntentSignMessage)
	require.NoError(t, err)
	raw, err := hex.DecodeString(signature)
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(solPub, []byte("payload"), raw))
}

func TestUnsupportedRemoteMethodIsClassified(t *testing.T) {
	t.Parallel()

	iface, providers, _, _ := connectedInterface(t)

	_, err := iface.Sign(context.Background(), []byte("tx"), providers[1], domain.IntentSignTransaction)
	require.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestSwitchChainDelegatesToClient(t *testing.T) {
	t.Parallel()

	iface, providers, _, _ := connectedInterface(t)

	err := iface.SwitchChain(context.Background(), providers[0], domain.SwitchTarget{
		Chain: domain.ChainInfo{Namespace: "cosmos", ChainID: "cosmoshub-4"},
	})
	require.ErrorIs(t, err, domain.ErrUnsupportedOperation)
	assert.Contains(t, err.Error(), "negotiated: eip155, solana")
}
