package softwallet

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bnema/keystamp/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewDerivesStableAddresses(t *testing.T) {
	t.Parallel()

	first, err := New(testMnemonic)
	require.NoError(t, err)
	second, err := New("  " + testMnemonic + "\n")
	require.NoError(t, err)

	assert.Equal(t, first.Ethereum.Address(), second.Ethereum.Address())

	firstSol, err := first.Solana.Connect(context.Background())
	require.NoError(t, err)
	secondSol, err := second.Solana.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstSol, secondSol)
}

func TestNewRejectsInvalidMnemonic(t *testing.T) {
	t.Parallel()

	_, err := New("not a mnemonic")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestNewMnemonicIsAccepted(t *testing.T) {
	t.Parallel()

	mnemonic, err := NewMnemonic()
	require.NoError(t, err)

	_, err = New(mnemonic)
	require.NoError(t, err)
}

func TestEthereumProviderRequiresConnectionBeforeSigning(t *testing.T) {
	t.Parallel()

	wallet, err := New(testMnemonic)
	require.NoError(t, err)

	_, err = wallet.Ethereum.Request(context.Background(), "personal_sign", "0x68656c6c6f", wallet.Ethereum.Address())
	var rpcErr *ports.RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, ports.RPCCodeUnauthorized, rpcErr.Code)

	raw, err := wallet.Ethereum.Request(context.Background(), "eth_accounts")
	require.NoError(t, err)
	var accounts []string
	require.NoError(t, json.Unmarshal(raw, &accounts))
	assert.Empty(t, accounts)
}

func TestEthereumProviderRejectsUnknownMethods(t *testing.T) {
	t.Parallel()

	wallet, err := New(testMnemonic)
	require.NoError(t, err)

	_, err = wallet.Ethereum.Request(context.Background(), "eth_sendTransaction", map[string]string{"to": "0x0"})
	var rpcErr *ports.RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, ports.RPCCodeUnsupported, rpcErr.Code)
}
