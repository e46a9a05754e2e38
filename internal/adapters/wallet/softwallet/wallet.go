// Package softwallet is a mnemonic backed wallet that announces itself on the
// discovery bus as both an Ethereum and a Solana provider. It stands in for a
// browser extension when running from the command line.
package softwallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/keystamp/internal/adapters/wallet/discovery"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"
)

const (
	Name = "Keystamp Software Wallet"
	RDNS = "dev.keystamp.softwallet"

	ethereumSalt = "keystamp/softwallet/eip155"
	solanaSalt   = "keystamp/softwallet/solana"
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

type Wallet struct {
	Ethereum *EthereumProvider
	Solana   *SolanaProvider
}

// NewMnemonic returns a fresh 24 word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// New derives both chain keys from mnemonic. The same mnemonic always yields
// the same addresses.
func New(mnemonic string) (*Wallet, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, "")

	ethKey, err := deriveSecp256k1(seed)
	if err != nil {
		return nil, err
	}

	solSeed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed, []byte(solanaSalt), []byte("account/0")), solSeed); err != nil {
		return nil, fmt.Errorf("derive solana key: %w", err)
	}

	return &Wallet{
		Ethereum: newEthereumProvider(ethKey),
		Solana:   newSolanaProvider(ed25519.NewKeyFromSeed(solSeed)),
	}, nil
}

// Register makes the wallet answer discovery requests on bus.
func (w *Wallet) Register(bus *discovery.Bus) func() {
	ethInfo := domain.ProviderInfo{Name: Name, UUID: uuid.NewString(), RDNS: RDNS}
	solInfo := domain.ProviderInfo{Name: Name, UUID: uuid.NewString(), RDNS: RDNS}

	return bus.OnRequest(func(b *discovery.Bus) {
		b.Announce(discovery.Announcement{Info: ethInfo, Interface: domain.InterfaceEthereum, Ethereum: w.Ethereum})
		b.Announce(discovery.Announcement{Info: solInfo, Interface: domain.InterfaceSolana, Solana: w.Solana})
	})
}

func deriveSecp256k1(seed []byte) (*ecdsa.PrivateKey, error) {
	reader := hkdf.New(sha256.New, seed, []byte(ethereumSalt), []byte("account/0"))
	candidate := make([]byte, 32)
	// A derived scalar is out of range with negligible probability; keep
	// reading the stream until one fits.
	for attempt := 0; attempt < 8; attempt++ {
		if _, err := io.ReadFull(reader, candidate); err != nil {
			return nil, fmt.Errorf("derive ethereum key: %w", err)
		}
		if key, err := crypto.ToECDSA(candidate); err == nil {
			return key, nil
		}
	}
	return nil, errors.New("derive ethereum key: no valid scalar")
}

func solanaAddress(pub ed25519.PublicKey) string {
	return base58.Encode(pub)
}
