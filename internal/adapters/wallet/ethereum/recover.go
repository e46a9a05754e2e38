package ethereum

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// PublicKeyMessage is signed to recover the wallet's public key.
const PublicKeyMessage = "GET_PUBLIC_KEY"

const signatureSize = 65

// DecodeSignature parses a personal_sign result into r||s||v with v in {0,1}.
func DecodeSignature(signature string) ([]byte, error) {
	raw, err := hexutil.Decode(signature)
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	if len(raw) != signatureSize {
		return nil, fmt.Errorf("decode signature: expected %d bytes, got %d", signatureSize, len(raw))
	}
	if raw[64] >= 27 {
		raw[64] -= 27
	}
	if raw[64] > 1 {
		return nil, fmt.Errorf("decode signature: invalid recovery id %d", raw[64])
	}

	return raw, nil
}

// RecoverPublicKey returns the compressed secp256k1 key, hex without 0x, that
// produced signature over the EIP-191 hash of message.
func RecoverPublicKey(message []byte, signature string) (string, error) {
	raw, err := DecodeSignature(signature)
	if err != nil {
		return "", err
	}

	pub, err := crypto.SigToPub(accounts.TextHash(message), raw)
	if err != nil {
		return "", fmt.Errorf("recover public key: %w", err)
	}

	return hex.EncodeToString(crypto.CompressPubkey(pub)), nil
}

// RecoverAddress is RecoverPublicKey reduced to the checksummed address.
func RecoverAddress(message []byte, signature string) (string, error) {
	raw, err := DecodeSignature(signature)
	if err != nil {
		return "", err
	}

	pub, err := crypto.SigToPub(accounts.TextHash(message), raw)
	if err != nil {
		return "", fmt.Errorf("recover address: %w", err)
	}

	return crypto.PubkeyToAddress(*pub).Hex(), nil
}
