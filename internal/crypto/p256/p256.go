// Package p256 holds the P-256 primitives shared by the key pair stores and
// the software authenticator.
package p256

import (
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/bnema/keystamp/internal/domain"
)

const (
	CompressedPublicKeySize = 33
	PrivateKeySize          = 32
)

var ErrInvalidPrivateKey = errors.New("invalid p-256 private key")

func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// CompressPublicKey encodes the point as 0x02/0x03 || X.
func CompressPublicKey(pub *ecdsa.PublicKey) []byte {
	return elliptic.MarshalCompressed(elliptic.P256(), pub.X, pub.Y)
}

func PublicKeyHex(pub *ecdsa.PublicKey) string {
	return hex.EncodeToString(CompressPublicKey(pub))
}

func ParsePublicKeyHex(raw string) (*ecdsa.PublicKey, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPublicKey, err)
	}

	var x, y *big.Int
	switch len(decoded) {
	case CompressedPublicKeySize:
		x, y = elliptic.UnmarshalCompressed(elliptic.P256(), decoded)
	case 65:
		key, err := ecdh.P256().NewPublicKey(decoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPublicKey, err)
		}
		point := key.Bytes()
		x, y = new(big.Int).SetBytes(point[1:33]), new(big.Int).SetBytes(point[33:])
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", domain.ErrInvalidPublicKey, len(decoded))
	}
	if x == nil {
		return nil, fmt.Errorf("%w: point is not on curve", domain.ErrInvalidPublicKey)
	}

	return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
}

func PrivateKeyHex(key *ecdsa.PrivateKey) string {
	return hex.EncodeToString(key.D.FillBytes(make([]byte, PrivateKeySize)))
}

func ParsePrivateKeyHex(raw string) (*ecdsa.PrivateKey, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil || len(decoded) != PrivateKeySize {
		return nil, ErrInvalidPrivateKey
	}

	ecdhKey, err := ecdh.P256().NewPrivateKey(decoded)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	point := ecdhKey.PublicKey().Bytes()

	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(point[1:33]),
			Y:     new(big.Int).SetBytes(point[33:]),
		},
		D: new(big.Int).SetBytes(decoded),
	}, nil
}

// ImportKeyPair validates external material and returns the key with its
// compressed public key.
func ImportKeyPair(external domain.ExternalKeyPair) (*ecdsa.PrivateKey, string, error) {
	key, err := ParsePrivateKeyHex(external.PrivateKey)
	if err != nil {
		return nil, "", err
	}
	publicKey := PublicKeyHex(&key.PublicKey)

	if want := strings.TrimSpace(external.PublicKey); want != "" {
		parsed, err := ParsePublicKeyHex(want)
		if err != nil {
			return nil, "", err
		}
		if PublicKeyHex(parsed) != publicKey {
			return nil, "", fmt.Errorf("%w: does not match private key", domain.ErrInvalidPublicKey)
		}
	}

	return key, publicKey, nil
}

// SignDER signs SHA-256(payload) and returns the ASN.1 DER signature.
func SignDER(signer crypto.Signer, payload []byte) ([]byte, error) {
	digest := sha256.Sum256(payload)
	return signer.Sign(rand.Reader, digest[:], crypto.SHA256)
}

func VerifyDER(pub *ecdsa.PublicKey, payload []byte, signature []byte) bool {
	digest := sha256.Sum256(payload)
	return ecdsa.VerifyASN1(pub, digest[:], signature)
}

// Stamp signs payload with signer and builds the X-Stamp header.
func Stamp(signer crypto.Signer, payload []byte) (domain.Stamp, error) {
	pub, ok := signer.Public().(*ecdsa.PublicKey)
	if !ok || pub.Curve != elliptic.P256() {
		return domain.Stamp{}, errors.New("signer is not a p-256 key")
	}

	signature, err := SignDER(signer, payload)
	if err != nil {
		return domain.Stamp{}, fmt.Errorf("sign payload: %w", err)
	}

	return domain.NewStamp(domain.StampEnvelope{
		PublicKey: PublicKeyHex(pub),
		Scheme:    domain.SchemeP256,
		Signature: hex.EncodeToString(signature),
	})
}
