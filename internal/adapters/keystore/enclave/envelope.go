package enclave

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	envelopeVersion = 1
	envelopeKDF     = "argon2id"
	saltSize        = 16
	filePrefix      = "KSENC1\n"
)

var (
	ErrAuthFailed      = errors.New("enclave authentication failed")
	ErrInvalidEnvelope = errors.New("enclave envelope is invalid")
)

type kdfParams struct {
	Time     uint32
	MemoryKB uint32
	Threads  uint8
}

var defaultKDF = kdfParams{Time: 2, MemoryKB: 64 * 1024, Threads: 1}

type envelope struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

func seal(secret string, params kdfParams, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate envelope salt: %w", err)
	}

	key := deriveKey(secret, salt, params)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init envelope cipher: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate envelope nonce: %w", err)
	}

	raw, err := json.Marshal(envelope{
		Version:     envelopeVersion,
		KDF:         envelopeKDF,
		KDFTime:     params.Time,
		KDFMemoryKB: params.MemoryKB,
		KDFThreads:  params.Threads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, plaintext, []byte(filePrefix)),
	})
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}

	return append([]byte(filePrefix), raw...), nil
}

func open(secret string, data []byte) ([]byte, error) {
	if !strings.HasPrefix(string(data), filePrefix) {
		return nil, ErrInvalidEnvelope
	}

	var env envelope
	if err := json.Unmarshal(data[len(filePrefix):], &env); err != nil {
		return nil, ErrInvalidEnvelope
	}
	if env.Version != envelopeVersion || env.KDF != envelopeKDF {
		return nil, ErrInvalidEnvelope
	}

	key := deriveKey(secret, env.Salt, kdfParams{Time: env.KDFTime, MemoryKB: env.KDFMemoryKB, Threads: env.KDFThreads})
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init envelope cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, []byte(filePrefix))
	if err != nil {
		return nil, ErrAuthFailed
	}

	return plaintext, nil
}

func deriveKey(secret string, salt []byte, params kdfParams) []byte {
	return argon2.IDKey([]byte(secret), salt, params.Time, params.MemoryKB, params.Threads, chacha20poly1305.KeySize)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
