package domain

// ExternalKeyPair is caller supplied P-256 material imported into a
// KeyPairStore instead of generating a fresh key. PublicKey is optional and,
// when set, must match the private key.
type ExternalKeyPair struct {
	PublicKey  string
	PrivateKey string
}

// ShortKey trims a hex public key for log lines and listings.
func ShortKey(publicKey string) string {
	if len(publicKey) <= 14 {
		return publicKey
	}
	return publicKey[:8] + "…" + publicKey[len(publicKey)-6:]
}
