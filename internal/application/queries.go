package application

import "github.com/bnema/keystamp/internal/domain"

type SessionView struct {
	Key     string
	Session domain.Session
	Active  bool
}

// KeyPairView reports a stored key pair and the sessions bound to it.
type KeyPairView struct {
	PublicKey   string
	SessionKeys []string
}

func (v KeyPairView) Bound() bool {
	return len(v.SessionKeys) > 0
}
