package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialNotInitialized = errors.New("credential not initialized")
	ErrNoCredentialAvailable    = errors.New("no credential available")
	ErrUserCancelled            = errors.New("user cancelled")
	ErrCleanupFailed            = errors.New("key pair cleanup failed")
	ErrUnsupportedOperation     = errors.New("unsupported operation")
	ErrRemoteRejected           = errors.New("remote rejected request")
)

var (
	ErrKeyPairNotFound     = errors.New("key pair not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSecretNotFound      = errors.New("secret not found")
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrInvalidPublicKey    = errors.New("invalid public key")
)

// Error places a lower-level failure into one of the taxonomy kinds above.
// errors.Is matches both the kind and anything in the wrapped chain.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Wrap returns err classified as kind. An err that already carries a taxonomy
// kind keeps it, so user cancellation is never reclassified by an outer layer.
func Wrap(kind error, message string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) && existing.Kind != nil && existing.Kind != kind {
		return fmt.Errorf("%s: %w", message, err)
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsUserCancelled reports whether err is a dismissed prompt or ceremony that
// callers may silently retry.
func IsUserCancelled(err error) bool {
	return errors.Is(err, ErrUserCancelled)
}
