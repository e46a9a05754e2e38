package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

// memoryKeys is a KeyPairStore that can be told to fail.
type memoryKeys struct {
	mu         sync.Mutex
	next       int
	keys       map[string]bool
	failCreate error
	failDelete error
}

func newMemoryKeys() *memoryKeys {
	return &memoryKeys{keys: map[string]bool{}}
}

func (m *memoryKeys) List(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.keys))
	for k := range m.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memoryKeys) Create(_ context.Context, external *domain.ExternalKeyPair) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate != nil {
		return "", m.failCreate
	}
	m.next++
	publicKey := fmt.Sprintf("02%064d", m.next)
	if external != nil {
		publicKey = external.PublicKey
	}
	m.keys[publicKey] = true
	return publicKey, nil
}

func (m *memoryKeys) Delete(_ context.Context, publicKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failDelete != nil {
		return m.failDelete
	}
	if !m.keys[publicKey] {
		return domain.ErrKeyPairNotFound
	}
	delete(m.keys, publicKey)
	return nil
}

func (m *memoryKeys) Stamp(_ context.Context, _ []byte, publicKey string) (domain.Stamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.keys[publicKey] {
		return domain.Stamp{}, domain.ErrKeyPairNotFound
	}
	return domain.Stamp{HeaderName: domain.StampHeaderName, HeaderValue: "stamp-" + publicKey}, nil
}

// memorySessions treats a token as "token:<public key>".
type memorySessions struct {
	mu        sync.Mutex
	sessions  map[string]domain.Session
	order     []string
	active    string
	failStore error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]domain.Session{}}
}

func (m *memorySessions) Store(_ context.Context, token string, sessionKey string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failStore != nil {
		return domain.Session{}, m.failStore
	}
	publicKey, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return domain.Session{}, domain.ErrInvalidSessionToken
	}
	session := domain.Session{PublicKey: publicKey, Token: token, ExpirationSeconds: domain.DefaultExpirationSeconds}
	if _, exists := m.sessions[sessionKey]; !exists {
		m.order = append(m.order, sessionKey)
	}
	m.sessions[sessionKey] = session
	m.active = sessionKey
	return session, nil
}

func (m *memorySessions) Get(_ context.Context, sessionKey string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionKey]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}

func (m *memorySessions) ActiveKey(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, nil
}

func (m *memorySessions) Active(ctx context.Context) (domain.Session, error) {
	key, _ := m.ActiveKey(ctx)
	return m.Get(ctx, key)
}

func (m *memorySessions) SetActive(_ context.Context, sessionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionKey]; !ok {
		return domain.ErrSessionNotFound
	}
	m.active = sessionKey
	return nil
}

func (m *memorySessions) ListKeys(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...), nil
}

func (m *memorySessions) Clear(_ context.Context, sessionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionKey)
	for i, key := range m.order {
		if key == sessionKey {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.active == sessionKey {
		m.active = ""
	}
	return nil
}

func (m *memorySessions) ClearAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = map[string]domain.Session{}
	m.order = nil
	m.active = ""
	return nil
}

// memoryAPI issues "token:<public key>" for every stamped login.
type memoryAPI struct {
	failLogin error
	returnKey string
	logins    []domain.LoginRequest
}

func (a *memoryAPI) StampLogin(ctx context.Context, req domain.LoginRequest, stamper ports.Stamper) (string, error) {
	if _, err := stamper.Stamp(ctx, []byte(req.PublicKey)); err != nil {
		return "", err
	}
	a.logins = append(a.logins, req)
	if a.failLogin != nil {
		return "", a.failLogin
	}
	if a.returnKey != "" {
		return "token:" + a.returnKey, nil
	}
	return "token:" + req.PublicKey, nil
}

func (a *memoryAPI) SignUp(context.Context, domain.SignUpRequest) (domain.SignUpResult, error) {
	return domain.SignUpResult{}, errors.New("sign up is not supported")
}

// stubStamper stamps with a fixed result.
type stubStamper struct {
	err error
}

func (s stubStamper) Stamp(context.Context, []byte) (domain.Stamp, error) {
	if s.err != nil {
		return domain.Stamp{}, s.err
	}
	return domain.Stamp{HeaderName: domain.StampHeaderName, HeaderValue: "stub"}, nil
}

func (s stubStamper) CreateCredential(context.Context, string, string) (domain.CreatedCredential, error) {
	return domain.CreatedCredential{}, errors.New("not supported")
}

// signUpAPI creates "sub-org" for every sign up.
type signUpAPI struct {
	*memoryAPI
}

func (signUpAPI) SignUp(context.Context, domain.SignUpRequest) (domain.SignUpResult, error) {
	return domain.SignUpResult{OrganizationID: "sub-org"}, nil
}

type registeringStamper struct {
	stubStamper
}

func (registeringStamper) CreateCredential(_ context.Context, name string, _ string) (domain.CreatedCredential, error) {
	return domain.CreatedCredential{
		EncodedChallenge: "challenge",
		Attestation:      domain.Attestation{CredentialID: name},
	}, nil
}

func fixedTime() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}
