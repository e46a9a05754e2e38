package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/metrics"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "application")

var ErrKeyPairInUse = errors.New("key pair is bound to a session")

const (
	flowKeyPair       = "keypair"
	flowPasskey       = "passkey"
	flowWallet        = "wallet"
	flowRefresh       = "refresh"
	flowSignUpPasskey = "signup_passkey"
	flowSignUpWallet  = "signup_wallet"
)

type SessionConfig struct {
	OrganizationID    string
	DefaultSessionKey string
	ExpirationSeconds int64
}

// SessionDependencies are the stores and credential sources a SessionService
// orchestrates. Stampers left nil disable their flows.
type SessionDependencies struct {
	Keys       ports.KeyPairStore
	Sessions   ports.SessionStore
	API        ports.AuthAPI
	KeyStamper ports.KeyStamper
	Passkey    ports.PasskeyStamper
	Wallet     ports.WalletStamper
	Clock      ports.Clock
	Metrics    *metrics.Recorder
}

// SessionService runs the login and sign-up flows. Every flow binds the
// issued session to an ephemeral key pair and deletes each key pair it
// created that did not end up bound to the stored session.
type SessionService struct {
	keys       ports.KeyPairStore
	sessions   ports.SessionStore
	api        ports.AuthAPI
	keyStamper ports.KeyStamper
	passkey    ports.PasskeyStamper
	wallet     ports.WalletStamper
	clock      ports.Clock
	metrics    *metrics.Recorder
	cfg        SessionConfig
}

func NewSessionService(deps SessionDependencies, cfg SessionConfig) *SessionService {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if strings.TrimSpace(cfg.DefaultSessionKey) == "" {
		cfg.DefaultSessionKey = domain.DefaultSessionKey
	}
	if cfg.ExpirationSeconds <= 0 {
		cfg.ExpirationSeconds = domain.DefaultExpirationSeconds
	}

	return &SessionService{
		keys:       deps.Keys,
		sessions:   deps.Sessions,
		api:        deps.API,
		keyStamper: deps.KeyStamper,
		passkey:    deps.Passkey,
		wallet:     deps.Wallet,
		clock:      deps.Clock,
		metrics:    deps.Metrics,
		cfg:        cfg,
	}
}

// LoginWithKeyPair stamps the login with an API key pair already known to the
// remote side.
func (s *SessionService) LoginWithKeyPair(ctx context.Context, cmd LoginWithKeyPairCommand) (session domain.Session, err error) {
	if s.keyStamper == nil {
		return domain.Session{}, notInitialized("key pair login", "key stamper")
	}

	scope := s.newScope()
	defer s.finish(ctx, scope, &err)

	if cmd.StampingPublicKey != "" {
		s.keyStamper.SetTemporaryPublicKey(cmd.StampingPublicKey)
		defer s.keyStamper.ClearTemporaryPublicKey()
	}

	return s.exchange(ctx, scope, flowKeyPair, cmd.LoginCommand, s.keyStamper)
}

func (s *SessionService) LoginWithPasskey(ctx context.Context, cmd LoginCommand) (session domain.Session, err error) {
	if s.passkey == nil {
		return domain.Session{}, notInitialized("passkey login", "passkey stamper")
	}

	scope := s.newScope()
	defer s.finish(ctx, scope, &err)

	return s.exchange(ctx, scope, flowPasskey, cmd, s.passkey)
}

func (s *SessionService) LoginWithWallet(ctx context.Context, cmd LoginWithWalletCommand) (session domain.Session, err error) {
	if s.wallet == nil {
		return domain.Session{}, notInitialized("wallet login", "wallet stamper")
	}

	scope := s.newScope()
	defer s.finish(ctx, scope, &err)

	if hasProvider(cmd.Provider) {
		s.wallet.SetActiveProvider(cmd.Provider)
	}

	return s.exchange(ctx, scope, flowWallet, cmd.LoginCommand, s.wallet)
}

// SignUpWithPasskey registers a passkey, creates a sub-organization owning it
// and logs in without a second passkey prompt.
func (s *SessionService) SignUpWithPasskey(ctx context.Context, cmd SignUpWithPasskeyCommand) (session domain.Session, err error) {
	if s.passkey == nil {
		return domain.Session{}, notInitialized("passkey sign up", "passkey stamper")
	}

	scope := s.newScope()
	defer s.finish(ctx, scope, &err)

	name := strings.TrimSpace(cmd.PasskeyName)
	if name == "" {
		name = fmt.Sprintf("keystamp-passkey-%d", s.clock.Now().Unix())
	}

	created, err := s.passkey.CreateCredential(ctx, name, cmd.Challenge)
	if err != nil {
		return domain.Session{}, fmt.Errorf("create passkey: %w", err)
	}

	req := signUpRequest(cmd.SignUpCommand)
	req.Authenticators = []domain.Authenticator{{
		Name:        name,
		Challenge:   created.EncodedChallenge,
		Attestation: created.Attestation,
	}}

	return s.signUp(ctx, scope, flowSignUpPasskey, cmd.SignUpCommand, req)
}

// SignUpWithWallet creates a sub-organization whose root user holds the
// wallet's public key as an API key.
func (s *SessionService) SignUpWithWallet(ctx context.Context, cmd SignUpWithWalletCommand) (session domain.Session, err error) {
	if s.wallet == nil {
		return domain.Session{}, notInitialized("wallet sign up", "wallet stamper")
	}

	scope := s.newScope()
	defer s.finish(ctx, scope, &err)

	provider := cmd.Provider
	if !hasProvider(provider) {
		active, ok := s.wallet.ActiveProvider()
		if !ok {
			return domain.Session{}, domain.Wrap(domain.ErrNoCredentialAvailable, "wallet sign up", errors.New("no wallet provider selected"))
		}
		provider = active
	}

	publicKey, curveType, err := s.wallet.PublicKey(ctx, provider)
	if err != nil {
		return domain.Session{}, fmt.Errorf("resolve wallet public key: %w", err)
	}
	s.wallet.SetActiveProvider(provider)

	req := signUpRequest(cmd.SignUpCommand)
	req.APIKeys = append(req.APIKeys, domain.APIKeyCredential{
		Name:      fmt.Sprintf("wallet-%s", domain.ShortKey(publicKey)),
		PublicKey: publicKey,
		CurveType: curveType,
	})

	return s.signUp(ctx, scope, flowSignUpWallet, cmd.SignUpCommand, req)
}

// RefreshSession re-issues the session stored under the given key, stamped by
// the key it is bound to. The replaced key pair is deleted once unused.
func (s *SessionService) RefreshSession(ctx context.Context, cmd RefreshSessionCommand) (session domain.Session, err error) {
	if s.keyStamper == nil {
		return domain.Session{}, notInitialized("refresh session", "key stamper")
	}

	sessionKey := s.sessionKey(cmd.SessionKey)
	current, err := s.sessions.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, domain.Wrap(domain.ErrNoCredentialAvailable, "refresh session", err)
		}
		return domain.Session{}, fmt.Errorf("get session %q: %w", sessionKey, err)
	}

	scope := s.newScope()
	defer s.finish(ctx, scope, &err)

	s.keyStamper.SetTemporaryPublicKey(current.PublicKey)
	defer s.keyStamper.ClearTemporaryPublicKey()

	expiration := cmd.ExpirationSeconds
	if expiration <= 0 {
		expiration = current.ExpirationSeconds
	}

	return s.exchange(ctx, scope, flowRefresh, LoginCommand{
		SessionKey:         sessionKey,
		OrganizationID:     current.OrganizationID,
		ExpirationSeconds:  expiration,
		InvalidateExisting: cmd.InvalidateExisting,
	}, s.keyStamper)
}

func (s *SessionService) CreateKeyPair(ctx context.Context, external *domain.ExternalKeyPair) (string, error) {
	publicKey, err := s.keys.Create(ctx, external)
	if err != nil {
		return "", fmt.Errorf("create key pair: %w", err)
	}

	log.WithField("publicKey", domain.ShortKey(publicKey)).Info("Created key pair")
	return publicKey, nil
}

// DeleteKeyPair refuses keys that a stored session is still bound to.
func (s *SessionService) DeleteKeyPair(ctx context.Context, publicKey string) error {
	bound, err := s.boundKeys(ctx)
	if err != nil {
		return err
	}
	if sessionKeys := bound[publicKey]; len(sessionKeys) > 0 {
		return fmt.Errorf("delete key pair %s: %w (sessions: %s)", domain.ShortKey(publicKey), ErrKeyPairInUse, strings.Join(sessionKeys, ", "))
	}

	if err := s.keys.Delete(ctx, publicKey); err != nil {
		return fmt.Errorf("delete key pair %s: %w", domain.ShortKey(publicKey), err)
	}
	return nil
}

// Logout clears one session and deletes its key pair unless another session
// is bound to the same key.
func (s *SessionService) Logout(ctx context.Context, sessionKey string) (err error) {
	sessionKey = s.sessionKey(sessionKey)
	session, err := s.sessions.Get(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("get session %q: %w", sessionKey, err)
	}

	if err := s.sessions.Clear(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session %q: %w", sessionKey, err)
	}

	scope := s.newScope()
	defer s.finish(ctx, scope, &err)

	scope.own(session.PublicKey)
	bound, err := s.boundKeys(ctx)
	if err != nil {
		scope.bind(session.PublicKey)
		return err
	}
	if len(bound[session.PublicKey]) > 0 {
		scope.bind(session.PublicKey)
	}

	log.WithField("session", sessionKey).Info("Logged out")
	return nil
}

// ClearAllSessions clears every stored session and deletes their key pairs.
func (s *SessionService) ClearAllSessions(ctx context.Context) (err error) {
	views, err := s.Sessions(ctx)
	if err != nil {
		return err
	}

	if err := s.sessions.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}

	scope := s.newScope()
	defer s.finish(ctx, scope, &err)

	for _, view := range views {
		scope.own(view.Session.PublicKey)
	}

	log.WithField("count", len(views)).Info("Cleared sessions")
	return nil
}

// ClearUnusedKeyPairs deletes stored key pairs no session is bound to and
// returns their public keys.
func (s *SessionService) ClearUnusedKeyPairs(ctx context.Context) (deleted []string, err error) {
	pairs, err := s.KeyPairs(ctx)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, pair := range pairs {
		if pair.Bound() {
			continue
		}
		if err := s.keys.Delete(ctx, pair.PublicKey); err != nil && !errors.Is(err, domain.ErrKeyPairNotFound) {
			errs = append(errs, fmt.Errorf("delete key pair %s: %w", domain.ShortKey(pair.PublicKey), err))
			continue
		}
		deleted = append(deleted, pair.PublicKey)
	}

	if len(deleted) > 0 || len(errs) > 0 {
		s.metrics.Cleanup(errors.Join(errs...))
	}
	if len(errs) > 0 {
		return deleted, &domain.Error{Kind: domain.ErrCleanupFailed, Message: "clear unused key pairs", Err: errors.Join(errs...)}
	}
	return deleted, nil
}

// ActiveSession returns the active session. A missing one is reported as
// domain.ErrNoCredentialAvailable.
func (s *SessionService) ActiveSession(ctx context.Context) (domain.Session, error) {
	session, err := s.sessions.Active(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, domain.Wrap(domain.ErrNoCredentialAvailable, "active session", err)
		}
		return domain.Session{}, fmt.Errorf("get active session: %w", err)
	}
	return session, nil
}

func (s *SessionService) UseSession(ctx context.Context, sessionKey string) error {
	sessionKey = s.sessionKey(sessionKey)
	if err := s.sessions.SetActive(ctx, sessionKey); err != nil {
		return fmt.Errorf("use session %q: %w", sessionKey, err)
	}
	return nil
}

func (s *SessionService) Sessions(ctx context.Context) ([]SessionView, error) {
	keys, err := s.sessions.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	activeKey, err := s.sessions.ActiveKey(ctx)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("get active session key: %w", err)
	}

	views := make([]SessionView, 0, len(keys))
	for _, key := range keys {
		session, err := s.sessions.Get(ctx, key)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				continue
			}
			return nil, fmt.Errorf("get session %q: %w", key, err)
		}
		views = append(views, SessionView{Key: key, Session: session, Active: key == activeKey})
	}
	return views, nil
}

func (s *SessionService) KeyPairs(ctx context.Context) ([]KeyPairView, error) {
	publicKeys, err := s.keys.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list key pairs: %w", err)
	}

	bound, err := s.boundKeys(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]KeyPairView, 0, len(publicKeys))
	for _, publicKey := range publicKeys {
		views = append(views, KeyPairView{PublicKey: publicKey, SessionKeys: bound[publicKey]})
	}
	return views, nil
}

// Stamp authenticates payload with the selected credential source without
// sending it anywhere.
func (s *SessionService) Stamp(ctx context.Context, cmd StampCommand) (domain.Stamp, error) {
	var stamper ports.Stamper
	switch cmd.Source {
	case StampWithKeyPair, "":
		if s.keyStamper == nil {
			return domain.Stamp{}, notInitialized("stamp", "key stamper")
		}
		if cmd.PublicKey != "" {
			s.keyStamper.SetTemporaryPublicKey(cmd.PublicKey)
			defer s.keyStamper.ClearTemporaryPublicKey()
		}
		stamper = s.keyStamper
	case StampWithPasskey:
		if s.passkey == nil {
			return domain.Stamp{}, notInitialized("stamp", "passkey stamper")
		}
		stamper = s.passkey
	case StampWithWallet:
		if s.wallet == nil {
			return domain.Stamp{}, notInitialized("stamp", "wallet stamper")
		}
		if cmd.Provider != nil {
			s.wallet.SetActiveProvider(*cmd.Provider)
		}
		stamper = s.wallet
	default:
		return domain.Stamp{}, domain.Wrap(domain.ErrUnsupportedOperation, "stamp", fmt.Errorf("unknown credential source %q", cmd.Source))
	}

	stamp, err := stamper.Stamp(ctx, cmd.Payload)
	if err != nil {
		return domain.Stamp{}, fmt.Errorf("stamp with %s: %w", cmd.Source, err)
	}
	return stamp, nil
}

func (s *SessionService) signUp(ctx context.Context, scope *keyScope, flow string, cmd SignUpCommand, req domain.SignUpRequest) (domain.Session, error) {
	if s.keyStamper == nil {
		return domain.Session{}, notInitialized("sign up", "key stamper")
	}
	if s.api == nil {
		return domain.Session{}, notInitialized("sign up", "auth api")
	}

	signUpKey, err := s.sessionPublicKey(ctx, scope, cmd.LoginCommand)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign up: %w", err)
	}

	expiration := strconv.FormatInt(s.expiration(cmd.ExpirationSeconds), 10)
	req.APIKeys = append(req.APIKeys, domain.APIKeyCredential{
		Name:              fmt.Sprintf("keystamp-signup-%d", s.clock.Now().Unix()),
		PublicKey:         signUpKey,
		CurveType:         domain.CurveTypeP256,
		ExpirationSeconds: expiration,
	})

	result, err := s.api.SignUp(ctx, req)
	if err != nil {
		s.metrics.Exchange(flow, err)
		return domain.Session{}, fmt.Errorf("sign up: %w", err)
	}
	log.WithField("organizationId", result.OrganizationID).Info("Created sub-organization")

	s.keyStamper.SetTemporaryPublicKey(signUpKey)
	defer s.keyStamper.ClearTemporaryPublicKey()

	// The key registered with the new organization becomes the session key.
	login := cmd.LoginCommand
	login.OrganizationID = result.OrganizationID
	return s.login(ctx, scope, flow, login, signUpKey, s.keyStamper)
}

// exchange obtains a session bound to the resolved key pair and persists it.
func (s *SessionService) exchange(ctx context.Context, scope *keyScope, flow string, cmd LoginCommand, stamper ports.Stamper) (domain.Session, error) {
	if s.api == nil {
		return domain.Session{}, notInitialized(flow+" login", "auth api")
	}

	publicKey, err := s.sessionPublicKey(ctx, scope, cmd)
	if err != nil {
		return domain.Session{}, err
	}

	return s.login(ctx, scope, flow, cmd, publicKey, stamper)
}

// login asks for a session bound to publicKey, authenticated by stamper.
func (s *SessionService) login(ctx context.Context, scope *keyScope, flow string, cmd LoginCommand, publicKey string, stamper ports.Stamper) (domain.Session, error) {
	token, err := s.api.StampLogin(ctx, domain.LoginRequest{
		OrganizationID:     s.organizationID(cmd.OrganizationID),
		PublicKey:          publicKey,
		ExpirationSeconds:  strconv.FormatInt(s.expiration(cmd.ExpirationSeconds), 10),
		InvalidateExisting: cmd.InvalidateExisting,
	}, stamper)
	s.metrics.Exchange(flow, err)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s login: %w", flow, err)
	}

	session, err := s.persist(ctx, scope, token, s.sessionKey(cmd.SessionKey))
	if err != nil {
		return domain.Session{}, err
	}
	if session.PublicKey != publicKey {
		log.WithFields(logrus.Fields{
			"requested": domain.ShortKey(publicKey),
			"issued":    domain.ShortKey(session.PublicKey),
		}).Warn("Session was issued for a different key pair")
	}

	log.WithFields(logrus.Fields{
		"flow":      flow,
		"session":   s.sessionKey(cmd.SessionKey),
		"publicKey": domain.ShortKey(session.PublicKey),
	}).Info("Stored session")
	return session, nil
}

func (s *SessionService) sessionPublicKey(ctx context.Context, scope *keyScope, cmd LoginCommand) (string, error) {
	switch {
	case cmd.PublicKey != "" && cmd.External != nil:
		return "", errors.New("resolve session key pair: public key and external key pair are mutually exclusive")

	case cmd.PublicKey != "":
		known, err := s.keys.List(ctx)
		if err != nil {
			return "", fmt.Errorf("list key pairs: %w", err)
		}
		if !slices.Contains(known, cmd.PublicKey) {
			return "", domain.Wrap(domain.ErrNoCredentialAvailable, "resolve session key pair", fmt.Errorf("%w: %s", domain.ErrKeyPairNotFound, domain.ShortKey(cmd.PublicKey)))
		}
		return cmd.PublicKey, nil

	default:
		publicKey, err := s.keys.Create(ctx, cmd.External)
		if err != nil {
			return "", fmt.Errorf("create session key pair: %w", err)
		}
		scope.own(publicKey)
		return publicKey, nil
	}
}

// persist stores token under sessionKey and hands the key pair of a replaced
// session to scope when nothing else is bound to it.
func (s *SessionService) persist(ctx context.Context, scope *keyScope, token, sessionKey string) (domain.Session, error) {
	previous, err := s.sessions.Get(ctx, sessionKey)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Session{}, fmt.Errorf("get session %q: %w", sessionKey, err)
	}

	session, err := s.sessions.Store(ctx, token, sessionKey)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSessionToken) {
			return domain.Session{}, domain.Wrap(domain.ErrRemoteRejected, "store session", err)
		}
		return domain.Session{}, fmt.Errorf("store session %q: %w", sessionKey, err)
	}
	scope.bind(session.PublicKey)

	if previous.PublicKey == "" || previous.PublicKey == session.PublicKey {
		return session, nil
	}

	bound, err := s.boundKeys(ctx)
	if err != nil {
		log.WithError(err).Warn("Keeping replaced key pair")
		return session, nil
	}
	if len(bound[previous.PublicKey]) == 0 {
		scope.own(previous.PublicKey)
	}
	return session, nil
}

// boundKeys maps each public key to the sessions bound to it.
func (s *SessionService) boundKeys(ctx context.Context) (map[string][]string, error) {
	views, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	bound := make(map[string][]string, len(views))
	for _, view := range views {
		bound[view.Session.PublicKey] = append(bound[view.Session.PublicKey], view.Key)
	}
	for _, keys := range bound {
		sort.Strings(keys)
	}
	return bound, nil
}

func (s *SessionService) newScope() *keyScope {
	return &keyScope{keys: s.keys}
}

// finish releases scope and folds a cleanup failure into *errp, keeping the
// original error in the chain.
func (s *SessionService) finish(ctx context.Context, scope *keyScope, errp *error) {
	released, cleanupErr := scope.release(context.WithoutCancel(ctx))
	if released > 0 {
		s.metrics.Cleanup(cleanupErr)
	}
	if cleanupErr == nil {
		return
	}

	log.WithError(cleanupErr).Warn("Failed to release key pairs")
	*errp = &domain.Error{
		Kind:    domain.ErrCleanupFailed,
		Message: "release key pairs",
		Err:     errors.Join(cleanupErr, *errp),
	}
}

func (s *SessionService) sessionKey(key string) string {
	if key = strings.TrimSpace(key); key != "" {
		return key
	}
	return s.cfg.DefaultSessionKey
}

func (s *SessionService) organizationID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return s.cfg.OrganizationID
}

func (s *SessionService) expiration(seconds int64) int64 {
	if seconds > 0 {
		return seconds
	}
	return s.cfg.ExpirationSeconds
}

// keyScope tracks the key pairs one flow is responsible for.
type keyScope struct {
	keys  ports.KeyPairStore
	owned []string
	bound string
}

func (k *keyScope) own(publicKey string) {
	if publicKey == "" || slices.Contains(k.owned, publicKey) {
		return
	}
	k.owned = append(k.owned, publicKey)
}

func (k *keyScope) bind(publicKey string) {
	k.bound = publicKey
}

// release deletes every owned key pair except the bound one.
func (k *keyScope) release(ctx context.Context) (int, error) {
	var (
		released int
		errs     []error
	)
	for _, publicKey := range k.owned {
		if publicKey == k.bound {
			continue
		}
		released++
		if err := k.keys.Delete(ctx, publicKey); err != nil && !errors.Is(err, domain.ErrKeyPairNotFound) {
			errs = append(errs, fmt.Errorf("delete key pair %s: %w", domain.ShortKey(publicKey), err))
			continue
		}
		log.WithField("publicKey", domain.ShortKey(publicKey)).Debug("Released key pair")
	}
	return released, errors.Join(errs...)
}

func signUpRequest(cmd SignUpCommand) domain.SignUpRequest {
	return domain.SignUpRequest{
		UserName:         cmd.UserName,
		UserEmail:        cmd.UserEmail,
		OrganizationName: cmd.OrganizationName,
	}
}

func hasProvider(p domain.WalletProvider) bool {
	return p.InterfaceType != "" || len(p.ConnectedAddresses) > 0
}

func notInitialized(op, what string) error {
	return domain.Wrap(domain.ErrCredentialNotInitialized, op, fmt.Errorf("%s is not configured", what))
}
