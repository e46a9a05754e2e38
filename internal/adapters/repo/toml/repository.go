package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/keystamp/internal/adapters/token"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName           = "config"
	configType           = "toml"
	sessionsPathKey      = "sessions.path"
	expirationSecondsKey = "session.expiration_seconds"
	sessionsFileMode     = 0o600
	sessionsDirMode      = 0o700
	sessionsConfigDir    = ".keystamp"
	sessionsConfigFile   = "sessions.toml"
	tempFilePattern      = ".sessions-*.toml.tmp"
)

// SessionRepository persists session tokens in a TOML file. The order of the
// sessions table is the session key index; Active is the single active slot.
type SessionRepository struct {
	sessionsPath      string
	expirationSeconds int64
	clock             ports.Clock
	mu                *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionStore = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, sessionsConfigDir, sessionsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, sessionsConfigDir))
	cfg.SetDefault(sessionsPathKey, defaultPath)
	cfg.SetDefault(expirationSecondsKey, domain.DefaultExpirationSeconds)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	sessionsPath := cfg.GetString(sessionsPathKey)
	if sessionsPath == "" {
		return nil, errors.New("sessions path is empty")
	}
	sessionsPath, err = normalizeSessionsPath(sessionsPath)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{
		sessionsPath:      sessionsPath,
		expirationSeconds: cfg.GetInt64(expirationSecondsKey),
		clock:             ports.SystemClock{},
		mu:                lockForPath(sessionsPath),
	}, nil
}

// Store parses rawToken, persists it under sessionKey and makes that key
// active. Nothing is written when the token does not parse.
func (r *SessionRepository) Store(ctx context.Context, rawToken string, sessionKey string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return domain.Session{}, errors.New("session key is empty")
	}

	session, err := token.ParseSession(rawToken, r.expirationSeconds)
	if err != nil {
		return domain.Session{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Session{}, err
	}

	entry := sessionSchema{
		Key:               sessionKey,
		Token:             session.Token,
		ExpirationSeconds: session.ExpirationSeconds,
		StoredAt:          r.clock.Now().UTC().Format(time.RFC3339),
	}
	if i := file.indexOf(sessionKey); i >= 0 {
		file.Sessions[i] = entry
	} else {
		file.Sessions = append(file.Sessions, entry)
	}
	file.Active = sessionKey

	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	if err := r.writeSchema(file); err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionKey string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Session{}, err
	}

	i := file.indexOf(sessionKey)
	if i < 0 {
		return domain.Session{}, fmt.Errorf("session %q: %w", sessionKey, domain.ErrSessionNotFound)
	}

	return fromSchema(file.Sessions[i])
}

func (r *SessionRepository) ActiveKey(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return "", err
	}
	if file.Active == "" {
		return "", fmt.Errorf("active session: %w", domain.ErrSessionNotFound)
	}

	return file.Active, nil
}

func (r *SessionRepository) Active(ctx context.Context) (domain.Session, error) {
	key, err := r.ActiveKey(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	return r.Get(ctx, key)
}

func (r *SessionRepository) SetActive(ctx context.Context, sessionKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	if file.indexOf(sessionKey) < 0 {
		return fmt.Errorf("session %q: %w", sessionKey, domain.ErrSessionNotFound)
	}
	if file.Active == sessionKey {
		return nil
	}

	file.Active = sessionKey
	return r.writeSchema(file)
}

func (r *SessionRepository) ListKeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		keys = append(keys, entry.Key)
	}

	return keys, nil
}

// Clear drops the record and its index entry. The active slot is emptied
// only when it pointed at sessionKey. Clearing an unknown key is a no-op.
func (r *SessionRepository) Clear(ctx context.Context, sessionKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	i := file.indexOf(sessionKey)
	if i < 0 && file.Active != sessionKey {
		return nil
	}
	if i >= 0 {
		file.Sessions = append(file.Sessions[:i], file.Sessions[i+1:]...)
	}
	if file.Active == sessionKey {
		file.Active = ""
	}

	return r.writeSchema(file)
}

func (r *SessionRepository) ClearAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(fileSchema{})
}

func (r *SessionRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sessionsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read sessions file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode sessions file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *SessionRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionsPath), sessionsDirMode); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp sessions file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp sessions file: %w", err)
	}

	if err := tempFile.Chmod(sessionsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp sessions file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp sessions file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionsPath); err != nil {
		return fmt.Errorf("replace sessions file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.sessionsPath, sessionsFileMode); err != nil {
		return fmt.Errorf("chmod sessions file: %w", err)
	}

	return nil
}

func fromSchema(entry sessionSchema) (domain.Session, error) {
	session, err := token.ParseSession(entry.Token, entry.ExpirationSeconds)
	if err != nil {
		return domain.Session{}, fmt.Errorf("session %q: %w", entry.Key, err)
	}

	return session, nil
}

func normalizeSessionsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve sessions path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
