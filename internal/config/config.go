// Package config loads keystamp settings from ~/.keystamp/config.toml and
// KS_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/spf13/viper"
)

const (
	DirName    = ".keystamp"
	configName = "config"
	configType = "toml"
	envPrefix  = "KS"
)

const (
	KeyAPIBaseURL         = "api.base_url"
	KeyOrganizationID     = "api.organization_id"
	KeyAPITimeout         = "api.timeout"
	KeyDefaultSessionKey  = "session.default_key"
	KeyExpirationSeconds  = "session.expiration_seconds"
	KeySessionsPath       = "sessions.path"
	KeyPlatform           = "platform"
	KeyKeysDir            = "keys.dir"
	KeyKeysNamespace      = "keys.namespace"
	KeyDeviceSecret       = "keys.device_secret"
	KeySecretsDir         = "secrets.dir"
	KeyPasskeyRPID        = "passkey.rp_id"
	KeyPasskeyOrigin      = "passkey.origin"
	KeyPasskeyTimeout     = "passkey.timeout"
	KeyPasskeyHelper      = "passkey.helper"
	KeyPasskeyCeremony    = "passkey.ceremony"
	KeyWalletRelayURL     = "wallet.relay_url"
	KeyWalletProjectID    = "wallet.project_id"
	KeyWalletMnemonic     = "wallet.mnemonic"
	KeyWalletDiscovery    = "wallet.discovery_window"
	KeyWalletRepair       = "wallet.repair_interval"
	KeyLogLevel           = "log.level"
	KeyLogFormat          = "log.format"
	defaultAPIBaseURL     = "https://api.turnkey.com"
	defaultPasskeyRPID    = "localhost"
	defaultDiscoveryDelay = 250 * time.Millisecond
)

type Config struct {
	Dir      string
	API      APIConfig
	Session  SessionConfig
	Platform string
	Keys     KeysConfig
	Passkey  PasskeyConfig
	Wallet   WalletConfig
	Log      LogConfig
}

type APIConfig struct {
	BaseURL        string
	OrganizationID string
	Timeout        time.Duration
}

type SessionConfig struct {
	DefaultKey        string
	ExpirationSeconds int64
	Path              string
}

type KeysConfig struct {
	Dir          string
	Namespace    string
	DeviceSecret string
	SecretsDir   string
}

type PasskeyConfig struct {
	RPID    string
	Origin  string
	Timeout time.Duration
	Helper  string
	// Ceremony is software, helper or browser. Empty picks helper when one
	// is configured and software otherwise.
	Ceremony string
}

type WalletConfig struct {
	RelayURL        string
	ProjectID       string
	Mnemonic        string
	DiscoveryWindow time.Duration
	RepairInterval  time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads dir/config.toml into v, which stays usable by adapters that take
// a *viper.Viper. An empty dir means ~/.keystamp. A missing file is not an
// error.
func Load(v *viper.Viper, dir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	if strings.TrimSpace(dir) == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(homeDir, DirName)
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Dir: dir,
		API: APIConfig{
			BaseURL:        v.GetString(KeyAPIBaseURL),
			OrganizationID: v.GetString(KeyOrganizationID),
			Timeout:        v.GetDuration(KeyAPITimeout),
		},
		Session: SessionConfig{
			DefaultKey:        v.GetString(KeyDefaultSessionKey),
			ExpirationSeconds: v.GetInt64(KeyExpirationSeconds),
			Path:              v.GetString(KeySessionsPath),
		},
		Platform: strings.ToLower(strings.TrimSpace(v.GetString(KeyPlatform))),
		Keys: KeysConfig{
			Dir:          v.GetString(KeyKeysDir),
			Namespace:    v.GetString(KeyKeysNamespace),
			DeviceSecret: v.GetString(KeyDeviceSecret),
			SecretsDir:   v.GetString(KeySecretsDir),
		},
		Passkey: PasskeyConfig{
			RPID:     v.GetString(KeyPasskeyRPID),
			Origin:   v.GetString(KeyPasskeyOrigin),
			Timeout:  v.GetDuration(KeyPasskeyTimeout),
			Helper:   v.GetString(KeyPasskeyHelper),
			Ceremony: strings.ToLower(strings.TrimSpace(v.GetString(KeyPasskeyCeremony))),
		},
		Wallet: WalletConfig{
			RelayURL:        v.GetString(KeyWalletRelayURL),
			ProjectID:       v.GetString(KeyWalletProjectID),
			Mnemonic:        v.GetString(KeyWalletMnemonic),
			DiscoveryWindow: v.GetDuration(KeyWalletDiscovery),
			RepairInterval:  v.GetDuration(KeyWalletRepair),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(KeyAPIBaseURL, defaultAPIBaseURL)
	v.SetDefault(KeyAPITimeout, 30*time.Second)
	v.SetDefault(KeyDefaultSessionKey, domain.DefaultSessionKey)
	v.SetDefault(KeyExpirationSeconds, domain.DefaultExpirationSeconds)
	v.SetDefault(KeySessionsPath, filepath.Join(dir, "sessions.toml"))
	v.SetDefault(KeyPlatform, "native")
	v.SetDefault(KeyKeysDir, dir)
	v.SetDefault(KeyKeysNamespace, "keystamp")
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeyPasskeyRPID, defaultPasskeyRPID)
	v.SetDefault(KeyPasskeyTimeout, 5*time.Minute)
	v.SetDefault(KeyWalletDiscovery, defaultDiscoveryDelay)
	v.SetDefault(KeyWalletRepair, 5*time.Second)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")

	// AutomaticEnv only answers keys viper already knows about.
	for _, key := range []string{KeyOrganizationID, KeyDeviceSecret, KeyPasskeyOrigin, KeyPasskeyHelper, KeyPasskeyCeremony, KeyWalletRelayURL, KeyWalletProjectID, KeyWalletMnemonic} {
		_ = v.BindEnv(key)
	}
}

func (c Config) validate() error {
	switch c.Platform {
	case "native", "web":
	default:
		return fmt.Errorf("invalid %s %q: expected native or web", KeyPlatform, c.Platform)
	}
	switch c.Passkey.Ceremony {
	case "", "software", "helper", "browser":
	default:
		return fmt.Errorf("invalid %s %q: expected software, helper or browser", KeyPasskeyCeremony, c.Passkey.Ceremony)
	}
	if c.Passkey.Ceremony == "helper" && strings.TrimSpace(c.Passkey.Helper) == "" {
		return fmt.Errorf("invalid %s: helper ceremony needs %s", KeyPasskeyCeremony, KeyPasskeyHelper)
	}
	if c.Session.ExpirationSeconds <= 0 {
		return fmt.Errorf("invalid %s %d: must be positive", KeyExpirationSeconds, c.Session.ExpirationSeconds)
	}
	if strings.TrimSpace(c.Session.DefaultKey) == "" {
		return fmt.Errorf("invalid %s: must not be empty", KeyDefaultSessionKey)
	}
	return nil
}

// PasskeyOrigin is the origin the software authenticator writes into client
// data. It defaults to https://<rp id>.
func (c Config) PasskeyOrigin() string {
	if c.Passkey.Origin != "" {
		return c.Passkey.Origin
	}
	return "https://" + c.Passkey.RPID
}
