package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/keystamp/internal/adapters/token/tokentest"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ks "+version.Version))
	assert.Equal(t, runtime.Version()+" "+runtime.GOOS+"/"+runtime.GOARCH, lines[1])

	stdout, _, err = executeCLI(t, home, "version", "-o", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, version.Version, info["version"])
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info["platform"])
}

func TestVersionIgnoresBrokenConfig(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "platform = \"desktop\"\n")

	_, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "keys", "list")
	require.ErrorContains(t, err, "platform")
}

func TestFailedCommandStillReleasesResources(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeWebConfig(t, home, "https://api.invalid")

	a := &app{}
	root := newRootCmdWithApp(a)
	released := false
	fail := &cobra.Command{
		Use: "fail",
		RunE: func(*cobra.Command, []string) error {
			a.closers = append(a.closers, func() error {
				released = true
				return nil
			})
			return errors.New("request failed")
		},
	}
	root.AddCommand(fail)
	releaseAfterRun(fail, a)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"fail", "--timeout", "1m"})

	err := root.Execute()
	require.ErrorContains(t, err, "request failed")
	assert.True(t, released)
	assert.Empty(t, a.closers)
}

func TestKeysCreateListPrune(t *testing.T) {
	home := t.TempDir()
	writeWebConfig(t, home, "https://api.invalid")

	created, _, err := executeCLI(t, home, "keys", "create")
	require.NoError(t, err)
	publicKey := strings.TrimSpace(created)
	require.Len(t, publicKey, 66)

	listed, _, err := executeCLI(t, home, "keys", "list")
	require.NoError(t, err)
	assert.Contains(t, listed, publicKey+"\t(unused)")

	pruned, _, err := executeCLI(t, home, "keys", "prune")
	require.NoError(t, err)
	assert.Contains(t, pruned, "deleted "+publicKey)

	listed, _, err = executeCLI(t, home, "keys", "list", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", listed)
}

func TestLoginStampLogoutFlow(t *testing.T) {
	home := t.TempDir()
	server := newLoginServer(t)
	writeWebConfig(t, home, server.URL)

	created, _, err := executeCLI(t, home, "keys", "create")
	require.NoError(t, err)
	stampingKey := strings.TrimSpace(created)

	stdout, _, err := executeCLI(t, home, "login", "keypair", "--stamping-key", stampingKey, "--session-key", "work")
	require.NoError(t, err)
	assert.Contains(t, stdout, "session work bound to")
	assert.Contains(t, stdout, "from now")

	sessionKey := server.lastPublicKey()
	require.NotEmpty(t, sessionKey)
	assert.NotEqual(t, stampingKey, sessionKey)
	assert.Equal(t, stampingKey, server.lastStampKey())

	stdout, _, err = executeCLI(t, home, "session", "list", "--output", "json")
	require.NoError(t, err)
	var sessions []sessionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "work", sessions[0].Key)
	assert.True(t, sessions[0].Active)
	assert.Equal(t, sessionKey, sessions[0].PublicKey)
	assert.NotContains(t, stdout, "token")

	stdout, _, err = executeCLI(t, home, "stamp", "--payload", `{"hello":"world"}`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "X-Stamp: "), stdout)

	stdout, _, err = executeCLI(t, home, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "work")
	assert.Contains(t, stdout, "(active)")
	assert.Contains(t, stdout, "[unbound]")

	_, _, err = executeCLI(t, home, "session", "logout", "work")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "keys", "list")
	require.NoError(t, err)
	assert.NotContains(t, stdout, sessionKey)
	assert.Contains(t, stdout, stampingKey)
}

func TestLoginFailureLeavesNoNewKey(t *testing.T) {
	home := t.TempDir()
	server := newLoginServer(t)
	server.reject = true
	writeWebConfig(t, home, server.URL)

	created, _, err := executeCLI(t, home, "keys", "create")
	require.NoError(t, err)
	stampingKey := strings.TrimSpace(created)

	_, _, err = executeCLI(t, home, "login", "keypair", "--stamping-key", stampingKey)
	require.Error(t, err)

	stdout, _, err := executeCLI(t, home, "keys", "list", "--output", "json")
	require.NoError(t, err)
	var keys []keyPairOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &keys))
	require.Len(t, keys, 1)
	assert.Equal(t, stampingKey, keys[0].PublicKey)
}

func TestStampRejectsUnknownSource(t *testing.T) {
	home := t.TempDir()
	writeWebConfig(t, home, "https://api.invalid")

	_, _, err := executeCLI(t, home, "stamp", "--source", "smartcard", "--payload", "x")
	require.ErrorContains(t, err, "unsupported stamp source")
}

func TestWalletPairRequiresRelay(t *testing.T) {
	home := t.TempDir()
	writeWebConfig(t, home, "https://api.invalid")

	_, _, err := executeCLI(t, home, "wallet", "pair")
	require.ErrorContains(t, err, "wallet.relay_url")
}

func TestWalletConnectWithSoftwareWallet(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, webConfig("https://api.invalid")+`
[wallet]
mnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
discovery_window = "50ms"
`)

	stdout, _, err := executeCLI(t, home, "wallet", "connect", "--interface", "ethereum")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ethereum/")
	assert.Contains(t, stdout, "0x")

	stdout, _, err = executeCLI(t, home, "wallet", "providers", "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "interface: ethereum")
	assert.Contains(t, stdout, "interface: solana")
}

// loginServer issues a session token bound to the public key in each login
// request.
type loginServer struct {
	*httptest.Server

	mu        sync.Mutex
	reject    bool
	publicKey string
	stampKey  string
}

func newLoginServer(t *testing.T) *loginServer {
	t.Helper()

	s := &loginServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Parameters struct {
				PublicKey string `json:"publicKey"`
			} `json:"parameters"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		envelope, _ := domain.DecodeStamp(domain.Stamp{HeaderName: domain.StampHeaderName, HeaderValue: r.Header.Get(domain.StampHeaderName)})

		s.mu.Lock()
		s.publicKey = body.Parameters.PublicKey
		s.stampKey = envelope.PublicKey
		reject := s.reject
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if reject {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":16,"message":"unauthenticated"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"session": tokentest.Mint(t, body.Parameters.PublicKey, 15*time.Minute),
		})
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *loginServer) lastPublicKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publicKey
}

func (s *loginServer) lastStampKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stampKey
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func webConfig(baseURL string) string {
	return `platform = "web"

[api]
base_url = "` + baseURL + `"
organization_id = "org-1"

[keys]
device_secret = "cli-test-secret"
`
}

func writeWebConfig(t *testing.T, home, baseURL string) {
	t.Helper()
	writeConfig(t, home, webConfig(baseURL))
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()

	dir := filepath.Join(home, ".keystamp")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}
