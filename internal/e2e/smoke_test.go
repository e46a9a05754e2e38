package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeConfigFixture(home))

	stdout, stderr, err := runKS(t, binaryPath, home, "keys", "create")
	require.NoError(t, err, "stderr: %s", stderr)
	publicKey := strings.TrimSpace(stdout)
	require.NotEmpty(t, publicKey)

	stdout, stderr, err = runKS(t, binaryPath, home, "stamp", "--public-key", publicKey, "--payload", "{}")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.True(t, strings.HasPrefix(stdout, "X-Stamp: "), stdout)

	stdout, stderr, err = runKS(t, binaryPath, home, "keys", "prune")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "deleted "+publicKey)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ks-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ks")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ks binary: %s", string(output))
	return binaryPath
}

func runKS(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(home string) error {
	configDir := filepath.Join(home, ".keystamp")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	config := `platform = "web"

[keys]
device_secret = "smoke-test-secret"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600)
}
