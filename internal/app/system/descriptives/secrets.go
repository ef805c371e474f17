package descriptives

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretsDir is where Docker mounts secrets.
const DefaultSecretsDir = "/run/secrets"

// ReadSecret returns the trimmed content of the Docker secret name. ok is
// false when the secret is missing or unreadable.
func ReadSecret(dir, name string) (string, bool) {
	if dir == "" {
		dir = DefaultSecretsDir
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}
