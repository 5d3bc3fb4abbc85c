// Package shellenv gives spawned runners the PATH of the user's interactive shell.
// Editors started from a desktop launcher inherit a minimal PATH that usually
// misses php, composer and friends.
package shellenv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ProfileScript sources the login profile and prints the resulting PATH
const ProfileScript = "source $HOME/.bash_profile; echo $PATH"

const lookupTimeout = 5 * time.Second

// LoginPath runs script in shell and returns its trimmed output
func LoginPath(ctx context.Context, shell, script string) (string, error) {
	if shell == "" {
		return "", errors.New("SHELL is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, shell, "-c", script).Output()
	if err != nil {
		return "", fmt.Errorf("query PATH from %s: %w", shell, err)
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", fmt.Errorf("%s printed an empty PATH", shell)
	}
	return path, nil
}

// Apply replaces this process's PATH with the login shell's.
// On failure PATH is left as it was.
func Apply(ctx context.Context, logger *log.Logger) error {
	path, err := LoginPath(ctx, os.Getenv("SHELL"), ProfileScript)
	if err != nil {
		return err
	}
	logger.Debug("using login shell PATH", "path", path)
	return os.Setenv("PATH", path)
}
