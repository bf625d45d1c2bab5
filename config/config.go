package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"k8s.io/client-go/util/homedir"
)

const (
	tokenFileName = ".sharedkube_token"

	// TokenLength is the exact length of a Sharedkube API token.
	TokenLength = 64

	tokenFileMode = os.FileMode(0o600)
)

// TokenFilePath returns the location of the token file in the user's
// home directory.
func TokenFilePath() string {
	return filepath.Join(homedir.HomeDir(), tokenFileName)
}

// ValidateToken checks the documented token contract before any network
// round trip is attempted.
func ValidateToken(token string) error {
	if len(token) != TokenLength {
		return fmt.Errorf("invalid token: expected %d characters, got %d", TokenLength, len(token))
	}
	return nil
}

// LoadToken reads the stored token. A missing file is not an error; it
// returns the empty string so callers can tell the user to login first.
func LoadToken(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("fatal: error reading token file.\ntrace: %w", err)
	}

	return strings.TrimSpace(string(content)), nil
}

// SaveToken persists the token with owner-only permissions. When a token
// is already stored and confirm is non-nil, confirm decides whether it
// is overwritten; a negative answer leaves the file untouched and
// returns saved=false without an error. A nil confirm overwrites
// silently.
func SaveToken(path string, token string, confirm func(prompt string) bool) (bool, error) {
	existing, err := LoadToken(path)
	if err != nil {
		return false, err
	}

	if existing != "" && confirm != nil {
		if !confirm("A token is already saved. Do you want to override it?") {
			return false, nil
		}
	}

	if err := writeTokenFile(path, token); err != nil {
		return false, err
	}

	glog.V(1).Infof("info: token saved to %s", path)
	return true, nil
}

// writeTokenFile writes via a temporary file in the same directory and
// renames it into place, so a failed write never leaves a partial token
// file behind.
func writeTokenFile(path string, token string) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, tokenFileName+".*")
	if err != nil {
		return fmt.Errorf("fatal: error creating token file.\ntrace: %w", err)
	}
	tempPath := tempFile.Name()

	if err = tempFile.Chmod(tokenFileMode); err != nil {
		closeErr := tempFile.Close()
		removeErr := os.Remove(tempPath)
		return errors.Join(fmt.Errorf("fatal: error restricting token file permissions.\ntrace: %w", err), closeErr, removeErr)
	}

	if _, err = tempFile.WriteString(token); err != nil {
		closeErr := tempFile.Close()
		removeErr := os.Remove(tempPath)
		return errors.Join(fmt.Errorf("fatal: error writing token file.\ntrace: %w", err), closeErr, removeErr)
	}

	if err = tempFile.Close(); err != nil {
		removeErr := os.Remove(tempPath)
		return errors.Join(fmt.Errorf("fatal: error saving token file.\ntrace: %w", err), removeErr)
	}

	if err = os.Rename(tempPath, path); err != nil {
		removeErr := os.Remove(tempPath)
		return errors.Join(fmt.Errorf("fatal: error replacing token file.\ntrace: %w", err), removeErr)
	}

	return nil
}
