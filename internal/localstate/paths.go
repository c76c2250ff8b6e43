// Package localstate persists the signed-in identity between launches so the
// app can restore it without re-prompting for credentials.
package localstate

import (
	"os"
	"path/filepath"
)

const (
	// EnvStateHome overrides the default state directory, mainly for tests.
	EnvStateHome = "KINOVZOR_STATE_HOME"

	stateDirName    = ".kinovzor"
	sessionFileName = "session.json"
)

// DataDir returns the directory holding persisted client state, creating it
// with owner-only permissions if needed.
func DataDir() (string, error) {
	if dir := os.Getenv(EnvStateHome); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", err
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, stateDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// SessionPath returns the location of the persisted session file.
func SessionPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}
