package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const sessionEnv = "NOTES_SESSION"

// Session is what survives between CLI invocations.
type Session struct {
	Server string      `yaml:"server"`
	Token  string      `yaml:"token"`
	User   SessionUser `yaml:"user"`
}

type SessionUser struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

// DefaultSessionPath is $NOTES_SESSION, or session.yaml under the user config
// dir.
func DefaultSessionPath() (string, error) {
	if p := os.Getenv(sessionEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "notes", "session.yaml"), nil
}

// LoadSession reads path. A missing file is an empty session.
func LoadSession(path string) (Session, error) {
	var s Session
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read session: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Session{}, fmt.Errorf("parse session %s: %w", path, err)
	}
	return s, nil
}

// SaveSession writes s readable by the owner only.
func SaveSession(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(path, 0o600)
}

func removeSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
