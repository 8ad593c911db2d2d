// Package cli is the terminal surface over the client core. Every
// command goes through the same client, synchronizer, and patch
// machinery that any other UI would.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"itemize/internal/client"
)

type App struct {
	ServerURL string
	Client    *client.Client
}

// sessionPath is where the CLI persists its session between runs.
func sessionPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "itemize", "session.json"), nil
}

func loadSession() (*client.Session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s client.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", path, err)
	}
	return &s, nil
}

func saveSession(s *client.Session) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func clearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// requireSession fails commands that need authentication.
func (a *App) requireSession() (*client.Session, error) {
	s := a.Client.Session()
	if s == nil {
		return nil, fmt.Errorf("not logged in, run `itemize login` first")
	}
	return s, nil
}
