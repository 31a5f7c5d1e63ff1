package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StoredTokens is the only client-persisted artifact: the token pair survives
// a reload, nothing else does.
type StoredTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Store persists the token pair to a JSON file, the client-side equivalent of
// the browser's local storage.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() (*StoredTokens, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoStoredTokens
		}
		return nil, fmt.Errorf("reading token store: %w", err)
	}

	var tokens StoredTokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("decoding token store: %w", err)
	}
	if tokens.Access == "" && tokens.Refresh == "" {
		return nil, ErrNoStoredTokens
	}

	return &tokens, nil
}

func (s *Store) Save(tokens StoredTokens) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token store dir: %w", err)
	}

	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encoding token store: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing token store: %w", err)
	}
	return nil
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing token store: %w", err)
	}
	return nil
}
