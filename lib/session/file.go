// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// tokenFile is the on-disk shape of the persisted session.
type tokenFile struct {
	AccessToken string `json:"access_token"`
}

// SaveToken writes the credential token to path, owner-readable only.
// The parent directory is created if needed.
func SaveToken(path, token string) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	data, err := json.Marshal(tokenFile{AccessToken: token})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// LoadToken reads the persisted credential token. A missing file is
// not an error: it returns an empty token.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session file: %w", err)
	}
	var stored tokenFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("decoding session file %s: %w", path, err)
	}
	return stored.AccessToken, nil
}

// RemoveToken deletes the persisted session file. A missing file is
// not an error.
func RemoveToken(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
