// Where: internal/infra/crypto/keyring.go
// What: Machine master key storage.
// Why: Provide the root secret that per-project keys are derived from.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Keyring loads the master key from an override value or a key file,
// creating the file on first use.
type Keyring struct {
	// Override takes precedence over the file when set (hex or base64).
	Override string
	Path     string

	once sync.Once
	key  []byte
	err  error
}

// NewKeyring returns a keyring reading path unless override is set.
func NewKeyring(path, override string) *Keyring {
	return &Keyring{Path: path, Override: override}
}

// MasterKey returns the 32-byte master key.
func (k *Keyring) MasterKey() ([]byte, error) {
	k.once.Do(func() {
		k.key, k.err = k.load()
	})
	return k.key, k.err
}

func (k *Keyring) load() ([]byte, error) {
	if override := strings.TrimSpace(k.Override); override != "" {
		return decodeKey(override)
	}
	if strings.TrimSpace(k.Path) == "" {
		return nil, fmt.Errorf("master key path is required")
	}
	payload, err := os.ReadFile(k.Path)
	if err == nil {
		return decodeKey(strings.TrimSpace(string(payload)))
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read master key: %w", err)
	}
	return k.create()
}

func (k *Keyring) create() ([]byte, error) {
	key := make([]byte, keyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(k.Path), 0o700); err != nil {
		return nil, fmt.Errorf("create master key dir: %w", err)
	}
	if err := os.WriteFile(k.Path, []byte(hex.EncodeToString(key)+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write master key: %w", err)
	}
	return key, nil
}

func decodeKey(value string) ([]byte, error) {
	if key, err := hex.DecodeString(value); err == nil && len(key) == keyLen {
		return key, nil
	}
	if key, err := base64.StdEncoding.DecodeString(value); err == nil && len(key) == keyLen {
		return key, nil
	}
	return nil, fmt.Errorf("master key must be %d bytes encoded as hex or base64", keyLen)
}
