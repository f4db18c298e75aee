// Where: internal/infra/crypto/provider.go
// What: AES-GCM secret provider keyed by project identity.
// Why: Encrypt environment secrets so they only open for the project that wrote them.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poruru/envctx/internal/domain/secret"
	"golang.org/x/crypto/hkdf"
)

const (
	keyLen  = 32
	kdfInfo = "envctx/profile-secrets"
)

var (
	// ErrMalformedCiphertext is returned for values outside the envelope format.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrNoProjectID is returned when a provider is used without an identity.
	ErrNoProjectID = errors.New("project id is required for encryption")
)

// KeySource supplies the machine master key.
type KeySource interface {
	MasterKey() ([]byte, error)
}

// Provider implements secret.Provider with AES-256-GCM. The per-project key is
// derived from the master key with HKDF-SHA256 using the project id as salt, and
// the project id is bound as additional data.
type Provider struct {
	projectID string
	keys      KeySource
}

// NewProvider returns a provider for projectID backed by keys.
func NewProvider(projectID string, keys KeySource) *Provider {
	return &Provider{projectID: strings.TrimSpace(projectID), keys: keys}
}

// NewFactory returns a secret.Factory sharing one key source.
func NewFactory(keys KeySource) secret.Factory {
	return func(projectID string) secret.Provider {
		return NewProvider(projectID, keys)
	}
}

func (p *Provider) ProjectID() string {
	return p.projectID
}

// Encrypt seals plaintext into the enc:v1 envelope.
func (p *Provider) Encrypt(plaintext string) (string, error) {
	gcm, err := p.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), []byte(p.projectID))
	return secret.CiphertextPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an enc:v1 envelope.
func (p *Provider) Decrypt(ciphertext string) (string, error) {
	if !secret.IsCiphertext(ciphertext) {
		return "", ErrMalformedCiphertext
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ciphertext, secret.CiphertextPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	gcm, err := p.aead()
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", ErrMalformedCiphertext
	}
	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, []byte(p.projectID))
	if err != nil {
		return "", fmt.Errorf("open ciphertext: %w", err)
	}
	return string(plain), nil
}

func (p *Provider) aead() (cipher.AEAD, error) {
	if p.projectID == "" {
		return nil, ErrNoProjectID
	}
	if p.keys == nil {
		return nil, fmt.Errorf("key source is not configured")
	}
	master, err := p.keys.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("load master key: %w", err)
	}
	key := make([]byte, keyLen)
	reader := hkdf.New(sha256.New, master, []byte(p.projectID), []byte(kdfInfo))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive project key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
