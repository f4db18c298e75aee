// Where: internal/domain/secret/provider.go
// What: Crypto provider contract for environment secrets.
// Why: Keep the resolver independent from the concrete cipher and key storage.
package secret

import "strings"

// CiphertextPrefix marks values stored in the encrypted envelope format.
const CiphertextPrefix = "enc:v1:"

// Provider encrypts and decrypts secret values for one project identity.
type Provider interface {
	ProjectID() string
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Factory creates a provider keyed by projectID.
type Factory func(projectID string) Provider

// IsCiphertext reports whether value uses the encrypted envelope.
func IsCiphertext(value string) bool {
	return strings.HasPrefix(value, CiphertextPrefix)
}
