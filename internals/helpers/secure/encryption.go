// Package secure holds the bank-data protection primitives used by the
// finance features: field encryption, integrity hashing and IBAN/BIC masking.
package secure

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var (
	// ErrConfiguration is returned when no usable key is available.
	ErrConfiguration = errors.New("secure: encryption key is not configured")
	// ErrDecryption is returned for malformed or tampered ciphertext.
	ErrDecryption = errors.New("secure: ciphertext is malformed or has been tampered with")
)

// KeySize is the required key length in bytes.
const KeySize = chacha20poly1305.KeySize

// ciphertextPrefix marks the envelope layout: nonce || sealed || tag, base64url.
const ciphertextPrefix = "v1:"

// integrityKeyInfo separates the HMAC key from the encryption key.
const integrityKeyInfo = "sepaku integrity hmac v3"

// Cipher encrypts single string fields with XChaCha20-Poly1305. Every call
// uses a fresh random nonce, so encrypting the same value twice yields
// different ciphertexts.
type Cipher struct {
	aead         cipher.AEAD
	integrityKey []byte
}

// NewCipher builds a Cipher from a raw 32 byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrConfiguration, KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	mac := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(integrityKeyInfo)), mac); err != nil {
		return nil, fmt.Errorf("%w: derive integrity key: %v", ErrConfiguration, err)
	}
	return &Cipher{aead: aead, integrityKey: mac}, nil
}

// IntegrityKey is the HMAC key for record hashes, derived from the
// encryption key with HKDF-SHA256.
func (c *Cipher) IntegrityKey() []byte {
	out := make([]byte, len(c.integrityKey))
	copy(out, c.integrityKey)
	return out
}

// NewCipherFromString accepts the key as base64 (std or url, padded or not)
// or hex. An empty string is a configuration error, never a generated key.
func NewCipherFromString(encoded string) (*Cipher, error) {
	key, err := ParseKey(encoded)
	if err != nil {
		return nil, err
	}
	return NewCipher(key)
}

// NewEphemeralCipher generates a throwaway key. Data encrypted with it cannot
// be read after the process exits; only for tests and local development.
func NewEphemeralCipher() (*Cipher, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("secure: generate ephemeral key: %w", err)
	}
	return NewCipher(key)
}

// ParseKey decodes a configured key string into KeySize bytes.
func ParseKey(encoded string) ([]byte, error) {
	s := strings.TrimSpace(encoded)
	if s == "" {
		return nil, ErrConfiguration
	}

	decoders := []func(string) ([]byte, error){
		base64.StdEncoding.DecodeString,
		base64.RawStdEncoding.DecodeString,
		base64.URLEncoding.DecodeString,
		base64.RawURLEncoding.DecodeString,
		hex.DecodeString,
	}
	for _, decode := range decoders {
		if key, err := decode(s); err == nil && len(key) == KeySize {
			return key, nil
		}
	}
	return nil, fmt.Errorf("%w: key must decode to %d bytes (base64 or hex)", ErrConfiguration, KeySize)
}

// Encrypt returns nil for nil or empty input.
func (c *Cipher) Encrypt(plaintext *string) (*string, error) {
	if plaintext == nil || *plaintext == "" {
		return nil, nil
	}

	ns := c.aead.NonceSize()
	buf := make([]byte, ns, ns+len(*plaintext)+c.aead.Overhead())
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("secure: read nonce: %w", err)
	}
	sealed := c.aead.Seal(buf, buf[:ns], []byte(*plaintext), nil)

	out := ciphertextPrefix + base64.RawURLEncoding.EncodeToString(sealed)
	return &out, nil
}

// Decrypt returns nil for nil or empty input and ErrDecryption for anything
// that does not authenticate under the current key.
func (c *Cipher) Decrypt(ciphertext *string) (*string, error) {
	if ciphertext == nil || *ciphertext == "" {
		return nil, nil
	}

	s := *ciphertext
	if !strings.HasPrefix(s, ciphertextPrefix) {
		return nil, fmt.Errorf("%w: unknown envelope", ErrDecryption)
	}
	raw, err := base64.RawURLEncoding.DecodeString(s[len(ciphertextPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	ns := c.aead.NonceSize()
	if len(raw) < ns+c.aead.Overhead() {
		return nil, fmt.Errorf("%w: too short", ErrDecryption)
	}
	plain, err := c.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	out := string(plain)
	return &out, nil
}
