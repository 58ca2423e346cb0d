package secure

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const (
	hashFieldDelimiter = "|"
	hashPairSeparator  = ":"
)

// Hasher computes a SHA-256, or an HMAC-SHA256 when keyed, over a fixed,
// ordered list of field names. The field list and the keying are part of the
// hash version: changing either requires a new version.
type Hasher struct {
	version string
	fields  []string
	key     []byte
}

// Verification is the outcome of re-hashing a stored record.
type Verification struct {
	Valid        bool   `json:"valid"`
	StoredHash   string `json:"stored_hash"`
	ComputedHash string `json:"computed_hash"`
}

func NewHasher(version string, fields ...string) *Hasher {
	fs := make([]string, len(fields))
	copy(fs, fields)
	return &Hasher{version: version, fields: fs}
}

// NewKeyedHasher hashes with HMAC-SHA256 so a stored hash cannot be used to
// confirm guesses of the plaintext without the key.
func NewKeyedHasher(version string, key []byte, fields ...string) *Hasher {
	h := NewHasher(version, fields...)
	h.key = make([]byte, len(key))
	copy(h.key, key)
	return h
}

func (h *Hasher) Version() string { return h.version }

// Canonical renders "name:value|name:value|..." in field-list order.
// Missing fields render as empty values. Delimiters inside values are escaped
// so two different records can never render the same string.
func (h *Hasher) Canonical(values map[string]string) string {
	var b strings.Builder
	for i, name := range h.fields {
		if i > 0 {
			b.WriteString(hashFieldDelimiter)
		}
		b.WriteString(name)
		b.WriteString(hashPairSeparator)
		b.WriteString(escapeHashValue(values[name]))
	}
	return b.String()
}

// ComputeHash returns the 64 char lowercase hex digest.
func (h *Hasher) ComputeHash(values map[string]string) string {
	canonical := []byte(h.Canonical(values))
	if len(h.key) == 0 {
		sum := sha256.Sum256(canonical)
		return hex.EncodeToString(sum[:])
	}
	mac := hmac.New(sha256.New, h.key)
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *Hasher) Verify(values map[string]string, storedHash string) Verification {
	computed := h.ComputeHash(values)
	stored := strings.ToLower(strings.TrimSpace(storedHash))
	return Verification{
		Valid:        subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1,
		StoredHash:   storedHash,
		ComputedHash: computed,
	}
}

var hashValueEscaper = strings.NewReplacer(`\`, `\\`, hashFieldDelimiter, `\`+hashFieldDelimiter)

func escapeHashValue(v string) string {
	return hashValueEscaper.Replace(v)
}
