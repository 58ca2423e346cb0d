package secure

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i + 1)
	}
	return key
}

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher(testKey())
	require.NoError(t, err)
	return c
}

func TestCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	for _, in := range []string{
		"Jane Doe",
		"DE89370400440532013000",
		"2024-09-01",
		"ümlaut & spéciale | chars",
		strings.Repeat("x", 4096),
	} {
		enc, err := c.Encrypt(strPtr(in))
		require.NoError(t, err)
		require.NotNil(t, enc)
		assert.NotContains(t, *enc, in)
		assert.True(t, strings.HasPrefix(*enc, "v1:"))

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		require.NotNil(t, dec)
		assert.Equal(t, in, *dec)
	}
}

func TestCipher_NilAndEmpty(t *testing.T) {
	c := newTestCipher(t)

	enc, err := c.Encrypt(nil)
	assert.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = c.Encrypt(strPtr(""))
	assert.NoError(t, err)
	assert.Nil(t, enc)

	dec, err := c.Decrypt(nil)
	assert.NoError(t, err)
	assert.Nil(t, dec)

	dec, err = c.Decrypt(strPtr(""))
	assert.NoError(t, err)
	assert.Nil(t, dec)
}

func TestCipher_FreshNoncePerCall(t *testing.T) {
	c := newTestCipher(t)

	a, err := c.Encrypt(strPtr("same value"))
	require.NoError(t, err)
	b, err := c.Encrypt(strPtr("same value"))
	require.NoError(t, err)

	assert.NotEqual(t, *a, *b)
}

func TestCipher_TamperedCiphertext(t *testing.T) {
	c := newTestCipher(t)
	enc, err := c.Encrypt(strPtr("Jane Doe"))
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(*enc, "v1:"))
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := "v1:" + base64.RawURLEncoding.EncodeToString(raw)

	_, err = c.Decrypt(&tampered)
	assert.ErrorIs(t, err, ErrDecryption)

	for _, bad := range []string{"plain text", "v1:***", "v1:AAAA"} {
		_, err = c.Decrypt(strPtr(bad))
		assert.ErrorIs(t, err, ErrDecryption, bad)
	}
}

func TestCipher_WrongKey(t *testing.T) {
	c := newTestCipher(t)
	enc, err := c.Encrypt(strPtr("Jane Doe"))
	require.NoError(t, err)

	other, err := NewEphemeralCipher()
	require.NoError(t, err)

	_, err = other.Decrypt(enc)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestNewCipherFromString(t *testing.T) {
	key := testKey()

	for name, encoded := range map[string]string{
		"base64 std": base64.StdEncoding.EncodeToString(key),
		"base64 url": base64.RawURLEncoding.EncodeToString(key),
		"hex":        hex.EncodeToString(key),
		"padded ws":  "  " + base64.StdEncoding.EncodeToString(key) + "\n",
	} {
		t.Run(name, func(t *testing.T) {
			c, err := NewCipherFromString(encoded)
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}

	_, err := NewCipherFromString("")
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewCipherFromString(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewCipher([]byte("short"))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestCipher_IntegrityKey(t *testing.T) {
	a := newTestCipher(t)
	b := newTestCipher(t)
	assert.Len(t, a.IntegrityKey(), 32)
	assert.Equal(t, a.IntegrityKey(), b.IntegrityKey())
	assert.NotEqual(t, testKey(), a.IntegrityKey())

	other, err := NewEphemeralCipher()
	require.NoError(t, err)
	assert.NotEqual(t, a.IntegrityKey(), other.IntegrityKey())
}
