package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecord() map[string]string {
	return map[string]string{
		"family_id": "7d2b3c1e-1111-2222-3333-444455556666",
		"new_payer": "Jane Doe",
		"new_iban":  "DE89370400440532013000",
		"new_bic":   "",
	}
}

func TestHasher_Deterministic(t *testing.T) {
	h := NewHasher("v2", "family_id", "new_payer", "new_iban", "new_bic")

	a := h.ComputeHash(sampleRecord())
	b := h.ComputeHash(sampleRecord())

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
}

func TestHasher_EveryFieldMatters(t *testing.T) {
	fields := []string{"family_id", "new_payer", "new_iban", "new_bic"}
	h := NewHasher("v2", fields...)
	base := h.ComputeHash(sampleRecord())
	assert.Equal(t, "v2", h.Version())

	for _, field := range fields {
		rec := sampleRecord()
		rec[field] = rec[field] + "x"
		assert.NotEqual(t, base, h.ComputeHash(rec), field)
	}
}

func TestHasher_MissingFieldIsEmpty(t *testing.T) {
	h := NewHasher("v2", "a", "b")

	assert.Equal(t, "a:x|b:", h.Canonical(map[string]string{"a": "x"}))
	assert.Equal(t,
		h.ComputeHash(map[string]string{"a": "x"}),
		h.ComputeHash(map[string]string{"a": "x", "b": ""}),
	)
}

func TestHasher_IgnoresFieldsOutsideList(t *testing.T) {
	h := NewHasher("v2", "a")

	assert.Equal(t,
		h.ComputeHash(map[string]string{"a": "x"}),
		h.ComputeHash(map[string]string{"a": "x", "status": "approved"}),
	)
}

func TestHasher_DelimiterInjection(t *testing.T) {
	h := NewHasher("v2", "a", "b")

	left := map[string]string{"a": "x|b:y", "b": ""}
	right := map[string]string{"a": "x", "b": "y|b:"}

	assert.NotEqual(t, h.Canonical(left), h.Canonical(right))
	assert.NotEqual(t, h.ComputeHash(left), h.ComputeHash(right))
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher("v2", "family_id", "new_payer")
	rec := sampleRecord()
	stored := h.ComputeHash(rec)

	ok := h.Verify(rec, stored)
	assert.True(t, ok.Valid)
	assert.Equal(t, stored, ok.ComputedHash)

	rec["new_payer"] = "Mallory"
	bad := h.Verify(rec, stored)
	assert.False(t, bad.Valid)
	assert.Equal(t, stored, bad.StoredHash)
	assert.NotEqual(t, stored, bad.ComputedHash)
}

func TestKeyedHasher_NeedsTheKey(t *testing.T) {
	fields := []string{"family_id", "new_payer", "new_iban", "new_bic"}
	plain := NewHasher("v2", fields...)
	keyed := NewKeyedHasher("v3", []byte("key-one"), fields...)
	other := NewKeyedHasher("v3", []byte("key-two"), fields...)
	rec := sampleRecord()

	stored := keyed.ComputeHash(rec)
	assert.Len(t, stored, 64)
	assert.NotEqual(t, plain.ComputeHash(rec), stored)
	assert.True(t, keyed.Verify(rec, stored).Valid)
	assert.False(t, other.Verify(rec, stored).Valid)
	assert.Equal(t, plain.Canonical(rec), keyed.Canonical(rec))
}
