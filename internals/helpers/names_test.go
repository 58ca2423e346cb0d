package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePayer(t *testing.T) {
	assert.Equal(t, "janedoe", NormalizePayer("Jane Doe"))
	assert.Equal(t, NormalizePayer("Jane Doe"), NormalizePayer("jane   doe"))
	assert.Equal(t, NormalizePayer("Jane Doe"), NormalizePayer("\tJANE\nDOE "))
	assert.NotEqual(t, NormalizePayer("Jane Doe"), NormalizePayer("Jane Doer"))
	assert.Equal(t, "", NormalizePayer("   "))
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, "jose muller", FoldName("José Müller"))
	assert.Equal(t, "anne marie dupont", FoldName("  Anne-Marie   DUPONT "))
	assert.Equal(t, "o brien", FoldName("O' Brien"))
	assert.Equal(t, "", FoldName("123"))
}
