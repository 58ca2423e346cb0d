package secure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskIBAN_Example(t *testing.T) {
	got := MaskIBAN(strPtr("DE89 3704 0044 0532 0130 00"))
	require.NotNil(t, got)
	assert.Equal(t, "DE****000", *got)
}

func TestMaskIBAN_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *string
	}{
		{"nil", nil, nil},
		{"empty", strPtr(""), nil},
		{"whitespace only", strPtr("   \t "), nil},
		{"four chars", strPtr("ABCD"), nil},
		{"four chars after stripping", strPtr(" a b c d "), nil},
		{"five chars", strPtr("abcde"), strPtr("AB****CDE")},
		{"lowercase", strPtr("nl91abna0417164300"), strPtr("NL****300")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskIBAN(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestMaskIBAN_FixedLengthAndHidesMiddle(t *testing.T) {
	for _, iban := range []string{
		"DE89370400440532013000",
		"GB29NWBK60161331926819",
		"FR1420041010050500013M02606",
		"12345",
	} {
		got := MaskIBAN(strPtr(iban))
		require.NotNil(t, got, iban)
		assert.Len(t, *got, 9)

		middle := iban[2 : len(iban)-3]
		if len(middle) > 0 {
			assert.False(t, strings.Contains(*got, middle), iban)
		}
	}
}

func TestMaskBIC_AlwaysNil(t *testing.T) {
	for _, in := range []*string{nil, strPtr(""), strPtr("COBADEFFXXX"), strPtr("DEUTDEFF")} {
		assert.Nil(t, MaskBIC(in))
	}
}

func TestValidIBAN(t *testing.T) {
	assert.True(t, ValidIBAN("DE89 3704 0044 0532 0130 00"))
	assert.True(t, ValidIBAN("gb29nwbk60161331926819"))
	assert.False(t, ValidIBAN("DE89 3704 0044 0532 0130 01"))
	assert.False(t, ValidIBAN("ABCD"))
	assert.False(t, ValidIBAN(""))
}

func TestValidBIC(t *testing.T) {
	assert.True(t, ValidBIC("COBADEFFXXX"))
	assert.True(t, ValidBIC("deutdeff"))
	assert.False(t, ValidBIC("DEUT"))
}
