package secure

import (
	"math/big"
	"regexp"
	"strings"
	"unicode"
)

const (
	maskedIBANHead  = 2
	maskedIBANTail  = 3
	maskedIBANStars = "****"
	minMaskableIBAN = maskedIBANHead + maskedIBANTail
)

// MaskIBAN turns an IBAN into its stored display form "XX****XXX".
// Whitespace is removed and letters uppercased first; anything shorter than
// five characters yields nil. The result cannot be turned back into the IBAN.
func MaskIBAN(raw *string) *string {
	if raw == nil {
		return nil
	}
	rs := []rune(NormalizeIBAN(*raw))
	if len(rs) < minMaskableIBAN {
		return nil
	}
	out := string(rs[:maskedIBANHead]) + maskedIBANStars + string(rs[len(rs)-maskedIBANTail:])
	return &out
}

// MaskBIC always returns nil: a BIC is never kept, in full or masked.
func MaskBIC(_ *string) *string {
	return nil
}

// NormalizeIBAN removes every whitespace rune and uppercases the rest.
func NormalizeIBAN(raw string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw))
}

var (
	reIBANShape = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	reBICShape  = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	ninetySeven = big.NewInt(97)
)

// ValidIBAN checks shape and the ISO 13616 mod-97 checksum.
func ValidIBAN(raw string) bool {
	s := NormalizeIBAN(raw)
	if !reIBANShape.MatchString(s) {
		return false
	}
	rearranged := s[4:] + s[:4]

	var digits strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		default:
			digits.WriteString(big.NewInt(int64(r-'A') + 10).String())
		}
	}

	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, ninetySeven).Int64() == 1
}

// ValidBIC checks the ISO 9362 shape (8 or 11 characters).
func ValidBIC(raw string) bool {
	return reBICShape.MatchString(NormalizeIBAN(raw))
}
