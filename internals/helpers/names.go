package helper

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var reNonLetter = regexp.MustCompile(`[^a-z ]+`)

// NormalizePayer is the matching key for payer names: lowercase with every
// whitespace rune removed. "Jane Doe" and "jane   doe" share a key.
func NormalizePayer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

// FoldName lowercases, strips diacritics (é → e) and drops everything that is
// not an ASCII letter, keeping single spaces between words.
func FoldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsSpace(r) || r == '-' {
			r = ' '
		}
		buf = append(buf, r)
	}

	s = reNonLetter.ReplaceAllString(string(buf), "")
	return strings.Join(strings.Fields(s), " ")
}
