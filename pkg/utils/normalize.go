package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize canonicalizes a caller-supplied name: surrounding whitespace is
// trimmed, inner whitespace runs collapse to one space and the first letter
// of every word is upper-cased. The rest of each word is kept as is.
// Only ASCII whitespace separates words; a no-break space stays inside one.
// A nil input yields nil.
func Normalize(input *string) *string {
	if input == nil {
		return nil
	}
	out := NormalizeString(*input)
	return &out
}

// NormalizeString is Normalize for plain strings.
func NormalizeString(input string) string {
	words := strings.FieldsFunc(input, isASCIISpace)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
