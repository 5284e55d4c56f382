package mdem

import "unicode"

// Classify reports the flanking class of r.
//
// Whitespace follows the \s class of ECMAScript regular expressions: Unicode
// White_Space without U+0085, plus U+FEFF. Punctuation is any rune in the
// Unicode P or S categories.
func Classify(r rune) CharKind {
	switch {
	case isWhitespace(r):
		return Whitespace
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return Punctuation
	default:
		return Other
	}
}

func isWhitespace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r)
}

func isDelimiter(r rune) bool {
	return r == '*' || r == '_'
}
