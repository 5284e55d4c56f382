package mdem

import (
	"strconv"
	"strings"
)

// CharKind classifies the character next to a delimiter run for flanking.
type CharKind uint8

const (
	// Whitespace covers Unicode whitespace and the start and end of the input.
	Whitespace CharKind = iota
	// Punctuation covers Unicode punctuation and symbols, including * and _.
	Punctuation
	// Other is any character in neither class. Escaped characters are Other.
	Other
)

func (k CharKind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case Punctuation:
		return "punctuation"
	case Other:
		return "other"
	}
	return "CharKind(" + strconv.Itoa(int(k)) + ")"
}

type tokenKind uint8

// TokenKind is the exported alias of tokenKind for tooling.
type TokenKind = tokenKind

const (
	tokenText tokenKind = iota
	tokenRun
)

const (
	// TokenText is a run of plain characters or already rendered markup.
	TokenText TokenKind = tokenText
	// TokenRun is a maximal delimiter run of * or _.
	TokenRun TokenKind = tokenRun
)

// Token is either a text segment or a delimiter run, selected by Kind.
//
// Text is only meaningful for TokenText. Delim, Length, PrecededBy and
// FollowedBy are only meaningful for TokenRun.
type Token struct {
	Kind       TokenKind
	Text       string
	Delim      byte
	Length     int
	PrecededBy CharKind
	FollowedBy CharKind
}

func textToken(s string) Token {
	return Token{Kind: tokenText, Text: s}
}

// Literal returns the token as it appears in output: the text itself, or the
// delimiter repeated Length times.
func (t Token) Literal() string {
	switch t.Kind {
	case tokenText:
		return t.Text
	case tokenRun:
		return strings.Repeat(string(t.Delim), t.Length)
	}
	return ""
}

// String is a debug form, e.g. text("foo") or run(*x2 whitespace|other).
func (t Token) String() string {
	switch t.Kind {
	case tokenText:
		return "text(" + strconv.Quote(t.Text) + ")"
	case tokenRun:
		return "run(" + string(t.Delim) + "x" + strconv.Itoa(t.Length) + " " +
			t.PrecededBy.String() + "|" + t.FollowedBy.String() + ")"
	}
	return "token(" + strconv.Itoa(int(t.Kind)) + ")"
}
