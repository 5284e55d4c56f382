package mdem

import (
	"slices"
	"strings"
)

const (
	openEm      = "<em>"
	closeEm     = "</em>"
	openStrong  = "<strong>"
	closeStrong = "</strong>"
)

// Resolve collapses matching delimiter runs in tokens into <em> and <strong>
// markup and returns the reduced slice. The input slice is reused.
//
// Each run is tried as a closer from left to right. For a closer the nearest
// preceding run that can open is taken, strong emphasis first. The matched
// span becomes one text token, flanked by whatever is left of the two runs,
// and scanning resumes right after the new text. Runs that never match stay
// in the result and render literally.
//
// The backward scan for every closer makes this quadratic in the number of
// tokens. That is fine for a paragraph but not for arbitrarily large input.
func Resolve(tokens []Token) []Token {
	for end := 0; end < len(tokens); end++ {
		if tokens[end].Kind != tokenRun {
			continue
		}
		for start := end - 1; start >= 0; start-- {
			opener, closer := tokens[start], tokens[end]
			if opener.Kind != tokenRun || !compatible(opener, closer) {
				continue
			}
			if canOpenStrong(opener) && canCloseStrong(closer) {
				tokens = collapse(tokens, start, end, 2, openStrong, closeStrong)
				end = start
				break
			}
			if canOpen(opener) && canClose(closer) {
				tokens = collapse(tokens, start, end, 1, openEm, closeEm)
				end = start
				break
			}
		}
	}
	return tokens
}

// collapse replaces tokens[start:end+1] with the leftover opener run, the
// rendered span and the leftover closer run. Leftover runs keep their
// flanking context.
func collapse(tokens []Token, start, end, n int, openTag, closeTag string) []Token {
	opener, closer := tokens[start], tokens[end]

	var b strings.Builder
	b.WriteString(openTag)
	for _, t := range tokens[start+1 : end] {
		b.WriteString(t.Literal())
	}
	b.WriteString(closeTag)

	repl := make([]Token, 0, 3)
	if opener.Length > n {
		opener.Length -= n
		repl = append(repl, opener)
	}
	repl = append(repl, textToken(b.String()))
	if closer.Length > n {
		closer.Length -= n
		repl = append(repl, closer)
	}
	return slices.Replace(tokens, start, end+1, repl...)
}

func leftFlanking(t Token) bool {
	return t.FollowedBy != Whitespace &&
		(t.FollowedBy != Punctuation || t.PrecededBy == Whitespace || t.PrecededBy == Punctuation)
}

func rightFlanking(t Token) bool {
	return t.PrecededBy != Whitespace &&
		(t.PrecededBy != Punctuation || t.FollowedBy == Whitespace || t.FollowedBy == Punctuation)
}

// canOpen applies the intraword rule: _ may not open inside a word.
func canOpen(t Token) bool {
	if t.Kind != tokenRun {
		return false
	}
	switch t.Delim {
	case '*':
		return leftFlanking(t)
	case '_':
		return leftFlanking(t) && (!rightFlanking(t) || t.PrecededBy == Punctuation)
	}
	return false
}

func canClose(t Token) bool {
	if t.Kind != tokenRun {
		return false
	}
	switch t.Delim {
	case '*':
		return rightFlanking(t)
	case '_':
		return rightFlanking(t) && (!leftFlanking(t) || t.FollowedBy == Punctuation)
	}
	return false
}

func canOpenStrong(t Token) bool {
	return t.Length >= 2 && canOpen(t)
}

func canCloseStrong(t Token) bool {
	return t.Length >= 2 && canClose(t)
}

// compatible reports whether opener and closer may pair. When either run can
// both open and close, the sum of the lengths must not be a multiple of 3
// unless both lengths are.
func compatible(opener, closer Token) bool {
	if opener.Kind != tokenRun || closer.Kind != tokenRun || opener.Delim != closer.Delim {
		return false
	}
	if (canOpen(opener) && canClose(opener)) || (canOpen(closer) && canClose(closer)) {
		sum := opener.Length + closer.Length
		return sum%3 != 0 || (opener.Length%3 == 0 && closer.Length%3 == 0)
	}
	return true
}
