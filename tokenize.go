package mdem

import "strings"

type tokenizer struct {
	tokens  []Token
	text    strings.Builder
	open    bool // last token is a run still waiting for its following character
	prev    CharKind
	escaped bool
}

// Tokenize splits markdown into text segments and delimiter runs.
//
// Each run records the class of the character just before and just after it;
// the start and end of the input count as whitespace. An unescaped backslash
// is dropped and makes the next character plain text of kind Other. Tokenize
// never fails; empty input yields no tokens.
func Tokenize(markdown string) []Token {
	tz := tokenizer{prev: Whitespace}
	for _, r := range markdown {
		tz.feed(r)
	}
	return tz.finish()
}

func (tz *tokenizer) feed(r rune) {
	switch {
	case isDelimiter(r) && !tz.escaped:
		tz.delimiter(byte(r))
	case r == '\\' && !tz.escaped:
		tz.escaped = true
	default:
		tz.char(r)
	}
}

func (tz *tokenizer) delimiter(c byte) {
	if tz.open {
		top := &tz.tokens[len(tz.tokens)-1]
		if top.Delim == c {
			top.Length++
			tz.prev = Punctuation
			return
		}
		top.FollowedBy = Classify(rune(c))
	}
	tz.flushText()
	tz.tokens = append(tz.tokens, Token{
		Kind:       tokenRun,
		Delim:      c,
		Length:     1,
		PrecededBy: tz.prev,
	})
	tz.open = true
	tz.prev = Punctuation
}

func (tz *tokenizer) char(r rune) {
	if tz.open {
		tz.tokens[len(tz.tokens)-1].FollowedBy = Classify(r)
		tz.open = false
	}
	tz.text.WriteRune(r)
	if tz.escaped {
		tz.prev = Other
		tz.escaped = false
		return
	}
	tz.prev = Classify(r)
}

func (tz *tokenizer) flushText() {
	if tz.text.Len() == 0 {
		return
	}
	tz.tokens = append(tz.tokens, textToken(tz.text.String()))
	tz.text.Reset()
}

func (tz *tokenizer) finish() []Token {
	tz.flushText()
	if tz.open {
		tz.tokens[len(tz.tokens)-1].FollowedBy = Whitespace
		tz.open = false
	}
	return tz.tokens
}
