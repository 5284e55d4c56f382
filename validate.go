package mdem

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not valid UTF-8 or looks binary:
// it contains NUL, or at least 2% of a sample of 64 bytes or more are control
// characters other than tab, LF, vertical tab, form feed and CR.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	var v validator
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if err := v.addRune(r, size); err != nil {
			return err
		}
		src = src[size:]
	}
	return nil
}

// validator tracks the control character ratio across the lines of one
// document.
type validator struct {
	total   int
	control int
	scratch strings.Builder
}

func (v *validator) reset() {
	v.total = 0
	v.control = 0
	v.scratch.Reset()
}

func (v *validator) addRune(r rune, size int) error {
	if r == utf8.RuneError && size == 1 {
		return ErrInvalidUTF8
	}
	if r == 0 {
		return ErrBinaryInput
	}
	v.total += size
	if isControlRune(r) {
		v.control++
		if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
			return ErrBinaryInput
		}
	}
	return nil
}

// addBytes counts n bytes that contain no control characters.
func (v *validator) addBytes(n int) {
	v.total += n
}

// checkLine validates line in strict mode. Otherwise it returns line with
// invalid bytes and control characters removed.
func (v *validator) checkLine(line string, strict bool) (string, error) {
	if strict {
		for i := 0; i < len(line); {
			r, size := utf8.DecodeRuneInString(line[i:])
			if err := v.addRune(r, size); err != nil {
				return "", err
			}
			i += size
		}
		return line, nil
	}
	if utf8.ValidString(line) && !strings.ContainsFunc(line, isControlRune) {
		return line, nil
	}
	v.scratch.Reset()
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		i += size
		if (r == utf8.RuneError && size == 1) || isControlRune(r) {
			continue
		}
		v.scratch.WriteRune(r)
	}
	return v.scratch.String(), nil
}

// isControlRune reports C0 controls and DEL. Tab through CR (0x09-0x0D) are
// whitespace and not counted.
func isControlRune(r rune) bool {
	if r >= '\t' && r <= '\r' {
		return false
	}
	return r < 0x20 || r == 0x7F
}
