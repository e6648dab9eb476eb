package copyjson

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unescape resolves the backslash escape grammar of the COPY text format.
// A fixed table maps b, f, n, r, t, v to their control characters; \xH and
// \xHH decode 1-2 hex digits; \0, \0O and \0OO decode a zero-led octal code;
// every other escaped character decodes to itself with the backslash
// stripped. A trailing lone backslash is dropped. The output is never
// re-scanned, so decoded characters cannot form new escapes.
func unescape(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(raw) {
			break
		}
		switch e := raw[i]; e {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'x':
			// \x requires at least one hex digit; bare \x is a plain x.
			if v, n := hexValue(raw[i+1:], 2); n > 0 {
				b.WriteRune(rune(v))
				i += n
			} else {
				b.WriteByte('x')
			}
		case '0':
			v, n := octalValue(raw[i+1:], 2)
			b.WriteRune(rune(v))
			i += n
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}

// decodeUnicodeEscapes resolves \uXXXX sequences (exactly four hex digits)
// that remain after unescape, combining surrogate pairs. Lone surrogates
// become U+FFFD and malformed sequences are kept literal. Sequences like
// the null marker remnant \N are untouched because only \u introduces an
// escape here.
func decodeUnicodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, n := decodeUnicodeEscape(s[i:])
		if n == 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		i += n
		if !utf16.IsSurrogate(r) {
			b.WriteRune(r)
			continue
		}
		if r2, n2 := decodeUnicodeEscape(s[i:]); n2 > 0 {
			if paired := utf16.DecodeRune(r, r2); paired != utf8.RuneError {
				b.WriteRune(paired)
				i += n2
				continue
			}
		}
		// WriteRune encodes a lone surrogate as U+FFFD.
		b.WriteRune(r)
	}
	return b.String()
}

// decodeUnicodeEscape reads one \uXXXX sequence at the start of s.
// It returns the code unit and the consumed length, or (0, 0) when s does
// not start with a complete sequence.
func decodeUnicodeEscape(s string) (rune, int) {
	if len(s) < 6 || s[0] != '\\' || s[1] != 'u' {
		return 0, 0
	}
	v, n := hexValue(s[2:], 4)
	if n != 4 {
		return 0, 0
	}
	return rune(v), 6
}

// hexValue parses up to max leading hex digits of s and returns the value
// and the number of digits consumed.
func hexValue(s string, max int) (int, int) {
	v, n := 0, 0
	for n < max && n < len(s) {
		d, ok := hexDigit(s[n])
		if !ok {
			break
		}
		v = v*16 + d
		n++
	}
	return v, n
}

// octalValue parses up to max leading octal digits of s and returns the
// value and the number of digits consumed.
func octalValue(s string, max int) (int, int) {
	v, n := 0, 0
	for n < max && n < len(s) && s[n] >= '0' && s[n] <= '7' {
		v = v*8 + int(s[n]-'0')
		n++
	}
	return v, n
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
