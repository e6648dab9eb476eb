package copyjson

import (
	"strings"
)

// arrayNullLiteral marks a null element inside an array literal. It only
// applies to non-text element types; for text arrays NULL is ordinary text.
const arrayNullLiteral = "NULL"

// convertArray parses a {...} array literal into its typed elements.
// Text arrays carry backslash escaping that is first rewritten to
// doubled-quote escaping so the generic tokenizer can consume it; other
// element types tokenize as-is and map the NULL literal to a null value.
func (ct columnType) convertArray(raw string) ([]any, error) {
	inner := strings.TrimPrefix(raw, "{")
	inner = strings.TrimSuffix(inner, "}")

	text := ct == columnTypeText
	if text {
		inner = rewriteTextArray(inner)
	}

	elems := splitArrayElements(inner, text)
	values := make([]any, 0, len(elems))
	for _, e := range elems {
		if !text && e == arrayNullLiteral {
			values = append(values, nil)
			continue
		}
		v, err := ct.convertScalar(e)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// rewriteTextArray converts backslash escaping inside a text array literal
// to doubled-quote escaping: \" becomes "" and any other \c becomes c.
func rewriteTextArray(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		if s[i] == '"' {
			b.WriteString(`""`)
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// splitArrayElements tokenizes the interior of an array literal on commas.
// A double quote toggles quoted mode, where commas are literal and a
// doubled quote yields one literal quote. When escape is set a backslash
// makes the following character literal. Quote characters are stripped
// from the tokens. Empty input yields no tokens; an empty field between
// two commas yields an empty token, the general tokenizer convention.
func splitArrayElements(s string, escape bool) []string {
	if s == "" {
		return nil
	}

	var (
		tokens []string
		cur    strings.Builder
		quoted bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escape && c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == '"':
			if quoted && i+1 < len(s) && s[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			quoted = !quoted
		case c == ',' && !quoted:
			tokens = append(tokens, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(tokens, cur.String())
}
