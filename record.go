package copyjson

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field is one decoded column value paired with its declared name.
// Value is nil for SQL NULL, otherwise int64, float64, bool, string, or
// []any of those kinds for array columns.
type Field struct {
	Name  string
	Value any
}

// Record is one decoded row: its fields in declaration order.
type Record []Field

// DecodeLine decodes one COPY data line into a Record. The line splits on
// tabs with no quoting at this level; the format escapes embedded tabs
// before export, so a raw tab is always a delimiter. Tokens zip
// positionally against the declared columns up to the shorter of the two,
// and surplus on either side is dropped. A token equal to the null marker
// decodes to a null field; everything else goes through the column's
// converter. The first conversion failure aborts the record with an error
// naming the column.
func (s *Schema) DecodeLine(line string) (Record, error) {
	tokens := strings.Split(line, fieldDelimiter)
	n := min(len(tokens), len(s.columns))

	record := make(Record, 0, n)
	for i := 0; i < n; i++ {
		col := s.columns[i]
		if tokens[i] == nullMarker {
			record = append(record, Field{Name: col.name})
			continue
		}
		v, err := col.convert(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.name, err)
		}
		record = append(record, Field{Name: col.name, Value: v})
	}
	return record, nil
}

// MarshalJSON renders the record as a single-line JSON object with keys in
// declaration order.
func (r Record) MarshalJSON() ([]byte, error) {
	return r.appendJSON(nil), nil
}

// appendJSON appends the record's JSON object rendering to dst.
func (r Record) appendJSON(dst []byte) []byte {
	dst = append(dst, '{')
	for i, f := range r {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendJSONString(dst, f.Name)
		dst = append(dst, ':')
		dst = appendJSONValue(dst, f.Value)
	}
	return append(dst, '}')
}

// appendJSONValue appends the JSON rendering of one decoded value.
func appendJSONValue(dst []byte, v any) []byte {
	switch v := v.(type) {
	case nil:
		return append(dst, "null"...)
	case bool:
		if v {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case int64:
		return strconv.AppendInt(dst, v, 10)
	case float64:
		return appendJSONFloat(dst, v)
	case string:
		return appendJSONString(dst, v)
	case []any:
		dst = append(dst, '[')
		for i, e := range v {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONValue(dst, e)
		}
		return append(dst, ']')
	default:
		// Not produced by the decoder; covers caller-built records.
		b, _ := json.Marshal(v)
		return append(dst, b...)
	}
}

// appendJSONFloat formats finite reals the way encoding/json does and
// emits bare Infinity, -Infinity and NaN tokens for non-finite values,
// which encoding/json would refuse.
func appendJSONFloat(dst []byte, f float64) []byte {
	switch {
	case math.IsInf(f, 1):
		return append(dst, "Infinity"...)
	case math.IsInf(f, -1):
		return append(dst, "-Infinity"...)
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	}

	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// strip the zero padding from a two-digit negative exponent
		if n := len(dst); n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

const hexTable = "0123456789abcdef"

// appendJSONString appends s as a JSON string without HTML escaping, so
// text passes through literally. Only the quote, the backslash, control
// characters, and the line separators U+2028/U+2029 are escaped; all other
// Unicode is emitted as-is. Invalid UTF-8 becomes U+FFFD.
func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\u2028', '\u2029':
			dst = append(dst, '\\', 'u', '2', '0', '2', hexTable[r&0xf])
		default:
			if r < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', hexTable[r>>4], hexTable[r&0xf])
			} else {
				dst = utf8.AppendRune(dst, r)
			}
		}
	}
	return append(dst, '"')
}
