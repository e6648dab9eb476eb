package copyjson

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// timestampPattern matches the surface form COPY emits for timestamp
// without time zone columns: date, space, time, optional fraction of up
// to six digits.
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d{1,6})?$`)

// timestampLayout parses the whole-second form; time.Parse accepts an
// additional fractional second even when the layout has none.
const timestampLayout = "2006-01-02 15:04:05"

// convert turns one raw field into its typed value. The field has already
// been isolated by the tab tokenizer and is never the null marker, which
// the record decoder handles before conversion.
func (c column) convert(raw string) (any, error) {
	if c.array {
		return c.typ.convertArray(raw)
	}
	return c.typ.convertScalar(raw)
}

// convertScalar converts one field into the typed value for ct.
func (ct columnType) convertScalar(raw string) (any, error) {
	switch ct {
	case columnTypeInteger:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrMalformedNumber, raw)
		}
		return v, nil
	case columnTypeReal:
		// ParseFloat accepts the Infinity and NaN spellings COPY emits.
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedNumber, raw)
		}
		return v, nil
	case columnTypeBoolean:
		// Only "t" is true; everything else is false, never an error.
		return raw == "t", nil
	case columnTypeTimestamp:
		return formatTimestamp(raw), nil
	default:
		return decodeUnicodeEscapes(unescape(raw)), nil
	}
}

// formatTimestamp rewrites a COPY timestamp into ISO8601 form with a T
// separator. A non-zero fraction is emitted at the canonical six-digit
// width, a zero fraction is omitted. Values outside the expected surface
// form pass through verbatim rather than failing the record.
func formatTimestamp(raw string) string {
	if !timestampPattern.MatchString(raw) {
		return raw
	}
	t, err := time.Parse(timestampLayout, raw)
	if err != nil {
		return raw
	}
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02T15:04:05.000000")
}
