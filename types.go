package copyjson

// Wire format constants for the COPY text protocol
const (
	// fieldDelimiter separates fields within a data line
	fieldDelimiter = "\t"
	// nullMarker is the unquoted sequence COPY emits for SQL NULL
	nullMarker = `\N`
	// endOfDataMarker terminates a COPY data stream
	endOfDataMarker = `\.`
)

// Processing constants (rows-based)
const (
	// DefaultChunkSize is the default number of rows per sink batch
	DefaultChunkSize = 1000
	// MinChunkSize is the minimum allowed rows per batch
	MinChunkSize = 1
	// DefaultMaxLineSize is the default upper bound for a single input line
	DefaultMaxLineSize = 16 * 1024 * 1024
)

// columnType represents the normalized column type
type columnType int

const (
	// columnTypeText represents textual values (also the fallback for
	// declared types without a dedicated conversion, such as uuid or json)
	columnTypeText columnType = iota
	// columnTypeInteger represents signed 64-bit integer values
	columnTypeInteger
	// columnTypeReal represents 64-bit floating point values
	columnTypeReal
	// columnTypeBoolean represents boolean values
	columnTypeBoolean
	// columnTypeTimestamp represents timestamps without time zone
	columnTypeTimestamp
)

// typeNameText and friends are the canonical names used in messages.
const (
	typeNameText      = "text"
	typeNameInteger   = "integer"
	typeNameReal      = "real"
	typeNameBoolean   = "boolean"
	typeNameTimestamp = "timestamp"
)

// String returns the canonical name of the column type
func (ct columnType) String() string {
	switch ct {
	case columnTypeText:
		return typeNameText
	case columnTypeInteger:
		return typeNameInteger
	case columnTypeReal:
		return typeNameReal
	case columnTypeBoolean:
		return typeNameBoolean
	case columnTypeTimestamp:
		return typeNameTimestamp
	default:
		return typeNameText
	}
}

const (
	sqlTypeText    = "TEXT"
	sqlTypeInteger = "INTEGER"
	sqlTypeReal    = "REAL"
)

// sqlType returns the SQLite column type for the normalized type.
// Booleans are stored as INTEGER 0/1 and timestamps as ISO8601 TEXT.
func (ct columnType) sqlType() string {
	switch ct {
	case columnTypeInteger, columnTypeBoolean:
		return sqlTypeInteger
	case columnTypeReal:
		return sqlTypeReal
	default:
		return sqlTypeText
	}
}

// column represents one declared column: its output name, normalized type,
// and whether values are one-dimensional arrays of that type.
type column struct {
	name  string
	typ   columnType
	array bool
}

// typeString returns the declared-style type name, with the array suffix.
func (c column) typeString() string {
	if c.array {
		return c.typ.String() + "[]"
	}
	return c.typ.String()
}
