package copyjson

import (
	"errors"
)

// Standard errors returned by schema construction and record decoding.
var (
	// ErrColumnSpec indicates a column declaration that is not in name:type form
	ErrColumnSpec = errors.New("copyjson: malformed column spec")

	// ErrUnsupportedType indicates a declared type outside the supported set
	ErrUnsupportedType = errors.New("copyjson: unsupported column type")

	// ErrNestedArray indicates an array-of-array column declaration
	ErrNestedArray = errors.New("copyjson: nested array types are not supported")

	// ErrMalformedNumber indicates a field that could not be parsed as the
	// declared numeric type
	ErrMalformedNumber = errors.New("copyjson: malformed number")

	// ErrEmptySchema indicates a sink that needs at least one declared column
	ErrEmptySchema = errors.New("copyjson: schema declares no columns")

	// ErrLineTooLong indicates an input line exceeding the configured maximum
	ErrLineTooLong = errors.New("copyjson: input line exceeds maximum length")

	// ErrUnsupportedCompression indicates an output extension with no writer
	ErrUnsupportedCompression = errors.New("copyjson: unsupported compression format")
)
