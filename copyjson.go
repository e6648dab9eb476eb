package copyjson

import (
	"context"
	"io"
)

// Convert decodes PostgreSQL COPY text format data from r and writes one
// JSON object per data line to w.
//
// The schema declares the column names and types in output order; build it
// once with ParseSchema. Input is consumed as a stream, one line per source
// row, fields separated by tabs, NULL encoded as \N, arrays as {...}
// literals. Output is line-delimited JSON: keys in declaration order,
// native JSON numbers, booleans and null, Unicode emitted literally, one
// output line per input line.
//
// Example usage:
//
//	schema, err := copyjson.ParseSchema([]string{"id:integer", "name:text", "active:boolean"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := copyjson.Convert(schema, os.Stdin, os.Stdout); err != nil {
//		log.Fatal(err)
//	}
//
// By default the run aborts on the first undecodable line. Pass Options to
// choose the skip-and-report policy, bound the line length, or attach a
// logger.
func Convert(schema *Schema, r io.Reader, w io.Writer, opts ...Options) error {
	return ConvertContext(context.Background(), schema, r, w, opts...)
}

// ConvertContext decodes COPY text format data from r and writes one JSON
// object per data line to w, honoring ctx.
//
// Cancellation is checked periodically between lines, so a cancelled
// context stops the run close to, but not exactly at, the current line.
// See Convert for the format contract.
func ConvertContext(ctx context.Context, schema *Schema, r io.Reader, w io.Writer, opts ...Options) error {
	options := NewOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	return convertStream(ctx, schema, r, w, options.normalize())
}
