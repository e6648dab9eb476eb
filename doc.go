// Package copyjson decodes PostgreSQL COPY text format into line-delimited
// JSON, SQLite databases, and Parquet files.
//
// copyjson turns the tab-separated dump produced by COPY ... TO (or pg_dump
// data sections) back into typed values without a running PostgreSQL server.
// Each input line becomes exactly one output record, so output can be lined
// up with input for auditing and the converter never buffers the whole dump.
//
// # Features
//
//   - Full COPY text escape grammar (backslash escapes, hex, octal, \N nulls)
//   - Typed decoding for integer, real, boolean, timestamp and text columns
//   - One-dimensional arrays ({...} literals) for every scalar type
//   - Automatic handling of compressed input and output (gzip, bzip2, xz, zstandard)
//   - Streaming SQLite and Parquet sinks next to the NDJSON writer
//   - Fail-fast error reporting with the offending column and line
//
// # Basic Usage
//
// Declare the columns in dump order with ParseSchema, then stream with
// Convert or ConvertContext:
//
//	schema, err := copyjson.ParseSchema([]string{"id:integer", "name:text", "active:boolean"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := copyjson.Convert(schema, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// Each line of output is a single JSON object with keys in declaration
// order:
//
//	{"id":1,"name":"Alice","active":true}
//
// # Column Declarations
//
// A declaration is NAME:TYPE. The type is a PostgreSQL type name such as
// int, bigint, float8, double precision, numeric, bool, timestamp or text;
// varchar, uuid, json and other stringly types decode as text. A [] suffix
// declares a one-dimensional array, e.g. tags:text[]. Multidimensional
// arrays are not supported and are rejected when the schema is built.
//
// # Value Decoding
//
// Fields are decoded to match what the PostgreSQL server held, not what the
// wire format shows: escape sequences are resolved, \N becomes null,
// timestamps are reshaped to ISO 8601 with a T separator, and array
// literals become JSON arrays. Non-finite floats are emitted as the bare
// tokens Infinity, -Infinity and NaN, mirroring the text COPY produces for
// them.
//
// # Alternative Sinks
//
// LoadDB streams the same decoded records into a SQLite table and
// WriteParquet writes them as a Parquet file:
//
//	db, err := sql.Open("sqlite", "dump.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//	if err := copyjson.LoadDB(ctx, db, schema, input); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Schema errors (malformed declarations, unsupported types) are reported
// before any input is read. Decode errors abort the conversion by default,
// naming the line and column; WithErrorPolicy(ErrorPolicySkip) switches to
// logging each bad line and continuing.
package copyjson
