package copyjson

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// WriteParquet streams COPY text format data from r into a Parquet file
// written to w.
//
// The Arrow schema mirrors the declared columns: integer maps to int64,
// real to float64, boolean to bool, and timestamp and text to utf8
// strings (timestamps keep their ISO8601 surface form; the format carries
// no time zone to express in an Arrow timestamp type). Array columns map
// to lists of the element type. All fields are nullable and \N decodes to
// an Arrow null. Rows are accumulated in a record builder and flushed as
// one record batch per ChunkSize rows.
//
// Example usage:
//
//	f, err := os.Create("out.parquet")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	err = copyjson.WriteParquet(ctx, f, schema, os.Stdin)
func WriteParquet(ctx context.Context, w io.Writer, schema *Schema, r io.Reader, opts ...Options) error {
	options := NewOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	return writeParquet(ctx, w, schema, r, options.normalize())
}

func writeParquet(ctx context.Context, w io.Writer, schema *Schema, r io.Reader, opts Options) error {
	if schema.Len() == 0 {
		return fmt.Errorf("%w: cannot build a parquet schema", ErrEmptySchema)
	}

	arrSchema := arrowSchema(schema)
	writer, err := pqarrow.NewFileWriter(arrSchema, w,
		parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	builder := array.NewRecordBuilder(memory.DefaultAllocator, arrSchema)
	defer builder.Release()

	rows := 0
	flush := func() error {
		if rows == 0 {
			return nil
		}
		rec := builder.NewRecord()
		defer rec.Release()
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write record batch: %w", err)
		}
		rows = 0
		return nil
	}

	err = forEachRecord(ctx, schema, r, opts, func(rec Record) error {
		appendArrowRecord(builder, schema.Len(), rec)
		rows++
		if rows >= opts.ChunkSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		_ = writer.Close()
		return err
	}
	if err := flush(); err != nil {
		_ = writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// arrowSchema builds the Arrow schema mirroring the declared columns.
func arrowSchema(schema *Schema) *arrow.Schema {
	fields := make([]arrow.Field, len(schema.columns))
	for i, col := range schema.columns {
		fields[i] = arrow.Field{Name: col.name, Type: arrowType(col), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// arrowType maps one declared column to its Arrow type.
func arrowType(col column) arrow.DataType {
	var dt arrow.DataType
	switch col.typ {
	case columnTypeInteger:
		dt = arrow.PrimitiveTypes.Int64
	case columnTypeReal:
		dt = arrow.PrimitiveTypes.Float64
	case columnTypeBoolean:
		dt = arrow.FixedWidthTypes.Boolean
	default:
		dt = arrow.BinaryTypes.String
	}
	if col.array {
		return arrow.ListOf(dt)
	}
	return dt
}

// appendArrowRecord appends one decoded record across the field builders.
// Missing trailing fields of a short record append as nulls so every
// column keeps the same length.
func appendArrowRecord(builder *array.RecordBuilder, width int, rec Record) {
	for i := 0; i < width; i++ {
		fb := builder.Field(i)
		if i >= len(rec) || rec[i].Value == nil {
			fb.AppendNull()
			continue
		}
		if lb, ok := fb.(*array.ListBuilder); ok {
			lb.Append(true)
			vb := lb.ValueBuilder()
			for _, e := range rec[i].Value.([]any) {
				appendArrowValue(vb, e)
			}
			continue
		}
		appendArrowValue(fb, rec[i].Value)
	}
}

// appendArrowValue appends one scalar onto its typed builder. The builder
// kind and the value kind always agree because both derive from the same
// declared column type.
func appendArrowValue(b array.Builder, v any) {
	if v == nil {
		b.AppendNull()
		return
	}
	switch b := b.(type) {
	case *array.Int64Builder:
		b.Append(v.(int64))
	case *array.Float64Builder:
		b.Append(v.(float64))
	case *array.BooleanBuilder:
		b.Append(v.(bool))
	case *array.StringBuilder:
		b.Append(v.(string))
	default:
		b.AppendNull()
	}
}
