package copyjson

import (
	"io"
	"log/slog"
)

// ErrorPolicy controls how decode-time errors are handled. The policy is
// fixed for a whole run; it is never decided per field or per line.
type ErrorPolicy int

const (
	// ErrorPolicyAbort stops the run at the first undecodable line
	ErrorPolicyAbort ErrorPolicy = iota
	// ErrorPolicySkip drops undecodable lines, reports them through the
	// configured logger, and continues
	ErrorPolicySkip
)

// String returns the string representation of ErrorPolicy
func (p ErrorPolicy) String() string {
	switch p {
	case ErrorPolicyAbort:
		return "abort"
	case ErrorPolicySkip:
		return "skip"
	default:
		return "abort"
	}
}

// DefaultTableName is the table the SQLite sink loads into when the caller
// does not name one.
const DefaultTableName = "records"

// Options configures a conversion run.
//
// Example:
//
//	opts := copyjson.NewOptions().
//		WithErrorPolicy(copyjson.ErrorPolicySkip).
//		WithChunkSize(500)
//
//	err := copyjson.ConvertContext(ctx, schema, in, out, opts)
type Options struct {
	// ErrorPolicy selects abort or skip-and-report for undecodable lines
	ErrorPolicy ErrorPolicy
	// ChunkSize is the number of rows per sink batch (one SQLite
	// transaction or one Parquet record batch)
	ChunkSize int
	// MaxLineSize bounds a single input line in bytes
	MaxLineSize int
	// TableName names the target table for the SQLite sink
	TableName string
	// Logger receives skip reports and diagnostics; nil discards them
	Logger *slog.Logger
}

// NewOptions creates default conversion options: abort on the first bad
// line, 1000-row batches, 16 MiB line limit, table name "records".
func NewOptions() Options {
	return Options{
		ErrorPolicy: ErrorPolicyAbort,
		ChunkSize:   DefaultChunkSize,
		MaxLineSize: DefaultMaxLineSize,
		TableName:   DefaultTableName,
	}
}

// WithErrorPolicy sets the decode error policy for the run.
func (o Options) WithErrorPolicy(policy ErrorPolicy) Options {
	o.ErrorPolicy = policy
	return o
}

// WithChunkSize sets the number of rows per sink batch.
func (o Options) WithChunkSize(size int) Options {
	o.ChunkSize = size
	return o
}

// WithMaxLineSize sets the upper bound for a single input line in bytes.
func (o Options) WithMaxLineSize(size int) Options {
	o.MaxLineSize = size
	return o
}

// WithTableName sets the target table for the SQLite sink.
func (o Options) WithTableName(name string) Options {
	o.TableName = name
	return o
}

// WithLogger sets the logger that receives skip reports and diagnostics.
func (o Options) WithLogger(logger *slog.Logger) Options {
	o.Logger = logger
	return o
}

// normalize replaces out-of-range or missing values with the defaults so
// the zero Options value is usable.
func (o Options) normalize() Options {
	if o.ChunkSize < MinChunkSize {
		o.ChunkSize = DefaultChunkSize
	}
	if o.MaxLineSize <= 0 {
		o.MaxLineSize = DefaultMaxLineSize
	}
	if o.TableName == "" {
		o.TableName = DefaultTableName
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
