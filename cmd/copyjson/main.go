// Package main is the entry point for the copyjson command.
//
// copyjson converts PostgreSQL COPY text format into line-delimited JSON,
// SQLite databases, or Parquet files. Column declarations are given as
// positional NAME:TYPE arguments and input is read from a file or stdin.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/jigucci/copyjson"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "copyjson: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	version := flag.Bool("version", false, "Print version and exit")
	input := flag.String("i", "", "Input file (default stdin). Compressed input (.gz, .bz2, .xz, .zst) is decompressed automatically.")
	output := flag.String("o", "", "Output file (default stdout). The extension selects the sink: .db/.sqlite/.sqlite3 for SQLite, .parquet for Parquet, anything else for NDJSON with optional compression by extension.")
	format := flag.String("f", "", "Output format (ndjson, sqlite, parquet). Overrides extension detection.")
	table := flag.String("t", copyjson.DefaultTableName, "Table name for the SQLite sink")
	skipErrors := flag.Bool("skip-errors", false, "Report undecodable lines on stderr and continue instead of aborting")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: copyjson [flags] [NAME:TYPE ...]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Converts PostgreSQL COPY text format to NDJSON, SQLite or Parquet.\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Each positional argument declares one column, e.g. id:integer tags:text[].\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		printVersion()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	ll := &slog.LevelVar{}
	switch *logLevel {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "info":
		ll.Set(slog.LevelInfo)
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", *logLevel)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	schema, err := copyjson.ParseSchema(flag.Args())
	if err != nil {
		return err
	}

	sink, err := resolveSink(*format, *output)
	if err != nil {
		return err
	}

	opts := copyjson.NewOptions().WithTableName(*table).WithLogger(logger)
	if *skipErrors {
		opts = opts.WithErrorPolicy(copyjson.ErrorPolicySkip)
	}

	in, closeIn, err := openInput(*input)
	if err != nil {
		return err
	}
	defer closeIn() //nolint:errcheck // Input close failures do not affect the converted output.

	switch sink {
	case sinkSQLite:
		return runSQLite(ctx, schema, in, *output, opts)
	case sinkParquet:
		return runParquet(ctx, schema, in, *output, opts)
	default:
		return runNDJSON(ctx, schema, in, *output, opts)
	}
}

type sinkKind int

const (
	sinkNDJSON sinkKind = iota
	sinkSQLite
	sinkParquet
)

// resolveSink picks the output sink from the -f flag, falling back to the
// output file extension. Compression extensions are stripped first so that
// "dump.ndjson.gz" still selects the NDJSON sink.
func resolveSink(format, output string) (sinkKind, error) {
	switch format {
	case "ndjson":
		return sinkNDJSON, nil
	case "sqlite":
		return sinkSQLite, nil
	case "parquet":
		return sinkParquet, nil
	case "":
	default:
		return sinkNDJSON, fmt.Errorf("invalid format %q (want ndjson, sqlite or parquet)", format)
	}
	switch strings.ToLower(filepath.Ext(copyjson.StripCompressionExtension(output))) {
	case ".db", ".sqlite", ".sqlite3":
		return sinkSQLite, nil
	case ".parquet":
		return sinkParquet, nil
	default:
		return sinkNDJSON, nil
	}
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	return copyjson.OpenInput(path)
}

func runNDJSON(ctx context.Context, schema *copyjson.Schema, in io.Reader, output string, opts copyjson.Options) error {
	if output == "" || output == "-" {
		return copyjson.ConvertContext(ctx, schema, in, os.Stdout, opts)
	}
	out, closeOut, err := copyjson.CreateOutput(output)
	if err != nil {
		return err
	}
	if err := copyjson.ConvertContext(ctx, schema, in, out, opts); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func runSQLite(ctx context.Context, schema *copyjson.Schema, in io.Reader, output string, opts copyjson.Options) error {
	if output == "" || output == "-" {
		return errors.New("the sqlite sink needs an output file (-o)")
	}
	db, err := sql.Open("sqlite", output)
	if err != nil {
		return fmt.Errorf("open database %s: %w", output, err)
	}
	if err := copyjson.LoadDB(ctx, db, schema, in, opts); err != nil {
		_ = db.Close()
		return err
	}
	return db.Close()
}

func runParquet(ctx context.Context, schema *copyjson.Schema, in io.Reader, output string, opts copyjson.Options) error {
	if output == "" || output == "-" {
		return errors.New("the parquet sink needs an output file (-o)")
	}
	f, err := os.Create(output) //nolint:gosec // G304: the output path comes from the -o flag.
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := copyjson.WriteParquet(ctx, f, schema, in, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printVersion() {
	version, goVersion, revision, dirty := getBuildInfo()
	fmt.Printf("copyjson %s\n", version)
	fmt.Printf("  Go version: %s\n", goVersion)
	fmt.Printf("  Revision:   %s\n", revision)
	if dirty {
		fmt.Printf("  Modified:   true\n")
	}
}

func getBuildInfo() (version, goVersion, revision string, dirty bool) {
	version = "unknown"
	goVersion = "unknown"
	revision = "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	version = info.Main.Version
	if version == "" || version == "(devel)" {
		version = "dev"
	}
	goVersion = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return
}
