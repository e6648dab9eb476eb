package copyjson

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// initialScanBuffer is the starting buffer size for the line scanner; it
// grows on demand up to Options.MaxLineSize.
const initialScanBuffer = 64 * 1024

// ctxCheckMask gates cancellation checks to every 1024 lines so the hot
// loop stays cheap.
const ctxCheckMask = 1024 - 1

// recordHandler consumes one decoded record. Returning an error stops the
// run regardless of the error policy.
type recordHandler func(rec Record) error

// forEachRecord is the pull loop shared by the JSON driver and the sinks.
// It scans r line by line, decodes each data line with schema, and hands
// the records to fn in input order. The end-of-data marker stops the scan.
// Undecodable lines follow the run's error policy: abort with an error
// naming the line and column, or report through the logger and continue.
func forEachRecord(ctx context.Context, schema *Schema, r io.Reader, opts Options, fn recordHandler) error {
	scanner := bufio.NewScanner(r)
	// The scanner takes the larger of the initial capacity and the max as
	// its limit, so the initial buffer must not exceed MaxLineSize.
	scanner.Buffer(make([]byte, 0, min(initialScanBuffer, opts.MaxLineSize)), opts.MaxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo&ctxCheckMask == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		line := scanner.Text()
		if line == endOfDataMarker {
			break
		}

		rec, err := schema.DecodeLine(line)
		if err != nil {
			if opts.ErrorPolicy == ErrorPolicySkip {
				opts.Logger.Warn("skipping undecodable line", "line", lineNo, "error", err)
				continue
			}
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		if len(rec) < schema.Len() && opts.Logger.Enabled(ctx, slog.LevelDebug) {
			opts.Logger.Debug("short line truncated record",
				"line", lineNo, "fields", len(rec), "columns", schema.Len())
		}

		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w (limit %d bytes)", ErrLineTooLong, opts.MaxLineSize)
		}
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// convertStream serializes each decoded record as one JSON line. Output
// order equals input order; nothing is buffered beyond the write buffer.
func convertStream(ctx context.Context, schema *Schema, r io.Reader, w io.Writer, opts Options) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 256)

	err := forEachRecord(ctx, schema, r, opts, func(rec Record) error {
		buf = rec.appendJSON(buf[:0])
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
