package copyjson

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
)

// LoadDB streams COPY text format data from r into a SQLite table.
//
// The table is created from the schema if it does not exist: integer and
// boolean columns get INTEGER affinity (booleans stored as 0/1), real
// columns REAL, and timestamp, text and array columns TEXT. Array values
// are stored as their JSON rendering because SQLite has no array type.
// SQL NULL is used for the \N marker.
//
// Rows are inserted through one prepared statement in ChunkSize-row
// transactions. The run follows the options' error policy for undecodable
// lines, exactly like Convert.
//
// Example usage:
//
//	db, err := sql.Open("sqlite", "out.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	opts := copyjson.NewOptions().WithTableName("users")
//	err = copyjson.LoadDB(ctx, db, schema, os.Stdin, opts)
func LoadDB(ctx context.Context, db *sql.DB, schema *Schema, r io.Reader, opts ...Options) error {
	options := NewOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	return loadDB(ctx, db, schema, r, options.normalize())
}

func loadDB(ctx context.Context, db *sql.DB, schema *Schema, r io.Reader, opts Options) error {
	if schema.Len() == 0 {
		return fmt.Errorf("%w: cannot create table %q", ErrEmptySchema, opts.TableName)
	}

	if err := createTable(ctx, db, schema, opts.TableName); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	stmt, err := prepareInsert(ctx, db, schema, opts.TableName)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	batch := make([]Record, 0, opts.ChunkSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := insertBatch(ctx, db, stmt, batch, schema.Len()); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	err = forEachRecord(ctx, schema, r, opts, func(rec Record) error {
		batch = append(batch, rec)
		if len(batch) >= opts.ChunkSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

// createTable creates the target table from the schema if it is missing.
func createTable(ctx context.Context, db *sql.DB, schema *Schema, tableName string) error {
	columns := make([]string, 0, len(schema.columns))
	for _, col := range schema.columns {
		sqlType := sqlTypeText
		if !col.array {
			sqlType = col.typ.sqlType()
		}
		columns = append(columns, fmt.Sprintf("%s %s", quoteIdent(col.name), sqlType))
	}

	query := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (%s)`,
		quoteIdent(tableName),
		strings.Join(columns, ", "),
	)
	_, err := db.ExecContext(ctx, query)
	return err
}

// prepareInsert prepares the insert statement shared by every batch.
// Columns are named so the statement stays valid when the table already
// existed with extra columns.
func prepareInsert(ctx context.Context, db *sql.DB, schema *Schema, tableName string) (*sql.Stmt, error) {
	names := make([]string, len(schema.columns))
	placeholders := make([]string, len(schema.columns))
	for i, col := range schema.columns {
		names[i] = quoteIdent(col.name)
		placeholders[i] = "?"
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(tableName),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)
	return db.PrepareContext(ctx, query)
}

// insertBatch writes one batch of records inside a single transaction.
// Short records pad the missing trailing columns with SQL NULL.
func insertBatch(ctx context.Context, db *sql.DB, stmt *sql.Stmt, batch []Record, width int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStmt := tx.StmtContext(ctx, stmt)
	values := make([]any, width)
	for _, rec := range batch {
		for i := range values {
			values[i] = nil
		}
		for i, f := range rec {
			values[i] = bindValue(f.Value)
		}
		if _, err := txStmt.ExecContext(ctx, values...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}
	return tx.Commit()
}

// bindValue maps a decoded value onto its SQL argument. Arrays become
// their JSON rendering; scalars bind directly.
func bindValue(v any) any {
	if arr, ok := v.([]any); ok {
		return string(appendJSONValue(nil, arr))
	}
	return v
}

// quoteIdent quotes an SQL identifier, doubling any embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
