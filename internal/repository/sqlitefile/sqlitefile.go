package sqlitefile

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
)

const (
	Format = "sqlite"
	Table  = "items"
)

// Writer stores every Save in its own database file, one row per item in
// table items. Columns are the header labels, all TEXT.
type Writer struct {
	repository.Base
}

func New(opts repository.Options) *Writer {
	return &Writer{Base: repository.NewBase("db", false, opts)}
}

func (w *Writer) Format() string { return Format }

func (w *Writer) Save(ctx context.Context, items []models.Record, fileName string, headers repository.Headers) error {
	headers = headers.Resolve(items)
	if len(headers) == 0 {
		return fmt.Errorf("sqlite: no columns")
	}
	path := w.ResolvePath(fileName)

	ok, err := w.Prepare(path)
	if err != nil || !ok {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("sqlite open %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	cols := make([]string, len(headers))
	marks := make([]string, len(headers))
	for i, h := range headers {
		cols[i] = quoteIdent(h.Label) + " TEXT"
		marks[i] = "?"
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+Table); err != nil {
		return fmt.Errorf("sqlite drop: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+Table+` (`+strings.Join(cols, ", ")+`)`); err != nil {
		return fmt.Errorf("sqlite create: %w", err)
	}

	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = quoteIdent(h.Label)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO `+Table+` (`+strings.Join(names, ", ")+`) VALUES (`+strings.Join(marks, ", ")+`)`,
	)
	if err != nil {
		return fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for i, row := range repository.ProjectAll(items, headers) {
		args := make([]any, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			args[j] = repository.FormatValue(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("sqlite insert item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}

	w.Log.Info("sqlite saved", "path", path, "table", Table, "count", len(items))
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
