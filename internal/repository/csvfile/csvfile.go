package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
)

const Format = "csv"

type Writer struct {
	repository.Base
}

func New(opts repository.Options) *Writer {
	return &Writer{Base: repository.NewBase("csv", false, opts)}
}

func (w *Writer) Format() string { return Format }

func (w *Writer) Save(ctx context.Context, items []models.Record, fileName string, headers repository.Headers) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	headers = headers.Resolve(items)
	path := w.ResolvePath(fileName)

	ok, err := w.Prepare(path)
	if err != nil || !ok {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(headers.Labels()); err != nil {
		return fmt.Errorf("csv write %s: %w", path, err)
	}
	for _, row := range repository.ProjectAll(items, headers) {
		if err := cw.Write(row.Strings()); err != nil {
			return fmt.Errorf("csv write %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	w.Log.Info("csv saved", "path", path, "count", len(items))
	return nil
}
