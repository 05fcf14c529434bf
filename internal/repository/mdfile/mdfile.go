package mdfile

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
)

const Format = "md"

type Writer struct {
	repository.Base
}

func New(opts repository.Options) *Writer {
	return &Writer{Base: repository.NewBase("md", false, opts)}
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

	out := Render(items, headers) + "\n"
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("md write %s: %w", path, err)
	}

	w.Log.Info("md saved", "path", path, "count", len(items))
	return nil
}

// Render returns items as a markdown table.
func Render(items []models.Record, headers repository.Headers) string {
	t := table.NewWriter()

	head := make(table.Row, len(headers))
	for i, l := range headers.Labels() {
		head[i] = l
	}
	t.AppendHeader(head)

	for _, r := range repository.ProjectAll(items, headers) {
		row := make(table.Row, len(r))
		for i, s := range r.Strings() {
			row[i] = s
		}
		t.AppendRow(row)
	}
	return t.RenderMarkdown()
}
