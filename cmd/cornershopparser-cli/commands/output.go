package commands

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/export"
	"cornershopparser/internal/repository"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// emit exports items when save is set, then prints them.
func (a *app) emit(ctx context.Context, items []models.Record, fileName string, save bool) error {
	switch {
	case save:
		res, err := a.exp().Export(ctx, export.Request{
			Items:      items,
			Headers:    a.headers,
			FileName:   fileName,
			SaveImages: flags.images,
		})
		if err != nil {
			return err
		}
		a.log.Info("exported", "format", res.Format, "path", res.Path, "count", len(items))
	case flags.images:
		if err := a.exp().SaveImages(ctx, items); err != nil {
			return err
		}
	}

	headers := a.headers.Resolve(items)
	if flags.toDict {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(export.Project(items, headers))
	}
	printTable(items, headers)
	return nil
}

func printTable(items []models.Record, headers repository.Headers) {
	t := newTable()

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
	t.AppendFooter(table.Row{"count", len(items)})
	t.Render()
}
