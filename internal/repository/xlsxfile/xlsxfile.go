package xlsxfile

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
)

const (
	Format = "xlsx"

	// WidthOffset is added to the longest cell text of a column.
	WidthOffset = 5
	// MaxSheetName is the worksheet name limit of the format.
	MaxSheetName = 31
)

type Writer struct {
	repository.Base
}

func New(opts repository.Options) *Writer {
	return &Writer{Base: repository.NewBase("xlsx", false, opts)}
}

func (w *Writer) Format() string { return Format }

func (w *Writer) Save(ctx context.Context, items []models.Record, fileName string, headers repository.Headers) error {
	return w.SaveSheets(ctx, []repository.Sheet{{Items: items}}, fileName, headers)
}

// SaveSheets writes one worksheet per sheet, in order. An unnamed sheet
// takes the default worksheet name; repeated names get a " (n)" suffix.
func (w *Writer) SaveSheets(ctx context.Context, sheets []repository.Sheet, fileName string, headers repository.Headers) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := w.ResolvePath(fileName)

	ok, err := w.Prepare(path)
	if err != nil || !ok {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	used := make(map[string]struct{}, len(sheets))
	total := 0

	for i, s := range sheets {
		name := defaultSheet
		if s.Name != "" {
			name = SheetName(s.Name)
		}
		name = uniqueName(name, used)
		used[name] = struct{}{}

		if i == 0 {
			if name != defaultSheet {
				if err := f.SetSheetName(defaultSheet, name); err != nil {
					return fmt.Errorf("xlsx sheet %q: %w", name, err)
				}
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx sheet %q: %w", name, err)
		}

		h := headers.Resolve(s.Items)
		if err := writeSheet(f, name, s.Items, h); err != nil {
			return fmt.Errorf("xlsx sheet %q: %w", name, err)
		}
		total += len(s.Items)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx save %s: %w", path, err)
	}

	w.Log.Info("xlsx saved", "path", path, "sheets", len(sheets), "count", total)
	return nil
}

func writeSheet(f *excelize.File, sheet string, items []models.Record, headers repository.Headers) error {
	labels := headers.Labels()
	rows := make([][]string, 0, len(items))
	for _, r := range repository.ProjectAll(items, headers) {
		rows = append(rows, r.Strings())
	}

	for i, width := range ColumnWidths(labels, rows) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return err
		}
	}

	if err := setRow(f, sheet, 1, labels); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell := "A" + strconv.Itoa(row)
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return f.SetSheetRow(sheet, cell, &vals)
}

// ColumnWidths is max(len(cell)) + WidthOffset per column, header included.
func ColumnWidths(labels []string, rows [][]string) []int {
	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = utf8.RuneCountInString(l) + WidthOffset
	}
	for _, r := range rows {
		for i := range out {
			if i >= len(r) {
				break
			}
			if w := utf8.RuneCountInString(r[i]) + WidthOffset; w > out[i] {
				out[i] = w
			}
		}
	}
	return out
}

// SheetName cuts name to MaxSheetName characters and drops the characters
// worksheet names may not contain.
func SheetName(name string) string {
	clean := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		clean = append(clean, r)
	}
	if len(clean) > MaxSheetName {
		clean = clean[:MaxSheetName]
	}
	if len(clean) == 0 {
		return "Sheet"
	}
	return string(clean)
}

func uniqueName(name string, used map[string]struct{}) string {
	if _, ok := used[name]; !ok {
		return name
	}
	for n := 2; ; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		r := []rune(name)
		if len(r)+len(suffix) > MaxSheetName {
			r = r[:MaxSheetName-len(suffix)]
		}
		candidate := string(r) + suffix
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}
