package xmlfile

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"unicode"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
)

const (
	Format          = "xml"
	DefaultRootName = "root"
)

// Writer emits one document per item. The file is named after the item's
// id field, or its position when it has none.
type Writer struct {
	repository.Base
	RootName string
}

func New(opts repository.Options) *Writer {
	root := opts.RootName
	if root == "" {
		root = DefaultRootName
	}
	return &Writer{
		Base:     repository.NewBase("xml", true, opts),
		RootName: TagName(root),
	}
}

func (w *Writer) Format() string { return Format }

// Save ignores fileName: every item gets its own file.
func (w *Writer) Save(ctx context.Context, items []models.Record, _ string, headers repository.Headers) error {
	headers = headers.Resolve(items)
	tags := make([]string, len(headers))
	for i, h := range headers {
		tags[i] = TagName(h.Label)
	}

	written := 0
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := w.ItemPath(repository.ItemName(it, i))
		ok, err := w.Prepare(path)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		b, err := w.Encode(repository.Project(it, headers), tags)
		if err != nil {
			return fmt.Errorf("xml encode item %d: %w", i, err)
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return fmt.Errorf("xml write %s: %w", path, err)
		}
		written++
	}

	w.Log.Info("xml saved", "dir", w.Dir, "count", len(items), "written", written)
	return nil
}

// Encode renders one item as <root><tag>value</tag>...</root>.
func (w *Writer) Encode(row repository.Row, tags []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: w.RootName}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for i, tag := range tags {
		if err := enc.EncodeElement(repository.FormatValue(row[i]), xml.StartElement{Name: xml.Name{Local: tag}}); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// TagName turns a header label into a valid element name.
func TagName(label string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(label) {
		valid := r == '_' || unicode.IsLetter(r) ||
			(i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)))
		switch {
		case valid:
			b.WriteRune(r)
		case i == 0 && unicode.IsDigit(r):
			b.WriteRune('_')
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
