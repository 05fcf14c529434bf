package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/repository"
)

const Format = "json"

// Result is the saved document. Items keep the header order of their keys.
type Result struct {
	FetchedAt string            `json:"fetched_at"`
	Count     int               `json:"count"`
	Items     []json.RawMessage `json:"items"`
}

type Repo struct {
	repository.Base
	Now func() time.Time
}

func New(opts repository.Options) *Repo {
	return &Repo{
		Base: repository.NewBase("json", false, opts),
		Now:  time.Now,
	}
}

func (r *Repo) Format() string { return Format }

func (r *Repo) Save(ctx context.Context, items []models.Record, fileName string, headers repository.Headers) error {
	headers = headers.Resolve(items)

	res := Result{
		FetchedAt: r.Now().UTC().Format(time.RFC3339),
		Count:     len(items),
		Items:     make([]json.RawMessage, 0, len(items)),
	}
	for i, row := range repository.ProjectAll(items, headers) {
		obj, err := orderedObject(headers, row)
		if err != nil {
			return fmt.Errorf("json item %d: %w", i, err)
		}
		res.Items = append(res.Items, obj)
	}

	path := r.ResolvePath(fileName)
	ok, err := r.Prepare(path)
	if err != nil || !ok {
		return err
	}
	if err := saveAny(ctx, path, res); err != nil {
		return err
	}

	r.Log.Info("json saved", "path", path, "count", res.Count)
	return nil
}

func orderedObject(headers repository.Headers, row repository.Row) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range headers {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(h.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(row[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func saveAny(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("jsonfile repo: empty path")
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return nil
}

