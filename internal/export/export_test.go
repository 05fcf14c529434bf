package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/logger"
	"cornershopparser/internal/repository"
)

func TestRegistryResolve(t *testing.T) {
	var buf bytes.Buffer
	reg := DefaultRegistry(logger.New(logger.Options{Output: &buf}))

	assert.Equal(t, []string{"csv", "img", "json", "md", "sqlite", "xlsx", "xml"}, reg.Formats())
	assert.Equal(t, "xlsx", reg.Resolve(" .XLSX "))
	assert.Empty(t, buf.String())

	assert.Equal(t, "csv", reg.Resolve(""))
	assert.Empty(t, buf.String())

	assert.Equal(t, "csv", reg.Resolve("pdf"))
	assert.Contains(t, buf.String(), "unknown export format")
	assert.Contains(t, buf.String(), "format=pdf")
}

func TestExportUnknownFormatFallsBackToCSV(t *testing.T) {
	dir := t.TempDir()
	e := New(nil, Config{Format: "pdf", Dir: dir, Logger: logger.Discard()})

	items := models.Records([]models.Aisle{{ID: "1", Name: "Sucos"}})
	res, err := e.Export(context.Background(), Request{Items: items, FileName: "Mercado Aisles"})
	require.NoError(t, err)

	assert.Equal(t, "csv", res.Format)
	assert.Equal(t, filepath.Join(dir, "Mercado Aisles.csv"), res.Path)
	assert.FileExists(t, res.Path)
}

func TestExportEmptyIsNoop(t *testing.T) {
	dir := t.TempDir()
	e := New(nil, Config{Dir: dir, Logger: logger.Discard()})

	res, err := e.Export(context.Background(), Request{FileName: "nothing", ToDict: true})
	require.NoError(t, err)
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportToDict(t *testing.T) {
	dir := t.TempDir()
	e := New(nil, Config{Format: "json", Dir: dir, Logger: logger.Discard()})

	headers, err := repository.ParseHeaders([]string{"name:Nome", "id"})
	require.NoError(t, err)

	items := models.Records([]models.Aisle{{ID: "1", Name: "Sucos"}, {ID: "2", Name: "Águas"}})
	res, err := e.Export(context.Background(), Request{Items: items, Headers: headers, FileName: "a", ToDict: true})
	require.NoError(t, err)

	assert.Equal(t, []map[string]any{
		{"Nome": "Sucos", "id": "1"},
		{"Nome": "Águas", "id": "2"},
	}, res.Rows)
	assert.FileExists(t, filepath.Join(dir, "a.json"))
}

func TestExportMultipleFilesPath(t *testing.T) {
	dir := t.TempDir()
	e := New(nil, Config{Format: "xml", Dir: dir, Logger: logger.Discard()})

	items := models.Records([]models.Offer{{ID: "5"}})
	res, err := e.Export(context.Background(), Request{Items: items, FileName: "offers"})
	require.NoError(t, err)
	assert.Equal(t, dir, res.Path)
	assert.FileExists(t, filepath.Join(dir, "5.xml"))
}

func TestExportSheetsFlattensForFlatWriters(t *testing.T) {
	dir := t.TempDir()
	e := New(nil, Config{Format: "csv", Dir: dir, Logger: logger.Discard()})

	sheets := []repository.Sheet{
		{Name: "a", Items: models.Records([]models.Aisle{{ID: "1"}})},
		{Name: "b", Items: models.Records([]models.Aisle{{ID: "2"}, {ID: "3"}})},
	}
	_, err := e.ExportSheets(context.Background(), sheets, "all", repository.HeadersFromList([]string{"id"}), "")
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "all.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n2\n3\n", string(b))
}

func TestProject(t *testing.T) {
	rows := Project(models.Records([]models.Department{{ID: "1", Name: "Bebidas"}}), nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0]["aisle_count"])
}
