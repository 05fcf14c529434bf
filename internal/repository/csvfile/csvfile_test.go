package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/logger"
	"cornershopparser/internal/repository"
)

func TestSaveWithHeaders(t *testing.T) {
	dir := t.TempDir()
	w := New(repository.Options{Dir: dir, Logger: logger.Discard()})

	items := models.Records([]models.Aisle{
		{ID: "1", Name: "Sucos, naturais", DepartmentID: "10"},
		{ID: "2", Name: "Refrigerantes", DepartmentID: "10"},
	})
	headers := repository.Headers{{Field: "name", Label: "Corredor"}, {Field: "id", Label: "ID"}, {Field: "missing", Label: "X"}}

	require.NoError(t, w.Save(context.Background(), items, "Mercado Aisles", headers))

	f, err := os.Open(filepath.Join(dir, "Mercado Aisles.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Corredor", "ID", "X"},
		{"Sucos, naturais", "1", ""},
		{"Refrigerantes", "2", ""},
	}, rows)
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := New(repository.Options{Dir: dir, Logger: logger.Discard()})
	ctx := context.Background()

	require.NoError(t, w.Save(ctx, models.Records([]models.Aisle{{ID: "1"}, {ID: "2"}}), "a.csv", nil))
	require.NoError(t, w.Save(ctx, models.Records([]models.Aisle{{ID: "3"}}), "a.csv", nil))

	b, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,name,department_id,image_url\n3,,,\n", string(b))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := New(repository.Options{Dir: dir, Logger: logger.Discard()})
	run := 0

	properties := gopter.NewProperties(nil)

	properties.Property("n items by k fields read back as n+1 rows", prop.ForAll(
		func(n, k int, seed string) bool {
			items := make([]models.Record, n)
			for i := range items {
				f := make(models.Fields, k)
				for j := range f {
					f[j] = models.Field{Name: fmt.Sprintf("f%d", j), Value: fmt.Sprintf("%s,%d\"%d", seed, i, j)}
				}
				items[i] = f
			}
			headers := make(repository.Headers, k)
			for j := range headers {
				headers[j] = repository.Header{Field: fmt.Sprintf("f%d", j), Label: fmt.Sprintf("Coluna %d", j)}
			}

			run++
			name := fmt.Sprintf("grid-%d", run)
			if err := w.Save(context.Background(), items, name, headers); err != nil {
				return false
			}
			f, err := os.Open(filepath.Join(dir, name+".csv"))
			if err != nil {
				return false
			}
			defer f.Close()
			rows, err := csv.NewReader(f).ReadAll()
			if err != nil || len(rows) != n+1 {
				return false
			}
			for j, l := range rows[0] {
				if l != headers[j].Label {
					return false
				}
			}
			for i, r := range rows[1:] {
				for j, cell := range r {
					if cell != fmt.Sprintf("%s,%d\"%d", seed, i, j) {
						return false
					}
				}
			}
			return len(rows[0]) == k
		},
		gen.IntRange(0, 20),
		gen.IntRange(1, 8),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
