package mdfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/logger"
	"cornershopparser/internal/repository"
)

func TestRender(t *testing.T) {
	items := models.Records([]models.Department{{ID: "1", Name: "Bebidas", Aisles: []models.Aisle{{ID: "a"}}}})
	headers := repository.Headers{{Field: "name", Label: "Departamento"}, {Field: "aisle_count", Label: "Corredores"}}

	lines := strings.Split(strings.TrimSpace(Render(items, headers)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "| Departamento | Corredores |", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "| -"))
	assert.Equal(t, "| Bebidas | 1 |", lines[2])
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	w := New(repository.Options{Dir: dir, Logger: logger.Discard()})

	items := models.Records([]models.Offer{{ID: "7", Caption: "Leve 3 pague 2"}})
	require.NoError(t, w.Save(context.Background(), items, "offers.txt", nil))

	b, err := os.ReadFile(filepath.Join(dir, "offers.md"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "| Leve 3 pague 2 |")
}
