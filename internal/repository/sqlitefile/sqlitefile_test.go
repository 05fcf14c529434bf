package sqlitefile

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/logger"
	"cornershopparser/internal/repository"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	w := New(repository.Options{Dir: dir, Logger: logger.Discard()})
	ctx := context.Background()

	headers := repository.Headers{{Field: "id", Label: "id"}, {Field: "name", Label: "Nome \"curto\""}, {Field: "nope", Label: "nope"}}
	items := models.Records([]models.Aisle{{ID: "1", Name: "Sucos"}, {ID: "2", Name: "Águas"}, {ID: "3", Name: "Chás"}})

	require.NoError(t, w.Save(ctx, items, "Mercado Aisles", headers))
	// a second save replaces the table
	require.NoError(t, w.Save(ctx, items[:2], "Mercado Aisles", headers))

	db, err := sql.Open("sqlite", filepath.Join(dir, "Mercado Aisles.db"))
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 2, n)

	var name string
	var nope sql.NullString
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT "Nome ""curto""", nope FROM items WHERE id = ?`, "2").Scan(&name, &nope))
	assert.Equal(t, "Águas", name)
	assert.False(t, nope.Valid)
}

func TestSaveNoColumns(t *testing.T) {
	w := New(repository.Options{Dir: t.TempDir(), Logger: logger.Discard()})
	require.Error(t, w.Save(context.Background(), nil, "empty", nil))
}
