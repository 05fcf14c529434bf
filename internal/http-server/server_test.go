package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/logger"
)

type fakeCatalog struct {
	catalog *models.Catalog
	gotKey  models.LookupKey
	gotAll  bool
}

func (f *fakeCatalog) Catalog() *models.Catalog { return f.catalog }

func (f *fakeCatalog) ProductsOfAisle(_ context.Context, value string, key models.LookupKey) ([]models.Product, error) {
	f.gotKey = key
	if _, err := f.catalog.FindAisle(value, key); err != nil {
		return nil, err
	}
	return []models.Product{{ID: "p1", Name: "Suco", Aisle: value}}, nil
}

func (f *fakeCatalog) ProductsOfDepartment(_ context.Context, value string, key models.LookupKey) ([]models.Product, error) {
	f.gotKey = key
	if _, err := f.catalog.FindDepartment(value, key); err != nil {
		return nil, err
	}
	return []models.Product{{ID: "p1"}, {ID: "p2"}}, nil
}

func (f *fakeCatalog) Search(_ context.Context, q string, onlyMain bool) ([]models.Product, error) {
	f.gotAll = !onlyMain
	return []models.Product{{ID: "s1", Name: q}}, nil
}

type fakeLister struct{ locality, country string }

func (f *fakeLister) ListStores(_ context.Context, locality, country string) ([]models.StoreListing, error) {
	f.locality, f.country = locality, country
	return []models.StoreListing{{BusinessID: "52", StoreID: "1", Name: "Mercado"}}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeCatalog, *fakeLister) {
	t.Helper()
	cat := &fakeCatalog{catalog: models.NewCatalog(models.Catalog{
		BusinessID: "52",
		Name:       "Mercado",
		Departments: []models.Department{
			{ID: "1", Name: "Bebidas", Aisles: []models.Aisle{{ID: "A", Name: "Sucos", DepartmentID: "1"}}},
			{ID: "2", Name: "Vazio", Aisles: []models.Aisle{}},
		},
	})}
	lister := &fakeLister{}

	s := New(logger.Discard())
	s.RegisterRoutes(Deps{
		Catalog:         cat,
		Stores:          lister,
		DefaultLocality: "Av Paulista 1000",
		DefaultCountry:  "BR",
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv, cat, lister
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestDepartments(t *testing.T) {
	srv, _, _ := newTestServer(t)

	status, body := getJSON(t, srv.URL+"/departments")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "52", body["business_id"])
	// the empty department is hidden
	assert.EqualValues(t, 2, body["count"])
}

func TestProducts(t *testing.T) {
	srv, cat, _ := newTestServer(t)

	status, body := getJSON(t, srv.URL+"/products?aisle=Sucos&key=name")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, models.ByName, cat.gotKey)

	status, body = getJSON(t, srv.URL+"/products?department=1")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["count"])
	assert.Equal(t, models.ByID, cat.gotKey)
}

func TestProductsBadRequests(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, q := range []string{"", "?aisle=A&department=1", "?aisle=A&key=slug"} {
		status, body := getJSON(t, srv.URL+"/products"+q)
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.Equal(t, "bad_request", body["error"].(map[string]any)["code"], q)
	}
}

func TestProductsNotFoundSuggests(t *testing.T) {
	srv, _, _ := newTestServer(t)

	status, body := getJSON(t, srv.URL+"/products?department=Bebida&key=name")
	require.Equal(t, http.StatusNotFound, status)
	e := body["error"].(map[string]any)
	assert.Equal(t, "not_found", e["code"])
	assert.Equal(t, "Bebidas", e["suggestion"])
}

func TestSearch(t *testing.T) {
	srv, cat, _ := newTestServer(t)

	status, body := getJSON(t, srv.URL+"/search?q=suco&all=true")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "suco", body["query"])
	assert.True(t, cat.gotAll)

	status, _ = getJSON(t, srv.URL+"/search")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = getJSON(t, srv.URL+"/search?q=x&all=maybe")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStoresDefaults(t *testing.T) {
	srv, _, lister := newTestServer(t)

	status, body := getJSON(t, srv.URL+"/stores")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "Av Paulista 1000", lister.locality)
	assert.Equal(t, "BR", lister.country)

	_, _ = getJSON(t, srv.URL+"/stores?address=Rua+Augusta&country=CL")
	assert.Equal(t, "Rua Augusta", lister.locality)
	assert.Equal(t, "CL", lister.country)
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/departments", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
