package httpserver

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cornershopparser/internal/http-server/handlers/departments"
	"cornershopparser/internal/http-server/handlers/products"
	"cornershopparser/internal/http-server/handlers/search"
	"cornershopparser/internal/http-server/handlers/stores"
	"cornershopparser/internal/http-server/middleware"
)

type Server struct {
	log *slog.Logger
	mux *http.ServeMux

	// one storefront session: every upstream call runs under it
	upstream sync.Mutex
}

func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{log: log, mux: http.NewServeMux()}
}

func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.mux,
		middleware.RequestIDs,
		middleware.Logging(s.log),
		middleware.Recover(s.log),
	)
}

// Catalog is the store the server answers for.
type Catalog interface {
	departments.CatalogGetter
	products.ProductsGetter
	search.Searcher
}

type Deps struct {
	Catalog         Catalog
	Stores          stores.Lister
	DefaultLocality string
	DefaultCountry  string
	Timeout         time.Duration
}

func (s *Server) RegisterRoutes(dep Deps) {
	exclusive := middleware.Exclusive(&s.upstream)

	s.mux.Handle("/stores", exclusive(stores.NewGetHandler(stores.Options{
		Log:             s.log,
		Lister:          dep.Stores,
		DefaultLocality: dep.DefaultLocality,
		DefaultCountry:  dep.DefaultCountry,
		Timeout:         dep.Timeout,
	})))

	s.mux.Handle("/departments", exclusive(departments.NewGetHandler(departments.Options{
		Log:       s.log,
		Catalog:   dep.Catalog,
		HideEmpty: true,
	})))

	s.mux.Handle("/products", exclusive(products.NewGetHandler(products.Options{
		Log:      s.log,
		Products: dep.Catalog,
	})))

	s.mux.Handle("/search", exclusive(search.NewGetHandler(search.Options{
		Log:      s.log,
		Searcher: dep.Catalog,
		Timeout:  dep.Timeout,
	})))
}
