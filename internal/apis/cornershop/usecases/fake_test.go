package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cornershopparser/internal/apis/cornershop"
	"cornershopparser/internal/apis/cornershop/responses"
	"cornershopparser/internal/logger"
)

func str(s string) *string { return &s }

// fakeAPI serves canned payloads and records every call, sleeps included,
// into one ordered log.
type fakeAPI struct {
	mu       sync.Mutex
	calls    []string
	branches map[string]responses.Branch
	products map[string][]responses.Product
	search   responses.Search
	groups   []responses.BranchGroup
	failOn   map[string]error
}

func (f *fakeAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failOn[call]
}

func (f *fakeAPI) sleep(_ context.Context, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "sleep "+d.String())
	return nil
}

func (f *fakeAPI) GetBranch(_ context.Context, q cornershop.BranchQuery) (responses.Branch, error) {
	if err := f.record("branch " + q.BusinessID); err != nil {
		return responses.Branch{}, err
	}
	b, ok := f.branches[q.BusinessID]
	if !ok {
		return responses.Branch{}, fmt.Errorf("no branch %s", q.BusinessID)
	}
	return b, nil
}

func (f *fakeAPI) ListAisleProducts(_ context.Context, _, aisleID string) ([]responses.Product, error) {
	if err := f.record("aisle " + aisleID); err != nil {
		return nil, err
	}
	return f.products[aisleID], nil
}

func (f *fakeAPI) Search(_ context.Context, _, query string) (responses.Search, error) {
	if err := f.record("search " + query); err != nil {
		return responses.Search{}, err
	}
	return f.search, nil
}

func (f *fakeAPI) ListBranchGroups(_ context.Context, locality, _ string) ([]responses.BranchGroup, error) {
	if err := f.record("groups " + locality); err != nil {
		return nil, err
	}
	return f.groups, nil
}

func (f *fakeAPI) ListCountries(context.Context) ([]map[string]any, error) {
	if err := f.record("countries"); err != nil {
		return nil, err
	}
	return []map[string]any{{"country_code": "BR"}}, nil
}

func products(prefix string, n int) []responses.Product {
	out := make([]responses.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, responses.Product{
			ID:   responses.Text(fmt.Sprintf("%s%d", prefix, i)),
			Name: str(fmt.Sprintf("Product %s%d", prefix, i)),
		})
	}
	return out
}

// newFake builds a branch "52" with department 1 (aisles A, B) and
// department 2 (aisle C).
func newFake() *fakeAPI {
	return &fakeAPI{
		branches: map[string]responses.Branch{
			"52": {
				Branch: &responses.BranchInfo{ID: "52", Name: str("Mercado"), StoreName: "Mercado Centro"},
				Departments: []responses.Department{
					{ID: "1", Name: str("Bebidas"), Aisles: []responses.Aisle{
						{ID: "A", Name: str("Sucos")},
						{ID: "B", Name: str("Refrigerantes")},
					}},
					{ID: "2", Name: str("Padaria"), Aisles: []responses.Aisle{
						{ID: "C", Name: str("Paes")},
					}},
				},
			},
			"99": {
				Branch:      &responses.BranchInfo{ID: "99", Name: str("Outro")},
				Departments: []responses.Department{},
			},
		},
		products: map[string][]responses.Product{
			"A": products("a", 3),
			"B": products("b", 2),
			"C": products("c", 1),
		},
	}
}

func newTestStore(f *fakeAPI) (*Store, error) {
	return NewStore(context.Background(), f, StoreOptions{
		BusinessID: "52",
		Delay:      250 * time.Millisecond,
		Sleep:      f.sleep,
		Logger:     logger.Discard(),
	})
}
