package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cornershopparser/internal/apis/cornershop"
	"cornershopparser/internal/apis/cornershop/mapper"
	"cornershopparser/internal/domain/models"
)

// DefaultDelay separates two dependent storefront calls of one traversal.
const DefaultDelay = time.Second

type SleepFunc func(ctx context.Context, d time.Duration) error

type StoreOptions struct {
	BusinessID string
	Locality   mapper.Locality
	Delay      time.Duration
	Sleep      SleepFunc
	Logger     *slog.Logger
}

// Store owns the Catalog of one branch and runs every traversal against it.
// It is not safe for concurrent use.
type Store struct {
	api     cornershop.CornershopService
	log     *slog.Logger
	loc     mapper.Locality
	delay   time.Duration
	sleep   SleepFunc
	catalog *models.Catalog
}

func NewStore(ctx context.Context, api cornershop.CornershopService, opts StoreOptions) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("cornershop service is nil")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Sleep == nil {
		opts.Sleep = SleepContext
	}

	s := &Store{
		api:   api,
		log:   opts.Logger,
		loc:   opts.Locality,
		delay: opts.Delay,
		sleep: opts.Sleep,
	}
	if err := s.SetBusinessID(ctx, opts.BusinessID); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Catalog() *models.Catalog {
	return s.catalog
}

func (s *Store) BusinessID() string {
	return s.catalog.BusinessID
}

// SetBusinessID fetches the branch and replaces the whole Catalog. On error
// the previous Catalog stays in place.
func (s *Store) SetBusinessID(ctx context.Context, businessID string) error {
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return fmt.Errorf("business id must not be empty")
	}

	raw, err := s.api.GetBranch(ctx, cornershop.BranchQuery{
		BusinessID: businessID,
		Locality:   s.loc.Address,
		Country:    s.loc.Country,
		Language:   s.loc.Language,
	})
	if err != nil {
		return fmt.Errorf("get branch business_id=%s: %w", businessID, err)
	}

	catalog, err := mapper.BuildCatalog(businessID, s.loc, raw)
	if err != nil {
		return fmt.Errorf("build catalog business_id=%s: %w", businessID, err)
	}
	s.catalog = catalog

	s.log.Info("catalog loaded",
		"business_id", businessID,
		"store", catalog.DisplayName(),
		"departments", len(catalog.Departments),
		"aisles", len(catalog.Aisles()),
		"offers", len(catalog.Offers),
	)
	return nil
}

func (s *Store) wait(ctx context.Context) error {
	s.log.Debug("delay between requests", "delay", s.delay.String())
	return s.sleep(ctx, s.delay)
}

func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
