package catalog

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/festiloc/festiloc-server/internal/database"
	"github.com/festiloc/festiloc-server/internal/models"
)

// Service exposes the catalog operations backed by the database.
type Service struct {
	db *database.DB
}

// NewService creates a catalog service.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// productLookup fetches the referenced products as an id-indexed map.
// Missing ids are simply absent from the map.
func (s *Service) productLookup(ctx context.Context, ids []string) (map[string]models.Product, error) {
	lookup := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return lookup, nil
	}
	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load package products: %w", err)
	}
	for _, p := range products {
		lookup[p.ID] = p
	}
	return lookup, nil
}

// RecomputeTotals refreshes the four derived price fields of a package from
// its current item list and discount.
func (s *Service) RecomputeTotals(ctx context.Context, pkg *models.Package) error {
	ids := make([]string, 0, len(pkg.Items))
	for _, item := range pkg.Items {
		ids = append(ids, item.ProductID)
	}
	lookup, err := s.productLookup(ctx, ids)
	if err != nil {
		return err
	}
	ApplyTotals(pkg, ComputeTotals(pkg.Items, lookup, pkg.DiscountPct))
	return nil
}

// SavePackage recomputes totals and persists the package with its
// associations.
func (s *Service) SavePackage(ctx context.Context, pkg *models.Package) error {
	if err := s.RecomputeTotals(ctx, pkg); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(pkg).Error
}

// SimilarProducts runs the recommendation pipeline for one product against
// the available catalog.
func (s *Service) SimilarProducts(ctx context.Context, productID string, limit int) ([]ScoredProduct, error) {
	var ref models.Product
	if err := s.db.WithContext(ctx).First(&ref, "id = ?", productID).Error; err != nil {
		return nil, err
	}

	var pool []models.Product
	if err := s.db.WithContext(ctx).
		Where("available = ? AND id <> ?", true, ref.ID).
		Order("created_at DESC").
		Find(&pool).Error; err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	return Similar(ref, pool, limit, time.Now()), nil
}

// StorefrontData is what the public catalog page needs on first load.
type StorefrontData struct {
	Products   []models.Product `json:"products"`
	Categories []string         `json:"categories"`
}

// LoadStorefront fetches products and the category list concurrently.
func (s *Service) LoadStorefront(ctx context.Context) (*StorefrontData, error) {
	var data StorefrontData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("available = ?", true).
			Order("created_at DESC").
			Find(&data.Products).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Model(&models.Product{}).
			Distinct("category").
			Where("category <> ''").
			Order("category").
			Pluck("category", &data.Categories).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load storefront data: %w", err)
	}
	return &data, nil
}
