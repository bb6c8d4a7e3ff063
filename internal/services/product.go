package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

const (
	defaultPerPage = 8
	maxPerPage     = 50
	allCategories  = "all"
)

// CatalogService serves read-only catalog data through the cache.
type CatalogService struct {
	repo   repository.ProductRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCatalogService(repo repository.ProductRepository, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CatalogService {
	if c == nil {
		c = cache.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogService{repo: repo, cache: c, ttl: ttl, logger: logger.With(slog.String("component", "catalog"))}
}

// ListProducts lists every product, or one category's when categoryID is set.
func (s *CatalogService) ListProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	part := categoryID
	if part == "" {
		part = allCategories
	}

	return readThrough(ctx, s, cache.Key(cache.ProductListKeyPrefix, part), func() ([]models.Product, error) {
		return s.repo.ListProducts(ctx, categoryID)
	})
}

func (s *CatalogService) GetProduct(ctx context.Context, publicID string) (*models.Product, error) {
	return readThrough(ctx, s, cache.Key(cache.ProductKeyPrefix, publicID), func() (*models.Product, error) {
		return s.repo.GetProduct(ctx, publicID)
	})
}

func (s *CatalogService) NewArrivals(ctx context.Context, page, perPage int) (*models.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	key := cache.Key(cache.NewArrivalsKeyPrefix, strconv.Itoa(page), strconv.Itoa(perPage))

	return readThrough(ctx, s, key, func() (*models.ProductListResponse, error) {
		return s.repo.NewArrivals(ctx, page, perPage)
	})
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return readThrough(ctx, s, cache.Key(cache.CategoryKeyPrefix, allCategories), func() ([]models.Category, error) {
		return s.repo.Categories(ctx)
	})
}

// Breadcrumbs resolves the trail for a category page. Unknown ids and
// lookup failures collapse to the home crumb alone.
func (s *CatalogService) Breadcrumbs(ctx context.Context, categoryID, subcategoryID string) []models.Breadcrumb {

	crumbs := []models.Breadcrumb{{Label: "Home", Path: "/"}}

	if categoryID == "" {
		return crumbs
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		s.logger.Warn("Failed to load categories for breadcrumbs", slog.Any("error", err))
		return crumbs
	}

	for _, category := range categories {
		if category.ID != categoryID {
			continue
		}

		crumbs = append(crumbs, models.Breadcrumb{Label: category.Name, Path: "/categoria/" + category.ID})

		if subcategoryID == "" {
			return crumbs
		}

		for _, child := range category.Children {
			if child.ID == subcategoryID && child.Name != "" {
				crumbs = append(crumbs, models.Breadcrumb{Label: child.Name, Path: "/categoria/" + category.ID + "/" + child.ID})
				break
			}
		}

		return crumbs
	}

	return crumbs
}

// readThrough serves key from the cache, loading and storing it on a miss.
// Cache errors are logged and never fail the read.
func readThrough[T any](ctx context.Context, s *CatalogService, key string, load func() (T, error)) (T, error) {

	var cached T

	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("Cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if hit {
		return cached, nil
	}

	value, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
