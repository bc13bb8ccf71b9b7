package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jewel-studio-api/config"
	"jewel-studio-api/logger"
	"jewel-studio-api/model"
	"jewel-studio-api/repository"
)

const (
	defaultPageLimit = 10
	listingCacheTTL  = 5 * time.Minute
	// listingVersionKey namespaces listing cache entries; bumping it on any
	// product mutation invalidates every cached page at once.
	listingVersionKey = "products:version"
)

var (
	ErrFilterRequired  = errors.New("category or featured parameter is required")
	ErrInvalidCategory = errors.New("invalid product category")
)

// ProductPage is one page of catalog results plus the pagination metadata
// clients need to render page controls.
type ProductPage struct {
	Products   []*model.Product `json:"products"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// CatalogService serves filtered, paginated, read-only product listings with
// a cache-aside layer in front of the store.
type CatalogService struct {
	repo     repository.IProductRepository
	cache    CacheClient
	maxLimit int
}

func NewCatalogService(repo repository.IProductRepository, cache CacheClient, cfg *config.Config) *CatalogService {
	maxLimit := cfg.Server.MaxPageLimit
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &CatalogService{
		repo:     repo,
		cache:    cache,
		maxLimit: maxLimit,
	}
}

// List returns one page of products matching the filter. At least one of
// category/featured must be supplied; both combine with AND semantics. The
// count and page queries are independent, so they run concurrently.
func (s *CatalogService) List(ctx context.Context, filter model.ProductFilter, page, limit int) (*ProductPage, error) {
	if filter.Category == "" && !filter.Featured {
		return nil, ErrFilterRequired
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	cacheKey := s.listingCacheKey(ctx, filter, page, limit)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	type countResult struct {
		total int
		err   error
	}
	countCh := make(chan countResult, 1)
	go func() {
		total, err := s.repo.CountProducts(filter)
		countCh <- countResult{total: total, err: err}
	}()

	products, err := s.repo.ListProducts(filter, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	count := <-countCh
	if count.err != nil {
		return nil, count.err
	}

	if products == nil {
		products = []*model.Product{}
	}

	result := &ProductPage{
		Products:   products,
		Total:      count.total,
		Page:       page,
		Limit:      limit,
		TotalPages: (count.total + limit - 1) / limit,
	}

	s.writeCache(ctx, cacheKey, result)
	return result, nil
}

// InvalidateListings expires every cached listing page by bumping the
// namespace version. Called after any product mutation.
func (s *CatalogService) InvalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, listingVersionKey); err != nil {
		logger.Log.WithError(err).Warn("Failed to invalidate listing cache")
	}
}

func (s *CatalogService) listingCacheKey(ctx context.Context, filter model.ProductFilter, page, limit int) string {
	version := "0"
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, listingVersionKey); err == nil {
			version = v
		}
	}
	return fmt.Sprintf("products:v%s:%s:%t:%d:%d", version, filter.Category, filter.Featured, page, limit)
}

func (s *CatalogService) readCache(ctx context.Context, key string) (*ProductPage, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Log.WithError(err).Warn("Failed to read listing cache")
		}
		return nil, false
	}
	page := &ProductPage{}
	if err := json.Unmarshal([]byte(cached), page); err != nil {
		return nil, false
	}
	return page, true
}

func (s *CatalogService) writeCache(ctx context.Context, key string, page *ProductPage) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), listingCacheTTL); err != nil {
		logger.Log.WithError(err).Warn("Failed to write listing cache")
	}
}
