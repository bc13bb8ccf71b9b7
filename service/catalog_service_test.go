package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"jewel-studio-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) CreateProduct(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *mockProductRepo) DeleteProduct(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockProductRepo) CountProducts(filter model.ProductFilter) (int, error) {
	args := m.Called(filter)
	return args.Int(0), args.Error(1)
}

func (m *mockProductRepo) ListProducts(filter model.ProductFilter, limit, offset int) ([]*model.Product, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Product), args.Error(1)
}

// fakeCache is an in-memory CacheClient for tests.
type fakeCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.store[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return val, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.store[key], 10, 64)
	n++
	c.store[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.store, key)
	}
	return nil
}

func makeProducts(n int, category model.Category) []*model.Product {
	url := "https://cdn.example.com/a.jpg"
	products := make([]*model.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, &model.Product{
			ID:       n - i,
			Name:     "Item",
			ImageURL: &url,
			Category: category,
		})
	}
	return products
}

func TestCatalogService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("requires at least one filter", func(t *testing.T) {
		mockRepo := new(mockProductRepo)
		catalog := NewCatalogService(mockRepo, nil, testConfig())

		_, err := catalog.List(ctx, model.ProductFilter{}, 1, 10)

		assert.ErrorIs(t, err, ErrFilterRequired)
		mockRepo.AssertNotCalled(t, "ListProducts")
		mockRepo.AssertNotCalled(t, "CountProducts")
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		mockRepo := new(mockProductRepo)
		catalog := NewCatalogService(mockRepo, nil, testConfig())

		_, err := catalog.List(ctx, model.ProductFilter{Category: "bracelets"}, 1, 10)

		assert.ErrorIs(t, err, ErrInvalidCategory)
		mockRepo.AssertNotCalled(t, "ListProducts")
	})

	t.Run("second page of fifteen earrings", func(t *testing.T) {
		filter := model.ProductFilter{Category: model.CategoryEarrings}
		mockRepo := new(mockProductRepo)
		mockRepo.On("CountProducts", filter).Return(15, nil).Once()
		mockRepo.On("ListProducts", filter, 10, 10).Return(makeProducts(5, model.CategoryEarrings), nil).Once()

		catalog := NewCatalogService(mockRepo, nil, testConfig())
		page, err := catalog.List(ctx, filter, 2, 10)

		assert.NoError(t, err)
		assert.Len(t, page.Products, 5)
		assert.Equal(t, 15, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, 2, page.TotalPages)
		mockRepo.AssertExpectations(t)
	})

	t.Run("defaults page to 1 and limit to 10", func(t *testing.T) {
		filter := model.ProductFilter{Featured: true}
		mockRepo := new(mockProductRepo)
		mockRepo.On("CountProducts", filter).Return(3, nil).Once()
		mockRepo.On("ListProducts", filter, 10, 0).Return(makeProducts(3, model.CategoryPendants), nil).Once()

		catalog := NewCatalogService(mockRepo, nil, testConfig())
		page, err := catalog.List(ctx, filter, 0, 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, 1, page.TotalPages)
		mockRepo.AssertExpectations(t)
	})

	t.Run("clamps limit to the configured cap", func(t *testing.T) {
		filter := model.ProductFilter{Category: model.CategoryPendants}
		mockRepo := new(mockProductRepo)
		mockRepo.On("CountProducts", filter).Return(0, nil).Once()
		mockRepo.On("ListProducts", filter, 100, 0).Return([]*model.Product{}, nil).Once()

		catalog := NewCatalogService(mockRepo, nil, testConfig())
		page, err := catalog.List(ctx, filter, 1, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 100, page.Limit)
		assert.NotNil(t, page.Products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		filter := model.ProductFilter{Category: model.CategoryEarrings}
		expectedErr := errors.New("db error")
		mockRepo := new(mockProductRepo)
		mockRepo.On("CountProducts", filter).Return(0, expectedErr).Maybe()
		mockRepo.On("ListProducts", filter, 10, 0).Return(nil, expectedErr).Maybe()

		catalog := NewCatalogService(mockRepo, nil, testConfig())
		_, err := catalog.List(ctx, filter, 1, 10)

		assert.Error(t, err)
	})
}

func TestCatalogService_ListCaching(t *testing.T) {
	ctx := context.Background()
	filter := model.ProductFilter{Category: model.CategoryDiamondRings}

	mockRepo := new(mockProductRepo)
	mockRepo.On("CountProducts", filter).Return(2, nil)
	mockRepo.On("ListProducts", filter, 10, 0).Return(makeProducts(2, model.CategoryDiamondRings), nil)

	catalog := NewCatalogService(mockRepo, newFakeCache(), testConfig())

	// First call misses the cache and hits the store.
	first, err := catalog.List(ctx, filter, 1, 10)
	assert.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "ListProducts", 1)

	// Second identical call is served from the cache.
	second, err := catalog.List(ctx, filter, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, first.Total, second.Total)
	assert.Len(t, second.Products, 2)
	mockRepo.AssertNumberOfCalls(t, "ListProducts", 1)

	// Invalidation forces the next call back to the store.
	catalog.InvalidateListings(ctx)
	_, err = catalog.List(ctx, filter, 1, 10)
	assert.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "ListProducts", 2)
}
