package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"jewel-studio-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("image products get only an image URL", func(t *testing.T) {
		mockRepo := new(mockProductRepo)
		mockRepo.On("CreateProduct", mock.MatchedBy(func(p *model.Product) bool {
			return p.ImageURL != nil && *p.ImageURL == "https://cdn.example.com/ring.jpg" &&
				p.VideoURL == nil && !p.IsFeatured
		})).Return(nil).Once()

		products := NewProductService(mockRepo, nil)
		_, err := products.Create(ctx, CreateProductInput{
			Name:     "Halo Ring",
			Category: model.CategoryDiamondRings,
			FileName: "abc.jpg",
			MediaURL: "https://cdn.example.com/ring.jpg",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("video products get only a video URL", func(t *testing.T) {
		mockRepo := new(mockProductRepo)
		mockRepo.On("CreateProduct", mock.MatchedBy(func(p *model.Product) bool {
			return p.VideoURL != nil && *p.VideoURL == "https://cdn.example.com/ring.mp4" &&
				p.ImageURL == nil && p.IsFeatured
		})).Return(nil).Once()

		products := NewProductService(mockRepo, nil)
		_, err := products.Create(ctx, CreateProductInput{
			Name:       "Halo Ring",
			Category:   model.CategoryDiamondRings,
			FileName:   "abc.mp4",
			MediaURL:   "https://cdn.example.com/ring.mp4",
			IsVideo:    true,
			IsFeatured: true,
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		mockRepo := new(mockProductRepo)
		products := NewProductService(mockRepo, nil)

		_, err := products.Create(ctx, CreateProductInput{Category: model.CategoryPendants, MediaURL: "u"})
		assert.ErrorIs(t, err, ErrMissingProductFields)

		_, err = products.Create(ctx, CreateProductInput{Name: "x", Category: model.CategoryPendants})
		assert.ErrorIs(t, err, ErrMissingProductFields)

		mockRepo.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		products := NewProductService(new(mockProductRepo), nil)

		_, err := products.Create(ctx, CreateProductInput{
			Name:     "Halo Ring",
			Category: "bracelets",
			MediaURL: "https://cdn.example.com/ring.jpg",
		})

		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("create invalidates cached listings", func(t *testing.T) {
		mockRepo := new(mockProductRepo)
		mockRepo.On("CreateProduct", mock.Anything).Return(nil).Once()

		cache := newFakeCache()
		catalog := NewCatalogService(mockRepo, cache, testConfig())
		products := NewProductService(mockRepo, catalog)

		_, err := products.Create(ctx, CreateProductInput{
			Name:     "Halo Ring",
			Category: model.CategoryDiamondRings,
			FileName: "abc.jpg",
			MediaURL: "https://cdn.example.com/ring.jpg",
		})

		assert.NoError(t, err)
		version, err := cache.Get(ctx, listingVersionKey)
		assert.NoError(t, err)
		assert.Equal(t, "1", version)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockProductRepo)
		mockRepo.On("DeleteProduct", 12).Return(nil).Once()

		products := NewProductService(mockRepo, nil)
		err := products.Delete(ctx, 12)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing row is not found, repeat delete included", func(t *testing.T) {
		mockRepo := new(mockProductRepo)
		mockRepo.On("DeleteProduct", 99).Return(sql.ErrNoRows).Twice()

		products := NewProductService(mockRepo, nil)

		assert.ErrorIs(t, products.Delete(ctx, 99), ErrProductNotFound)
		assert.ErrorIs(t, products.Delete(ctx, 99), ErrProductNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mockRepo := new(mockProductRepo)
		mockRepo.On("DeleteProduct", 12).Return(expectedErr).Once()

		products := NewProductService(mockRepo, nil)
		err := products.Delete(ctx, 12)

		assert.ErrorIs(t, err, expectedErr)
	})
}
