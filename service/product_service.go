package service

import (
	"context"
	"database/sql"
	"errors"

	"jewel-studio-api/logger"
	"jewel-studio-api/model"
	"jewel-studio-api/repository"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrMissingProductFields = errors.New("all product fields are required")
)

// CreateProductInput is the shared creation contract behind both admin entry
// points. Whichever path acquired the media, it has already been resolved to
// a single (MediaURL, IsVideo) pair by the time it gets here.
type CreateProductInput struct {
	Name       string
	Category   model.Category
	FileName   string
	MediaURL   string
	IsVideo    bool
	IsFeatured bool
}

// ProductService handles admin product mutations.
type ProductService struct {
	repo    repository.IProductRepository
	catalog *CatalogService
}

func NewProductService(repo repository.IProductRepository, catalog *CatalogService) *ProductService {
	return &ProductService{
		repo:    repo,
		catalog: catalog,
	}
}

// Create persists a new product, setting exactly one of imageURL/videoURL
// according to the media kind.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	if input.Name == "" || input.Category == "" || input.MediaURL == "" {
		return nil, ErrMissingProductFields
	}
	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	product := &model.Product{
		Name:       input.Name,
		FileName:   input.FileName,
		Category:   input.Category,
		IsFeatured: input.IsFeatured,
	}
	if input.IsVideo {
		product.VideoURL = &input.MediaURL
	} else {
		product.ImageURL = &input.MediaURL
	}

	if err := s.repo.CreateProduct(product); err != nil {
		return nil, err
	}

	logger.Log.WithField("product_id", product.ID).Info("Product created successfully")
	if s.catalog != nil {
		s.catalog.InvalidateListings(ctx)
	}
	return product, nil
}

// Delete removes a product. A repeat delete of an already-deleted id is
// reported as not-found, not a silent success.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteProduct(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}

	if s.catalog != nil {
		s.catalog.InvalidateListings(ctx)
	}
	return nil
}
