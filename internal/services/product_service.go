package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
	events   *Events
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events *Events) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: newValidator(),
		events:   events,
	}
}

// GetAllProducts returns the first limit products, or all of them when limit is negative.
func (s *ProductService) GetAllProducts(ctx context.Context, limit int) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates input, applies defaults and stores the product.
// Validation happens before the store is touched.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	product := input.Product()
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}

	s.events.emit(EventProductCreated, product)
	return &product, nil
}

// UpdateProduct validates only the fields present in patch and merges them.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, validationError(err)
	}

	product, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.events.emit(EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns what was removed.
// Carts that reference the product keep their lines.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.events.emit(EventProductDeleted, product)
	return product, nil
}
