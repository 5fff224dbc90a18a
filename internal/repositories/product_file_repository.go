package repositories

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/store"
)

// FileProductRepository is a ProductRepository backed by a JSON document.
type FileProductRepository struct {
	doc *store.Document[models.Product]
}

// NewFileProductRepository opens (and if needed initializes) the products file at path.
func NewFileProductRepository(fs afero.Fs, path string) (*FileProductRepository, error) {
	doc, err := store.Open[models.Product](fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product store: %w", err)
	}
	return &FileProductRepository{doc: doc}, nil
}

// Path returns the backing file.
func (r *FileProductRepository) Path() string {
	return r.doc.Path()
}

// Ping loads the document to check it is readable and well formed.
func (r *FileProductRepository) Ping(ctx context.Context) error {
	_, err := r.doc.Load(ctx)
	return err
}

// GetAll returns every product in storage order.
func (r *FileProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.doc.Load(ctx)
}

// GetByID retrieves a single product by its ID.
func (r *FileProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	products, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfProduct(products, id); i >= 0 {
		return &products[i], nil
	}
	return nil, productNotFound(id)
}

// Create stores a new product, assigning the next free id.
func (r *FileProductRepository) Create(ctx context.Context, product *models.Product) error {
	created, err := store.Mutate(ctx, r.doc, func(products []models.Product) ([]models.Product, models.Product, error) {
		for _, p := range products {
			if p.Code == product.Code {
				return nil, models.Product{}, codeConflict(product.Code)
			}
		}

		p := *product
		p.ID = store.NextID(products, productIDOf)
		if p.Thumbnails == nil {
			p.Thumbnails = []string{}
		}
		return append(products, p), p, nil
	})
	if err != nil {
		return err
	}

	*product = created
	return nil
}

// Update merges patch over the stored product and returns the result.
func (r *FileProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	updated, err := store.Mutate(ctx, r.doc, func(products []models.Product) ([]models.Product, models.Product, error) {
		i := indexOfProduct(products, id)
		if i < 0 {
			return nil, models.Product{}, productNotFound(id)
		}

		if patch.Code != nil {
			for _, p := range products {
				if p.Code == *patch.Code && p.ID != id {
					return nil, models.Product{}, codeConflict(*patch.Code)
				}
			}
		}

		products[i] = patch.Apply(products[i])
		return products, products[i], nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product by its ID.
func (r *FileProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	removed, err := store.Mutate(ctx, r.doc, func(products []models.Product) ([]models.Product, models.Product, error) {
		i := indexOfProduct(products, id)
		if i < 0 {
			return nil, models.Product{}, productNotFound(id)
		}

		removed := products[i]
		return append(products[:i], products[i+1:]...), removed, nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func productIDOf(p models.Product) string { return p.ID }

func indexOfProduct(products []models.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func productNotFound(id string) error {
	return apperror.NotFound("Product with id %s not found", id)
}

func codeConflict(code string) error {
	return apperror.Conflict("Product with code %s already exists", code)
}
