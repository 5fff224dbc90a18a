package repositories

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/store"
)

// FileCartRepository is a CartRepository backed by a JSON document.
type FileCartRepository struct {
	doc *store.Document[models.Cart]
}

// NewFileCartRepository opens (and if needed initializes) the carts file at path.
func NewFileCartRepository(fs afero.Fs, path string) (*FileCartRepository, error) {
	doc, err := store.Open[models.Cart](fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart store: %w", err)
	}
	return &FileCartRepository{doc: doc}, nil
}

// Path returns the backing file.
func (r *FileCartRepository) Path() string {
	return r.doc.Path()
}

// Ping loads the document to check it is readable and well formed.
func (r *FileCartRepository) Ping(ctx context.Context) error {
	_, err := r.doc.Load(ctx)
	return err
}

// Create appends an empty cart.
func (r *FileCartRepository) Create(ctx context.Context) (*models.Cart, error) {
	cart, err := store.Mutate(ctx, r.doc, func(carts []models.Cart) ([]models.Cart, models.Cart, error) {
		cart := models.Cart{
			ID:       store.NextID(carts, cartIDOf),
			Products: []models.CartLine{},
		}
		return append(carts, cart), cart, nil
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *FileCartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	carts, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfCart(carts, id); i >= 0 {
		return &carts[i], nil
	}
	return nil, cartNotFound(id)
}

// AddLine adds one unit of productID to the cart.
func (r *FileCartRepository) AddLine(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	cart, err := store.Mutate(ctx, r.doc, func(carts []models.Cart) ([]models.Cart, models.Cart, error) {
		i := indexOfCart(carts, cartID)
		if i < 0 {
			return nil, models.Cart{}, cartNotFound(cartID)
		}

		carts[i].AddProduct(productID)
		return carts, carts[i], nil
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func cartIDOf(c models.Cart) string { return c.ID }

func indexOfCart(carts []models.Cart, id string) int {
	for i := range carts {
		if carts[i].ID == id {
			return i
		}
	}
	return -1
}

func cartNotFound(id string) error {
	return apperror.NotFound("Cart with id %s not found", id)
}
