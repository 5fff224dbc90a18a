package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService coordinates carts with the product catalog.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	events   *Events
}

// NewCartService creates a new CartService. products must be the same
// repository instance the product service uses.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, events *Events) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		events:   events,
	}
}

func (s *CartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart, err := s.carts.Create(ctx)
	if err != nil {
		return nil, err
	}

	s.events.emit(EventCartCreated, cart)
	return cart, nil
}

func (s *CartService) GetCartByID(ctx context.Context, id string) (*models.Cart, error) {
	return s.carts.GetByID(ctx, id)
}

// AddProduct adds one unit of productID to the cart. The product must exist
// when the call is made; if it does not, the cart file is never touched.
// A product deleted between the check and the write is not detected.
func (s *CartService) AddProduct(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.carts.AddLine(ctx, cartID, productID)
	if err != nil {
		return nil, err
	}

	s.events.emit(EventCartProductAdded, map[string]any{
		"cartId":    cart.ID,
		"productId": productID,
	})
	return cart, nil
}
