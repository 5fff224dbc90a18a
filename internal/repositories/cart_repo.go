package repositories

import (
	"context"

	"storefront/internal/models"
)

// CartRepository defines the interface for cart data access.
// It knows nothing about products; callers check product existence.
type CartRepository interface {
	Create(ctx context.Context) (*models.Cart, error)
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	AddLine(ctx context.Context, cartID, productID string) (*models.Cart, error)
}
