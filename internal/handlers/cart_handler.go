package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperror"
	"storefront/internal/services"
)

// CartHandler handles HTTP requests for carts.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/carts")
	cartRoutes.Post("/", h.HandleCreateCart)
	cartRoutes.Get("/:cid", h.HandleGetCart)
	cartRoutes.Post("/:cid/product/:pid", h.HandleAddProduct)
}

func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	cart, err := h.service.CreateCart(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"payload": cart,
	})
}

// HandleGetCart returns the cart's lines rather than the cart itself.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cartID := c.Params("cid")
	cart, err := h.service.GetCartByID(c.UserContext(), cartID)
	if apperror.Is(err, apperror.KindNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errorBody(fmt.Sprintf("Cart with id %s not found", cartID)))
	}
	if err != nil {
		return err
	}

	lines := cart.Lines()
	return c.JSON(fiber.Map{
		"status":  "success",
		"payload": lines,
		"total":   len(lines),
	})
}

// HandleAddProduct adds one unit of a product to a cart.
func (h *CartHandler) HandleAddProduct(c *fiber.Ctx) error {
	cart, err := h.service.AddProduct(c.UserContext(), c.Params("cid"), c.Params("pid"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"payload": cart,
	})
}
