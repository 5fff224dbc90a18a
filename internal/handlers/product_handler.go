package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:pid", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:pid", h.HandleUpdateProduct)
	productRoutes.Delete("/:pid", h.HandleDeleteProduct)
}

// HandleGetProducts lists products, capped by the optional limit query parameter.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	limit := -1
	if c.Context().QueryArgs().Has("limit") {
		limit = parseLimit(c.Query("limit"))
	}

	products, err := h.service.GetAllProducts(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"payload": products,
		"total":   len(products),
	})
}

// parseLimit reads limit the way a JavaScript Number() coercion would:
// surrounding blanks are ignored, an empty value is 0 and fractions are
// truncated. Anything unparseable or negative yields -1, meaning no cap.
func parseLimit(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || n < 0 {
		return -1
	}
	if n > math.MaxInt32 {
		return -1
	}
	return int(n)
}

// HandleGetProductByID retrieves a single product by its ID.
// A missing product is answered here rather than through the error handler.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("pid")
	product, err := h.service.GetProductByID(c.UserContext(), productID)
	if apperror.Is(err, apperror.KindNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errorBody(fmt.Sprintf("Product with id %s not found", productID)))
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"payload": product,
	})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := services.DecodeJSON(c.Body(), &input); err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"payload": product,
	})
}

// HandleUpdateProduct applies a partial update. An id in the body is ignored.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if err := services.DecodeJSON(c.Body(), &patch); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("pid"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"payload": product,
	})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("pid")
	if _, err := h.service.DeleteProduct(c.UserContext(), productID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Product %s deleted", productID),
	})
}
