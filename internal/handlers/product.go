package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/uams/internal/services"
)

// ProductHandler manages product endpoints.
type ProductHandler struct {
	products *services.ProductService
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// List returns all products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// Get returns a single product.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// Create adds a new product.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.products.Create(c.UserContext(), services.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// Update applies a partial update to a product.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.products.Update(c.UserContext(), id, services.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "product deleted"})
}
