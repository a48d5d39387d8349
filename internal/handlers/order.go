package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/uams/internal/services"
	"github.com/example/uams/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	UserID             string     `json:"user_id"`
	AddressID          string     `json:"address_id"`
	OrderDate          *time.Time `json:"order_date"`
	ShippingDate       *time.Time `json:"shipping_date"`
	Status             string     `json:"status"`
	Price              float64    `json:"price"`
	Quantity           int        `json:"quantity"`
	ProductDescription string     `json:"product_description"`
}

type updateOrderRequest struct {
	AddressID          *string    `json:"address_id"`
	OrderDate          *time.Time `json:"order_date"`
	ShippingDate       *time.Time `json:"shipping_date"`
	Status             *string    `json:"status"`
	Price              *float64   `json:"price"`
	Quantity           *int       `json:"quantity"`
	ProductDescription *string    `json:"product_description"`
}

// List returns a page of orders, sortable via sort and direction query
// params.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	sortBy := c.Query("sort", "order_date")
	direction := c.Query("direction", "desc")

	orders, err := h.orders.List(c.UserContext(), pg.Limit, pg.Offset, sortBy, direction)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// Get returns a single order.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

// Create places an order for an existing user.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user_id")
	}

	var addressID *uuid.UUID
	if req.AddressID != "" {
		id, err := uuid.Parse(req.AddressID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid address_id")
		}
		addressID = &id
	}

	order, err := h.orders.Create(c.UserContext(), services.CreateOrderInput{
		UserID:             userID,
		AddressID:          addressID,
		OrderDate:          req.OrderDate,
		ShippingDate:       req.ShippingDate,
		Status:             req.Status,
		Price:              req.Price,
		Quantity:           req.Quantity,
		ProductDescription: req.ProductDescription,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// Update applies a partial update to an order's mutable fields.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var addressID *uuid.UUID
	if req.AddressID != nil {
		parsed, err := uuid.Parse(*req.AddressID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid address_id")
		}
		addressID = &parsed
	}

	order, err := h.orders.Update(c.UserContext(), id, services.UpdateOrderInput{
		AddressID:          addressID,
		OrderDate:          req.OrderDate,
		ShippingDate:       req.ShippingDate,
		Status:             req.Status,
		Price:              req.Price,
		Quantity:           req.Quantity,
		ProductDescription: req.ProductDescription,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

// Delete removes an order.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.orders.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "order deleted"})
}
