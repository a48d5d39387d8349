package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/uams/internal/services"
	"github.com/example/uams/internal/utils"
)

// UserHandler manages user endpoints, including the address links and the
// per-user order listing.
type UserHandler struct {
	users  *services.UserService
	links  *services.LinkService
	orders *services.OrderService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *services.UserService, links *services.LinkService, orders *services.OrderService) *UserHandler {
	return &UserHandler{users: users, links: links, orders: orders}
}

type createUserRequest struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

type updateUserRequest struct {
	Email        *string `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	MobileNumber *string `json:"mobile_number"`
	Password     *string `json:"password"`
}

// List returns all users.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

// Lookup returns the user owning the email given in the query string.
func (h *UserHandler) Lookup(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email query parameter is required")
	}
	user, err := h.users.FindByEmail(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Get returns a single user.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Create registers a new user.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Create(c.UserContext(), services.CreateUserInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}

// Update applies a partial update to a user.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Update(c.UserContext(), id, services.UpdateUserInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Delete removes a user, subject to the configured delete policy.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "user deleted"})
}

// ListAddresses returns the addresses linked to a user.
func (h *UserHandler) ListAddresses(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	addresses, err := h.links.AddressesOf(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": addresses})
}

// AttachAddress links an address to a user.
func (h *UserHandler) AttachAddress(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	addressID, err := parseID(c, "addressId")
	if err != nil {
		return err
	}
	if err := h.links.Attach(c.UserContext(), userID, addressID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "address attached"})
}

// DetachAddress removes the link between a user and an address.
func (h *UserHandler) DetachAddress(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	addressID, err := parseID(c, "addressId")
	if err != nil {
		return err
	}
	if err := h.links.Detach(c.UserContext(), userID, addressID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "address detached"})
}

// ListOrders returns a page of the orders placed by a user.
func (h *UserHandler) ListOrders(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	orders, total, err := h.orders.ListByUser(c.UserContext(), id, pg.Limit, pg.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
