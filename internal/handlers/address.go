package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/uams/internal/services"
)

// AddressHandler manages address endpoints.
type AddressHandler struct {
	addresses *services.AddressService
	links     *services.LinkService
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(addresses *services.AddressService, links *services.LinkService) *AddressHandler {
	return &AddressHandler{addresses: addresses, links: links}
}

type createAddressRequest struct {
	BuildingName string `json:"building_name"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
	AddressType  string `json:"address_type"`
}

type updateAddressRequest struct {
	BuildingName *string `json:"building_name"`
	Street       *string `json:"street"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Pincode      *string `json:"pincode"`
	Country      *string `json:"country"`
	AddressType  *string `json:"address_type"`
}

// List returns all addresses.
func (h *AddressHandler) List(c *fiber.Ctx) error {
	addresses, err := h.addresses.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": addresses})
}

// Get returns a single address.
func (h *AddressHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	address, err := h.addresses.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": address})
}

// Create adds a new address.
func (h *AddressHandler) Create(c *fiber.Ctx) error {
	var req createAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	address, err := h.addresses.Create(c.UserContext(), services.CreateAddressInput{
		BuildingName: req.BuildingName,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
		AddressType:  req.AddressType,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": address})
}

// Update applies a partial update to an address.
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	address, err := h.addresses.Update(c.UserContext(), id, services.UpdateAddressInput{
		BuildingName: req.BuildingName,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
		AddressType:  req.AddressType,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": address})
}

// Delete removes an address.
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.addresses.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "address deleted"})
}

// ListUsers returns the users linked to an address.
func (h *AddressHandler) ListUsers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.links.UsersOf(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}
