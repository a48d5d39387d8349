package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/uams/internal/models"
	"github.com/example/uams/internal/validation"
)

// OrderService handles order CRUD. References to the owning user and the
// optional address are resolved through the LinkService before anything is
// written; the user association never changes after creation.
type OrderService struct {
	db    *gorm.DB
	links *LinkService
}

// NewOrderService constructs OrderService.
func NewOrderService(db *gorm.DB, links *LinkService) *OrderService {
	return &OrderService{db: db, links: links}
}

// CreateOrderInput carries the fields accepted when placing an order.
// OrderDate and Status fall back to server defaults when omitted.
type CreateOrderInput struct {
	UserID             uuid.UUID
	AddressID          *uuid.UUID
	OrderDate          *time.Time
	ShippingDate       *time.Time
	Status             string
	Price              float64
	Quantity           int
	ProductDescription string
}

// UpdateOrderInput carries optional replacement values for the mutable order
// fields. The owning user is not among them.
type UpdateOrderInput struct {
	AddressID          *uuid.UUID
	OrderDate          *time.Time
	ShippingDate       *time.Time
	Status             *string
	Price              *float64
	Quantity           *int
	ProductDescription *string
}

// Fields the order listing may be sorted by. Anything else falls back to
// order_date so request input never reaches the query verbatim.
var orderSortFields = map[string]bool{
	"order_date": true,
	"price":      true,
	"quantity":   true,
	"status":     true,
	"created_at": true,
}

// List returns a page of orders sorted by the requested field and direction.
func (s *OrderService) List(ctx context.Context, limit, offset int, sortBy, direction string) ([]models.Order, error) {
	if !orderSortFields[sortBy] {
		sortBy = "order_date"
	}
	if direction != "asc" {
		direction = "desc"
	}

	query := s.db.WithContext(ctx).Order(sortBy + " " + direction)
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, &StoreError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// ListByUser returns a page of the orders belonging to a user.
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, int64, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
		return nil, 0, &StoreError{Op: "check user", Err: err}
	}
	if exists == 0 {
		return nil, 0, notFound("user", userID)
	}

	query := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, &StoreError{Op: "count user orders", Err: err}
	}

	var orders []models.Order
	if err := query.Order("order_date desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, 0, &StoreError{Op: "list user orders", Err: err}
	}
	return orders, total, nil
}

// Get returns an order by id.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.load(ctx, id)
}

// Create validates the input, resolves the user and optional address, and
// persists the order. Validation and resolution both happen before any
// write; a failed create leaves no record behind.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if v := validateOrderFields(in.Price, in.Quantity, in.ProductDescription); !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	if _, _, err := s.links.ResolveOrderRefs(ctx, in.UserID, in.AddressID); err != nil {
		return nil, err
	}

	order := models.Order{
		UserID:             in.UserID,
		AddressID:          in.AddressID,
		ShippingDate:       in.ShippingDate,
		Status:             strings.TrimSpace(in.Status),
		Price:              in.Price,
		Quantity:           in.Quantity,
		ProductDescription: strings.TrimSpace(in.ProductDescription),
	}
	if in.OrderDate != nil {
		order.OrderDate = *in.OrderDate
	}

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, &StoreError{Op: "create order", Err: err}
	}
	return &order, nil
}

// Update applies the supplied mutable fields to an existing order. A changed
// address reference is resolved first and a missing address is a hard error;
// the user association is left alone.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*models.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	price := order.Price
	if in.Price != nil {
		price = *in.Price
	}
	quantity := order.Quantity
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	description := order.ProductDescription
	if in.ProductDescription != nil {
		description = *in.ProductDescription
	}
	v := validateOrderFields(price, quantity, description)
	if in.Status != nil {
		validation.Required("status", *in.Status, &v)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	if in.AddressID != nil {
		if _, _, err := s.links.ResolveOrderRefs(ctx, order.UserID, in.AddressID); err != nil {
			return nil, err
		}
		order.AddressID = in.AddressID
	}
	if in.OrderDate != nil {
		order.OrderDate = *in.OrderDate
	}
	if in.ShippingDate != nil {
		order.ShippingDate = in.ShippingDate
	}
	if in.Status != nil {
		order.Status = strings.TrimSpace(*in.Status)
	}
	order.Price = price
	order.Quantity = quantity
	order.ProductDescription = strings.TrimSpace(description)

	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, &StoreError{Op: "update order", Err: err}
	}
	return order, nil
}

// Delete removes an order; deleting an unknown id is NotFound.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(order).Error; err != nil {
		return &StoreError{Op: "delete order", Err: err}
	}
	return nil
}

func (s *OrderService) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("order", id)
	}
	if err != nil {
		return nil, &StoreError{Op: "load order", Err: err}
	}
	return &order, nil
}

func validateOrderFields(price float64, quantity int, description string) validation.Violations {
	var v validation.Violations
	validation.PositiveFloat("price", price, &v)
	validation.MinInt("quantity", quantity, 1, &v)
	validation.Required("productDescription", description, &v)
	validation.MaxLen("productDescription", description, 500, &v)
	return v
}
