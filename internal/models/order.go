package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultOrderStatus is applied when an order is created without a status.
const DefaultOrderStatus = "Pending"

// Order is a purchase placed by a user. The user association is required and
// does not change after creation; the address reference is optional.
type Order struct {
	BaseModel
	UserID             uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	User               *User      `json:"user,omitempty"`
	AddressID          *uuid.UUID `gorm:"type:uuid" json:"address_id,omitempty"`
	Address            *Address   `json:"address,omitempty"`
	OrderDate          time.Time  `json:"order_date"`
	ShippingDate       *time.Time `json:"shipping_date,omitempty"`
	Status             string     `json:"status"`
	Price              float64    `json:"price"`
	Quantity           int        `json:"quantity"`
	ProductDescription string     `gorm:"size:500" json:"product_description"`
}

// BeforeCreate fills server-side defaults for new orders.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if err := o.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	if strings.TrimSpace(o.Status) == "" {
		o.Status = DefaultOrderStatus
	}
	return nil
}
