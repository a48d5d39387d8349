package models

// User represents a registered account holder.
//
// Addresses are shared between users through the user_addresses join table;
// both directions of the association are derived from that table rather than
// kept in sync on the structs.
type User struct {
	BaseModel
	Email        string    `gorm:"uniqueIndex" json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	PasswordHash string    `json:"-"`
	Addresses    []Address `gorm:"many2many:user_addresses;" json:"addresses,omitempty"`
	Orders       []Order   `json:"orders,omitempty"`
}
