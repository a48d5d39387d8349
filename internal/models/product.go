package models

// Product is a standalone catalog entry with no cross-entity constraints.
type Product struct {
	BaseModel
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}
