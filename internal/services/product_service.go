package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/uams/internal/models"
	"github.com/example/uams/internal/validation"
)

// ProductService handles standalone product CRUD.
type ProductService struct {
	db *gorm.DB
}

// NewProductService constructs ProductService.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
}

// UpdateProductInput carries optional replacement values.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, &StoreError{Op: "list products", Err: err}
	}
	return products, nil
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.load(ctx, id)
}

// Create validates and persists a new product.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	var v validation.Violations
	validation.Required("name", in.Name, &v)
	validation.PositiveFloat("price", in.Price, &v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	product := models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, &StoreError{Op: "create product", Err: err}
	}
	return &product, nil
}

// Update applies the supplied fields to an existing product.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*models.Product, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validation.Violations
	if in.Name != nil {
		validation.Required("name", *in.Name, &v)
	}
	if in.Price != nil {
		validation.PositiveFloat("price", *in.Price, &v)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}

	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, &StoreError{Op: "update product", Err: err}
	}
	return product, nil
}

// Delete removes a product; deleting an unknown id is NotFound.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return &StoreError{Op: "delete product", Err: err}
	}
	return nil
}

func (s *ProductService) load(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("product", id)
	}
	if err != nil {
		return nil, &StoreError{Op: "load product", Err: err}
	}
	return &product, nil
}
