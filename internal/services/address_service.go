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

// AddressService handles address CRUD. Addresses live independently of
// users; linking is the LinkService's job.
type AddressService struct {
	db *gorm.DB
}

// NewAddressService constructs AddressService.
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// CreateAddressInput carries the fields accepted when creating an address.
// An empty AddressType defaults to HOME.
type CreateAddressInput struct {
	BuildingName string
	Street       string
	City         string
	State        string
	Pincode      string
	Country      string
	AddressType  string
}

// UpdateAddressInput carries optional replacement values; nil fields are left
// untouched.
type UpdateAddressInput struct {
	BuildingName *string
	Street       *string
	City         *string
	State        *string
	Pincode      *string
	Country      *string
	AddressType  *string
}

// List returns all addresses.
func (s *AddressService) List(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.db.WithContext(ctx).Find(&addresses).Error; err != nil {
		return nil, &StoreError{Op: "list addresses", Err: err}
	}
	return addresses, nil
}

// Get returns an address by id.
func (s *AddressService) Get(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	return s.load(ctx, id)
}

// Create validates and persists a new address.
func (s *AddressService) Create(ctx context.Context, in CreateAddressInput) (*models.Address, error) {
	address := models.Address{
		BuildingName: strings.TrimSpace(in.BuildingName),
		Street:       strings.TrimSpace(in.Street),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		Pincode:      strings.TrimSpace(in.Pincode),
		Country:      strings.TrimSpace(in.Country),
		AddressType:  models.AddressType(strings.TrimSpace(in.AddressType)),
	}
	if address.AddressType == "" {
		address.AddressType = models.AddressTypeHome
	}

	if v := validateAddress(&address); !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	if err := s.db.WithContext(ctx).Create(&address).Error; err != nil {
		return nil, &StoreError{Op: "create address", Err: err}
	}
	return &address, nil
}

// Update applies the supplied fields to an existing address and re-validates
// the result before saving.
func (s *AddressService) Update(ctx context.Context, id uuid.UUID, in UpdateAddressInput) (*models.Address, error) {
	address, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.BuildingName != nil {
		address.BuildingName = strings.TrimSpace(*in.BuildingName)
	}
	if in.Street != nil {
		address.Street = strings.TrimSpace(*in.Street)
	}
	if in.City != nil {
		address.City = strings.TrimSpace(*in.City)
	}
	if in.State != nil {
		address.State = strings.TrimSpace(*in.State)
	}
	if in.Pincode != nil {
		address.Pincode = strings.TrimSpace(*in.Pincode)
	}
	if in.Country != nil {
		address.Country = strings.TrimSpace(*in.Country)
	}
	if in.AddressType != nil {
		address.AddressType = models.AddressType(strings.TrimSpace(*in.AddressType))
	}

	if v := validateAddress(address); !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	if err := s.db.WithContext(ctx).Save(address).Error; err != nil {
		return nil, &StoreError{Op: "update address", Err: err}
	}
	return address, nil
}

// Delete removes an address. Links to users are join rows and go with it;
// orders that referenced the address keep existing with the reference
// cleared.
func (s *AddressService) Delete(ctx context.Context, id uuid.UUID) error {
	address, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(address).Association("Users").Clear(); err != nil {
		return &StoreError{Op: "clear user links", Err: err}
	}
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("address_id = ?", id).
		Update("address_id", nil).Error; err != nil {
		return &StoreError{Op: "clear order references", Err: err}
	}
	if err := s.db.WithContext(ctx).Delete(address).Error; err != nil {
		return &StoreError{Op: "delete address", Err: err}
	}
	return nil
}

func (s *AddressService) load(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := s.db.WithContext(ctx).First(&address, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("address", id)
	}
	if err != nil {
		return nil, &StoreError{Op: "load address", Err: err}
	}
	return &address, nil
}

func validateAddress(a *models.Address) validation.Violations {
	var v validation.Violations
	validation.Required("street", a.Street, &v)
	validation.Required("city", a.City, &v)
	validation.Required("state", a.State, &v)
	validation.MaxLen("state", a.State, 64, &v)
	validation.Required("pincode", a.Pincode, &v)
	validation.Pincode("pincode", a.Pincode, &v)
	validation.Required("country", a.Country, &v)
	if !a.AddressType.Valid() {
		v.Add("addressType", "must be one of HOME, WORK, TEMPORARY, PERMANENT, OTHER")
	}
	return v
}
