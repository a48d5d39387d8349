package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/uams/internal/models"
)

// LinkService owns the user_addresses many-to-many association. It keeps no
// state between calls; every operation re-reads the current links from the
// store, so both directions of the association are always derived from the
// join table.
type LinkService struct {
	db *gorm.DB
}

// NewLinkService constructs LinkService.
func NewLinkService(db *gorm.DB) *LinkService {
	return &LinkService{db: db}
}

// Attach links an address to a user. When either side is missing the call is
// a no-op; attaching an already-attached pair has no additional effect.
func (s *LinkService) Attach(ctx context.Context, userID, addressID uuid.UUID) error {
	user, address, err := s.loadPair(ctx, userID, addressID)
	if err != nil || user == nil || address == nil {
		return err
	}

	linked, err := s.linked(ctx, userID, addressID)
	if err != nil || linked {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Association("Addresses").Append(address); err != nil {
		return &StoreError{Op: "attach address", Err: err}
	}
	return nil
}

// Detach removes the link between a user and an address. Missing entities or
// an absent link make the call a no-op.
func (s *LinkService) Detach(ctx context.Context, userID, addressID uuid.UUID) error {
	user, address, err := s.loadPair(ctx, userID, addressID)
	if err != nil || user == nil || address == nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Association("Addresses").Delete(address); err != nil {
		return &StoreError{Op: "detach address", Err: err}
	}
	return nil
}

// AddressesOf returns the addresses currently linked to a user.
func (s *LinkService) AddressesOf(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user", userID)
	}
	if err != nil {
		return nil, &StoreError{Op: "load user", Err: err}
	}

	var addresses []models.Address
	if err := s.db.WithContext(ctx).Model(&user).Association("Addresses").Find(&addresses); err != nil {
		return nil, &StoreError{Op: "list user addresses", Err: err}
	}
	return addresses, nil
}

// UsersOf returns the users currently linked to an address.
func (s *LinkService) UsersOf(ctx context.Context, addressID uuid.UUID) ([]models.User, error) {
	var address models.Address
	err := s.db.WithContext(ctx).First(&address, "id = ?", addressID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("address", addressID)
	}
	if err != nil {
		return nil, &StoreError{Op: "load address", Err: err}
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Model(&address).Association("Users").Find(&users); err != nil {
		return nil, &StoreError{Op: "list address users", Err: err}
	}
	return users, nil
}

// ResolveOrderRefs loads the user an order must belong to and, when given,
// the address it references. Unlike Attach/Detach, a missing entity here is a
// hard error: the order would otherwise dangle.
func (s *LinkService) ResolveOrderRefs(ctx context.Context, userID uuid.UUID, addressID *uuid.UUID) (*models.User, *models.Address, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, notFound("user", userID)
	}
	if err != nil {
		return nil, nil, &StoreError{Op: "resolve order user", Err: err}
	}

	if addressID == nil {
		return &user, nil, nil
	}

	var address models.Address
	err = s.db.WithContext(ctx).First(&address, "id = ?", *addressID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, notFound("address", *addressID)
	}
	if err != nil {
		return nil, nil, &StoreError{Op: "resolve order address", Err: err}
	}
	return &user, &address, nil
}

// loadPair fetches both sides of a link. Missing entities are reported as nil
// pointers, not errors; attach/detach treat them as no-ops.
func (s *LinkService) loadPair(ctx context.Context, userID, addressID uuid.UUID) (*models.User, *models.Address, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, &StoreError{Op: "load user", Err: err}
	}

	var address models.Address
	err = s.db.WithContext(ctx).First(&address, "id = ?", addressID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, &StoreError{Op: "load address", Err: err}
	}
	return &user, &address, nil
}

func (s *LinkService) linked(ctx context.Context, userID, addressID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("user_addresses").
		Where("user_id = ? AND address_id = ?", userID, addressID).
		Count(&count).Error
	if err != nil {
		return false, &StoreError{Op: "check link", Err: err}
	}
	return count > 0, nil
}
