package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/uams/internal/models"
	"github.com/example/uams/internal/utils"
	"github.com/example/uams/internal/validation"
)

// Policies for deleting a user who still has orders.
const (
	DeleteRestrict = "restrict"
	DeleteCascade  = "cascade"
)

// UserService orchestrates validation, uniqueness checks and persistence for
// users.
type UserService struct {
	db           *gorm.DB
	deletePolicy string
}

// NewUserService constructs UserService. deletePolicy is DeleteRestrict or
// DeleteCascade; anything else behaves as restrict.
func NewUserService(db *gorm.DB, deletePolicy string) *UserService {
	return &UserService{db: db, deletePolicy: deletePolicy}
}

// CreateUserInput carries the fields accepted when registering a user.
type CreateUserInput struct {
	Email        string
	FirstName    string
	LastName     string
	MobileNumber string
	Password     string
}

// UpdateUserInput carries optional replacement values; nil fields are left
// untouched. An empty Password is ignored rather than rejected.
type UpdateUserInput struct {
	Email        *string
	FirstName    *string
	LastName     *string
	MobileNumber *string
	Password     *string
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, &StoreError{Op: "list users", Err: err}
	}
	return users, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.load(ctx, id)
}

// FindByEmail returns the user owning the given email, or NotFoundError.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", strings.TrimSpace(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "user"}
	}
	if err != nil {
		return nil, &StoreError{Op: "find user by email", Err: err}
	}
	return &user, nil
}

// Create validates the input, enforces email uniqueness and persists a new
// user with the password hashed at rest. Nothing is written when validation
// fails.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	var v validation.Violations
	validation.Required("email", in.Email, &v)
	validation.Email("email", in.Email, &v)
	validation.Required("firstName", in.FirstName, &v)
	validation.Required("lastName", in.LastName, &v)
	validation.Required("password", in.Password, &v)
	validation.MinLen("password", in.Password, 6, &v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	email := strings.TrimSpace(in.Email)
	taken, err := s.emailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ConflictError{Field: "email", Value: email}
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, classifyStore("create user", err, "email", email)
	}
	return &user, nil
}

// Update applies the supplied fields to an existing user. Email uniqueness is
// re-checked only when the email actually changed, excluding the user itself.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*models.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validation.Violations
	if in.Email != nil {
		validation.Required("email", *in.Email, &v)
		validation.Email("email", *in.Email, &v)
	}
	if in.FirstName != nil {
		validation.Required("firstName", *in.FirstName, &v)
	}
	if in.LastName != nil {
		validation.Required("lastName", *in.LastName, &v)
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		validation.MinLen("password", *in.Password, 6, &v)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != user.Email {
			taken, err := s.emailTaken(ctx, email, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, &ConflictError{Field: "email", Value: email}
			}
			user.Email = email
		}
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.MobileNumber != nil {
		user.MobileNumber = strings.TrimSpace(*in.MobileNumber)
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, classifyStore("update user", err, "email", user.Email)
	}
	return user, nil
}

// Delete removes a user. Under the restrict policy the call fails with a
// conflict while orders still reference the user; under cascade the orders
// are deleted with them. Address links are join rows and are always removed.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	var orders int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", id).Count(&orders).Error; err != nil {
		return &StoreError{Op: "count user orders", Err: err}
	}
	if orders > 0 {
		if s.deletePolicy != DeleteCascade {
			return &ConflictError{Field: "orders", Value: fmt.Sprintf("%d order(s) reference user %s", orders, id)}
		}
		if err := s.db.WithContext(ctx).Where("user_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return &StoreError{Op: "cascade delete orders", Err: err}
		}
	}

	if err := s.db.WithContext(ctx).Model(user).Association("Addresses").Clear(); err != nil {
		return &StoreError{Op: "clear address links", Err: err}
	}
	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return &StoreError{Op: "delete user", Err: err}
	}
	return nil
}

func (s *UserService) load(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, &StoreError{Op: "load user", Err: err}
	}
	return &user, nil
}

func (s *UserService) emailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, &StoreError{Op: "check email uniqueness", Err: err}
	}
	return count > 0, nil
}
