package services

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/uams/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Address{}, &models.Order{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := models.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedAddress(t *testing.T, db *gorm.DB, street string) *models.Address {
	address := models.Address{
		Street:      street,
		City:        "Springfield",
		State:       "IL",
		Pincode:     "62704",
		Country:     "USA",
		AddressType: models.AddressTypeHome,
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}
	return &address
}

func seedOrder(t *testing.T, db *gorm.DB, user *models.User) *models.Order {
	order := models.Order{
		UserID:             user.ID,
		Price:              19.99,
		Quantity:           2,
		ProductDescription: "two widgets",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return &order
}

func ctx() context.Context { return context.Background() }
