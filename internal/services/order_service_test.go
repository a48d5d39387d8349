package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/example/uams/internal/models"
)

func TestCreateOrderMissingUserNotPersisted(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))

	_, err := svc.Create(ctx(), CreateOrderInput{
		UserID:             uuid.New(),
		Price:              10,
		Quantity:           1,
		ProductDescription: "a widget",
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Entity != "user" {
		t.Fatalf("expected user not found, got %s", nf.Entity)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no order persisted, got %d", count)
	}
}

func TestCreateOrderNegativePriceViolation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))
	user := seedUser(t, db, "price@x.com")

	_, err := svc.Create(ctx(), CreateOrderInput{
		UserID:             user.ID,
		Price:              -5,
		Quantity:           1,
		ProductDescription: "a widget",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 1 || ve.Violations[0].Field != "price" {
		t.Fatalf("expected single violation on price, got %v", ve.Violations)
	}
}

func TestCreateOrderDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))
	user := seedUser(t, db, "defaults@x.com")

	order, err := svc.Create(ctx(), CreateOrderInput{
		UserID:             user.ID,
		Price:              42.50,
		Quantity:           3,
		ProductDescription: "three widgets",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if order.Status != models.DefaultOrderStatus {
		t.Fatalf("expected default status, got %q", order.Status)
	}
	if order.OrderDate.IsZero() {
		t.Fatal("expected order date defaulted to creation time")
	}
}

func TestCreateOrderWithMissingAddressIsHardError(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))
	user := seedUser(t, db, "addr@x.com")

	missing := uuid.New()
	_, err := svc.Create(ctx(), CreateOrderInput{
		UserID:             user.ID,
		AddressID:          &missing,
		Price:              10,
		Quantity:           1,
		ProductDescription: "a widget",
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Entity != "address" {
		t.Fatalf("expected address not found, got %s", nf.Entity)
	}
}

func TestCreateOrderWithAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))
	user := seedUser(t, db, "withaddr@x.com")
	address := seedAddress(t, db, "9 Order St")

	order, err := svc.Create(ctx(), CreateOrderInput{
		UserID:             user.ID,
		AddressID:          &address.ID,
		Price:              10,
		Quantity:           1,
		ProductDescription: "a widget",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.AddressID == nil || *order.AddressID != address.ID {
		t.Fatal("address reference not stored")
	}
}

func TestUpdateOrderKeepsUserAssociation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))
	user := seedUser(t, db, "owner@x.com")
	order := seedOrder(t, db, user)

	status := "Shipped"
	price := 99.95
	updated, err := svc.Update(ctx(), order.ID, UpdateOrderInput{Status: &status, Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.UserID != user.ID {
		t.Fatal("user association must not change on update")
	}
	if updated.Status != "Shipped" || updated.Price != 99.95 {
		t.Fatalf("mutable fields not applied: %+v", updated)
	}
}

func TestUpdateOrderRejectsInvalidQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))
	user := seedUser(t, db, "qty@x.com")
	order := seedOrder(t, db, user)

	zero := 0
	_, err := svc.Update(ctx(), order.ID, UpdateOrderInput{Quantity: &zero})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	var stored models.Order
	db.First(&stored, "id = ?", order.ID)
	if stored.Quantity != order.Quantity {
		t.Fatal("failed update must not modify the record")
	}
}

func TestDeleteOrderNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))

	err := svc.Delete(ctx(), uuid.New())
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListOrdersSorting(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))
	user := seedUser(t, db, "sort@x.com")

	prices := []float64{30, 10, 20}
	for _, price := range prices {
		if _, err := svc.Create(ctx(), CreateOrderInput{
			UserID:             user.ID,
			Price:              price,
			Quantity:           1,
			ProductDescription: "a widget",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	orders, err := svc.List(ctx(), 10, 0, "price", "asc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for i, want := range []float64{10, 20, 30} {
		if orders[i].Price != want {
			t.Fatalf("expected ascending prices, got %v at %d", orders[i].Price, i)
		}
	}

	orders, err = svc.List(ctx(), 10, 0, "price", "desc")
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if orders[0].Price != 30 {
		t.Fatalf("expected descending prices, got %v first", orders[0].Price)
	}

	// Unknown sort fields must not reach the query.
	if _, err := svc.List(ctx(), 10, 0, "price; drop table orders", "asc"); err != nil {
		t.Fatalf("unknown sort field must fall back, got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, NewLinkService(db))
	user := seedUser(t, db, "list@x.com")
	seedOrder(t, db, user)
	seedOrder(t, db, user)
	seedOrder(t, db, user)

	orders, total, err := svc.ListByUser(ctx(), user.ID, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(orders) != 2 {
		t.Fatalf("expected page of 2, got %d", len(orders))
	}

	var nf *NotFoundError
	if _, _, err := svc.ListByUser(ctx(), uuid.New(), 10, 0); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for unknown user, got %v", err)
	}
}
