package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func linkCount(t *testing.T, svc *LinkService, userID, addressID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := svc.db.Table("user_addresses").
		Where("user_id = ? AND address_id = ?", userID, addressID).
		Count(&count).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	return count
}

func TestAttachIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLinkService(db)

	user := seedUser(t, db, "attach@x.com")
	address := seedAddress(t, db, "2 Elm St")

	if err := svc.Attach(ctx(), user.ID, address.ID); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if err := svc.Attach(ctx(), user.ID, address.ID); err != nil {
		t.Fatalf("second attach: %v", err)
	}

	if n := linkCount(t, svc, user.ID, address.ID); n != 1 {
		t.Fatalf("expected exactly one link, got %d", n)
	}

	addresses, err := svc.AddressesOf(ctx(), user.ID)
	if err != nil {
		t.Fatalf("list addresses: %v", err)
	}
	if len(addresses) != 1 || addresses[0].ID != address.ID {
		t.Fatalf("expected the address exactly once, got %d entries", len(addresses))
	}
}

func TestAttachDetachRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLinkService(db)

	user := seedUser(t, db, "roundtrip@x.com")
	kept := seedAddress(t, db, "3 Oak St")
	transient := seedAddress(t, db, "4 Pine St")

	if err := svc.Attach(ctx(), user.ID, kept.ID); err != nil {
		t.Fatalf("attach kept: %v", err)
	}

	if err := svc.Attach(ctx(), user.ID, transient.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := svc.Detach(ctx(), user.ID, transient.ID); err != nil {
		t.Fatalf("detach: %v", err)
	}

	addresses, err := svc.AddressesOf(ctx(), user.ID)
	if err != nil {
		t.Fatalf("list addresses: %v", err)
	}
	if len(addresses) != 1 || addresses[0].ID != kept.ID {
		t.Fatalf("expected pre-attach set restored, got %d entries", len(addresses))
	}
}

func TestAttachMissingSidesIsANoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLinkService(db)

	user := seedUser(t, db, "noop@x.com")
	address := seedAddress(t, db, "5 Birch St")

	if err := svc.Attach(ctx(), uuid.New(), address.ID); err != nil {
		t.Fatalf("attach with missing user must be a no-op, got %v", err)
	}
	if err := svc.Attach(ctx(), user.ID, uuid.New()); err != nil {
		t.Fatalf("attach with missing address must be a no-op, got %v", err)
	}

	var count int64
	db.Table("user_addresses").Count(&count)
	if count != 0 {
		t.Fatalf("expected no links written, got %d", count)
	}
}

func TestDetachUnlinkedPairIsANoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLinkService(db)

	user := seedUser(t, db, "unlinked@x.com")
	address := seedAddress(t, db, "6 Cedar St")

	if err := svc.Detach(ctx(), user.ID, address.ID); err != nil {
		t.Fatalf("detach of unlinked pair must be a no-op, got %v", err)
	}
}

func TestUsersOfDerivedFromJoin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLinkService(db)

	first := seedUser(t, db, "share1@x.com")
	second := seedUser(t, db, "share2@x.com")
	address := seedAddress(t, db, "7 Shared St")

	if err := svc.Attach(ctx(), first.ID, address.ID); err != nil {
		t.Fatalf("attach first: %v", err)
	}
	if err := svc.Attach(ctx(), second.ID, address.ID); err != nil {
		t.Fatalf("attach second: %v", err)
	}

	users, err := svc.UsersOf(ctx(), address.ID)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 linked users, got %d", len(users))
	}
}

func TestAddressesOfUnknownUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLinkService(db)

	_, err := svc.AddressesOf(ctx(), uuid.New())
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestResolveOrderRefs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLinkService(db)

	user := seedUser(t, db, "resolve@x.com")
	address := seedAddress(t, db, "8 Resolve St")

	resolvedUser, resolvedAddress, err := svc.ResolveOrderRefs(ctx(), user.ID, &address.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolvedUser.ID != user.ID || resolvedAddress.ID != address.ID {
		t.Fatal("resolved wrong entities")
	}

	var nf *NotFoundError
	if _, _, err := svc.ResolveOrderRefs(ctx(), uuid.New(), nil); !errors.As(err, &nf) {
		t.Fatalf("missing user must be a hard error, got %v", err)
	}
	missing := uuid.New()
	if _, _, err := svc.ResolveOrderRefs(ctx(), user.ID, &missing); !errors.As(err, &nf) {
		t.Fatalf("missing address must be a hard error, got %v", err)
	}
}
