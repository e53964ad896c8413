package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"practicehub/internal/models"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "user-" + uuid.NewString()[:8] + "@practicehub.local"
	u, err := s.Create(ctx, email, "secret123", "Test User", models.RoleReviewer)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })

	if u.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}
	if !u.CanReview() || u.IsAdmin() {
		t.Errorf("role checks: CanReview=%v IsAdmin=%v for reviewer", u.CanReview(), u.IsAdmin())
	}

	byEmail, err := s.FindByEmail(ctx, email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Error("FindByEmail did not return the created user")
	}

	byID, err := s.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Email != email {
		t.Error("FindByID did not return the created user")
	}
}

func TestUserStoreFindMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	u, err := s.FindByEmail(ctx, "nobody-"+uuid.NewString()[:8]+"@practicehub.local")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u != nil {
		t.Error("expected nil user for unknown email")
	}

	u, err = s.FindByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if u != nil {
		t.Error("expected nil user for unknown id")
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "pw-" + uuid.NewString()[:8] + "@practicehub.local"
	u, err := s.Create(context.Background(), email, "correct horse", "PW User", models.RoleMember)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })

	if !s.CheckPassword(u, "correct horse") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(u, "wrong") {
		t.Error("wrong password accepted")
	}
}
