package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/service"
)

func profileInputFor(u *domain.User) service.ProfileInput {
	return service.ProfileInput{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func newProfileFixture(t *testing.T) (*service.AuthService, *service.ProfileService, *domain.User, domain.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), 4)
	profiles := service.NewProfileService(db.Users(), 4)

	user, err := auth.Register(context.Background(), registerInput("alice", "alice@example.com", "secret1"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return auth, profiles, user, db.Users()
}

func TestProfileService_Update_Fields(t *testing.T) {
	_, profiles, user, users := newProfileFixture(t)
	ctx := context.Background()

	in := profileInputFor(user)
	in.Username = "alicia"
	in.Email = "alicia@example.com"
	in.FirstName = "Alicia"
	in.LastName = "Keys"

	updated, err := profiles.Update(ctx, user, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Username != "alicia" || updated.Email != "alicia@example.com" || updated.FirstName != "Alicia" {
		t.Fatalf("unexpected result %+v", updated)
	}

	stored, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Username != "alicia" || stored.LastName != "Keys" {
		t.Fatalf("update not persisted: %+v", stored)
	}
	if user.Username != "alice" {
		t.Fatalf("expected caller's user value untouched, got %q", user.Username)
	}
}

func TestProfileService_Update_CollidingEmailChangesNothing(t *testing.T) {
	auth, profiles, user, users := newProfileFixture(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, registerInput("bob", "bob@example.com", "secret1")); err != nil {
		t.Fatalf("Register bob: %v", err)
	}

	in := profileInputFor(user)
	in.FirstName = "Changed"
	in.Username = "renamed"
	in.Email = "bob@example.com"

	_, err := profiles.Update(ctx, user, in)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	stored, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Email != "alice@example.com" || stored.FirstName != "Test" || stored.Username != "alice" {
		t.Fatalf("expected stored profile unchanged, got %+v", stored)
	}
	if user.FirstName != "Test" {
		t.Fatalf("expected in-memory user unchanged, got %+v", user)
	}
}

func TestProfileService_Update_CollidingUsername(t *testing.T) {
	auth, profiles, user, _ := newProfileFixture(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, registerInput("bob", "bob@example.com", "secret1")); err != nil {
		t.Fatalf("Register bob: %v", err)
	}

	in := profileInputFor(user)
	in.Username = "bob"

	if _, err := profiles.Update(ctx, user, in); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestProfileService_Update_KeepingOwnEmailIsNotAConflict(t *testing.T) {
	_, profiles, user, _ := newProfileFixture(t)

	in := profileInputFor(user)
	in.FirstName = "Only"

	if _, err := profiles.Update(context.Background(), user, in); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestProfileService_Update_ChangePassword(t *testing.T) {
	auth, profiles, user, _ := newProfileFixture(t)
	ctx := context.Background()

	in := profileInputFor(user)
	in.OldPassword = "secret1"
	in.NewPassword = "newsecret"
	in.ConfirmPassword = "newsecret"

	if _, err := profiles.Update(ctx, user, in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := auth.Verify(ctx, "alice", "newsecret"); err != nil {
		t.Fatalf("expected new password to verify, got %v", err)
	}
	if _, err := auth.Verify(ctx, "alice", "secret1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
}

func TestProfileService_Update_WrongOldPassword(t *testing.T) {
	auth, profiles, user, users := newProfileFixture(t)
	ctx := context.Background()

	in := profileInputFor(user)
	in.FirstName = "Changed"
	in.OldPassword = "not-it"
	in.NewPassword = "newsecret"
	in.ConfirmPassword = "newsecret"

	_, err := profiles.Update(ctx, user, in)
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	stored, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FirstName != "Test" {
		t.Fatalf("expected no mutation, got first name %q", stored.FirstName)
	}
	if _, err := auth.Verify(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("expected original password to still verify, got %v", err)
	}
}

func TestProfileService_Update_NewPasswordValidation(t *testing.T) {
	_, profiles, user, _ := newProfileFixture(t)
	ctx := context.Background()

	tests := []struct {
		name, newPw, confirm, field string
	}{
		{"too short", "abc", "abc", "new_password"},
		{"mismatch", "newsecret", "different", "confirm_password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := profileInputFor(user)
			in.NewPassword = tc.newPw
			in.ConfirmPassword = tc.confirm

			_, err := profiles.Update(ctx, user, in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field(tc.field) == "" {
				t.Fatalf("expected error on %s, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestProfileService_Update_RequiredFields(t *testing.T) {
	_, profiles, user, _ := newProfileFixture(t)

	in := profileInputFor(user)
	in.Email = "broken"
	in.LastName = ""

	_, err := profiles.Update(context.Background(), user, in)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field("email") == "" || verr.Field("last_name") == "" {
		t.Fatalf("expected email and last_name errors, got %v", verr.Fields)
	}
}

func TestProfileService_Update_Unauthenticated(t *testing.T) {
	_, profiles, _, _ := newProfileFixture(t)

	if _, err := profiles.Update(context.Background(), nil, service.ProfileInput{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
