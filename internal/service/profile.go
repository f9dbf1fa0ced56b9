package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/notebook/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// ProfileService applies profile edits for the signed-in user.
type ProfileService struct {
	users      domain.UserRepository
	bcryptCost int
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users domain.UserRepository, bcryptCost int) *ProfileService {
	return &ProfileService{users: users, bcryptCost: bcryptCost}
}

// Update checks every constraint before building the new record, then writes
// it in one statement. current is never modified; on any error the stored
// row is unchanged as well.
func (s *ProfileService) Update(ctx context.Context, current *domain.User, in ProfileInput) (*domain.User, error) {
	if current == nil {
		return nil, domain.ErrUnauthorized
	}

	trimFields(&in.Username, &in.Email, &in.FirstName, &in.LastName)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	// Re-read so the old password is checked against the stored hash, not a
	// value cached in the session.
	stored, err := s.users.GetByID(ctx, current.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if in.OldPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(in.OldPassword)); err != nil {
			return nil, domain.ErrWrongPassword
		}
	}

	if in.Email != stored.Email {
		if err := s.ensureNotTaken(ctx, stored.ID, s.users.GetByEmail, in.Email, domain.ErrDuplicateEmail); err != nil {
			return nil, err
		}
	}
	if in.Username != stored.Username {
		if err := s.ensureNotTaken(ctx, stored.ID, s.users.GetByUsername, in.Username, domain.ErrDuplicateUsername); err != nil {
			return nil, err
		}
	}

	updated := *stored
	updated.Username = in.Username
	updated.Email = in.Email
	updated.FirstName = in.FirstName
	updated.LastName = in.LastName

	if in.NewPassword != "" {
		hash, err := hashPassword(in.NewPassword, s.bcryptCost, "new_password")
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	slog.Info("profile updated", "user_id", updated.ID, "password_changed", in.NewPassword != "")
	return &updated, nil
}

func (s *ProfileService) ensureNotTaken(
	ctx context.Context,
	selfID int64,
	lookup func(context.Context, string) (*domain.User, error),
	value string,
	conflict error,
) error {
	other, err := lookup(ctx, value)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check uniqueness: %w", err)
	case other.ID != selfID:
		return conflict
	}
	return nil
}
