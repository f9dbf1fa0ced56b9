package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and credential verification.
// Binding the resulting identity to a client is the session manager's job.
type AuthService struct {
	users      domain.UserRepository
	bcryptCost int

	// dummyHash is compared against when the username is unknown, so that
	// both login failure paths spend the same bcrypt time.
	dummyHash []byte
}

// NewAuthService creates a new AuthService. It panics if bcryptCost is
// outside what bcrypt accepts; config.Validate keeps it in range.
func NewAuthService(users domain.UserRepository, bcryptCost int) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("service: build dummy password hash: %v", err))
	}
	return &AuthService{
		users:      users,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Register validates the form, checks email then username uniqueness, and
// stores a new user with a bcrypt hash of the password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	trimFields(&in.Username, &in.Email, &in.FirstName, &in.LastName)
	if err := validateInput(in); err != nil {
		metrics.AuthEventsTotal.WithLabelValues("register", metrics.ResultInvalid).Inc()
		return nil, err
	}

	if err := s.ensureFree(ctx, in.Email, in.Username); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.AuthEventsTotal.WithLabelValues("register", metrics.ResultConflict).Inc()
		}
		return nil, err
	}

	hash, err := hashPassword(in.Password, s.bcryptCost, "password")
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	}

	// The unique indexes still decide races between the checks above and
	// this insert.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.AuthEventsTotal.WithLabelValues("register", metrics.ResultConflict).Inc()
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.AuthEventsTotal.WithLabelValues("register", metrics.ResultSuccess).Inc()
	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login validates that both fields are present and verifies the credentials.
// Unknown usernames and wrong passwords both yield domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*domain.User, error) {
	trimFields(&in.Username)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.Verify(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.AuthEventsTotal.WithLabelValues("login", metrics.ResultFailure).Inc()
		}
		return nil, err
	}

	metrics.AuthEventsTotal.WithLabelValues("login", metrics.ResultSuccess).Inc()
	return user, nil
}

// Verify returns the user only if username exists and password matches the
// stored hash.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) ensureFree(ctx context.Context, email, username string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

// hashPassword reports an over-long password as a validation error on field.
func hashPassword(password string, cost int, field string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			verr := domain.NewValidationError()
			verr.Add(field, fmt.Sprintf("Must be at most %d bytes.", maxPasswordBytes))
			return "", verr
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
