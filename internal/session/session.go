// Package session binds HTTP clients to users with an HMAC-signed JWT
// stored in an HttpOnly cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/notebook/internal/domain"
)

// CookieName is the name of the session cookie.
const CookieName = "session_token"

// Manager issues, resolves and clears session cookies.
type Manager struct {
	users  domain.UserRepository
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager creates a Manager. users resolves the identity a token names.
func NewManager(users domain.UserRepository, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

// Establish binds the client to user by setting a fresh session cookie.
func (m *Manager) Establish(w http.ResponseWriter, user *domain.User) error {
	token, err := m.issue(user.ID)
	if err != nil {
		return fmt.Errorf("issue session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl / time.Second),
	})
	return nil
}

// Current resolves the user bound to the request. It returns nil, nil for
// anonymous requests, which includes missing, forged or expired tokens and
// tokens naming a user that no longer exists. Store failures are errors.
func (m *Manager) Current(r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}

	userID, err := m.parse(cookie.Value)
	if err != nil {
		return nil, nil
	}

	user, err := m.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session user: %w", err)
	}
	return user, nil
}

// Clear removes the session cookie from the client.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (m *Manager) issue(userID int64) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}

type contextKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext returns the user attached by the auth middleware, or nil.
func FromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(contextKey{}).(*domain.User)
	return user
}

// RequireCurrent returns the user attached to ctx or domain.ErrUnauthorized.
func RequireCurrent(ctx context.Context) (*domain.User, error) {
	if user := FromContext(ctx); user != nil {
		return user, nil
	}
	return nil, domain.ErrUnauthorized
}
