package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/repository/sqlite"
	"github.com/msomdec/notebook/internal/session"
)

const testSecret = "test-secret-for-session-tests-0123456789"

func newTestManager(t *testing.T) (*session.Manager, *sqlite.DB, *domain.User) {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	user := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Create user: %v", err)
	}

	return session.NewManager(db.Users(), testSecret, time.Hour, false), db, user
}

// establishCookie runs Establish and returns the cookie it set.
func establishCookie(t *testing.T, m *session.Manager, user *domain.User) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	if err := m.Establish(w, user); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("expected session cookie to be set")
	return nil
}

func requestWith(c *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if c != nil {
		req.AddCookie(c)
	}
	return req
}

func TestManager_EstablishThenCurrent(t *testing.T) {
	m, _, user := newTestManager(t)

	cookie := establishCookie(t, m, user)
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("expected MaxAge 3600, got %d", cookie.MaxAge)
	}

	got, err := m.Current(requestWith(cookie))
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("expected user %d, got %+v", user.ID, got)
	}
}

func TestManager_Current_Anonymous(t *testing.T) {
	m, _, user := newTestManager(t)
	valid := establishCookie(t, m, user)

	other := session.NewManager(nil, "a-completely-different-secret-value!!", time.Hour, false)
	otherUser := &domain.User{ID: user.ID}
	forged := establishCookie(t, other, otherUser)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"garbage", &http.Cookie{Name: session.CookieName, Value: "not-a-jwt"}},
		{"tampered", &http.Cookie{Name: session.CookieName, Value: valid.Value[:len(valid.Value)-4] + "AAAA"}},
		{"wrong secret", forged},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Current(requestWith(tc.cookie))
			if err != nil {
				t.Fatalf("Current: %v", err)
			}
			if got != nil {
				t.Fatalf("expected anonymous, got user %d", got.ID)
			}
		})
	}
}

func TestManager_Current_Expired(t *testing.T) {
	m, _, user := newTestManager(t)

	issued := time.Now().Add(-2 * time.Hour)
	m.SetClock(func() time.Time { return issued })
	cookie := establishCookie(t, m, user)
	m.SetClock(time.Now)

	got, err := m.Current(requestWith(cookie))
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != nil {
		t.Fatal("expected expired token to be anonymous")
	}
}

func TestManager_Current_DeletedUser(t *testing.T) {
	m, db, user := newTestManager(t)
	cookie := establishCookie(t, m, user)

	if _, err := db.SqlDB.Exec("DELETE FROM users WHERE id = ?", user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	got, err := m.Current(requestWith(cookie))
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != nil {
		t.Fatal("expected token for a deleted user to be anonymous")
	}
}

func TestManager_Clear(t *testing.T) {
	m, _, _ := newTestManager(t)

	w := httptest.NewRecorder()
	m.Clear(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName {
		t.Fatalf("expected one session cookie, got %+v", cookies)
	}
	if cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Fatalf("expected an expiring empty cookie, got %+v", cookies[0])
	}
}

func TestRequireCurrent(t *testing.T) {
	if _, err := session.RequireCurrent(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	user := &domain.User{ID: 7}
	got, err := session.RequireCurrent(session.WithUser(context.Background(), user))
	if err != nil {
		t.Fatalf("RequireCurrent: %v", err)
	}
	if got != user {
		t.Fatal("expected the attached user")
	}
}
