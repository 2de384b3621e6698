package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/shoplite/shoplite/internal/app/storage/memory"
	"github.com/shoplite/shoplite/internal/apperr"
)

func TestSignupThenLogin(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)

	created, err := svc.Signup(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("expected positive user id, got %d", created.ID)
	}
	if created.Email != "a@x.com" {
		t.Fatalf("expected email echoed back, got %q", created.Email)
	}

	logged, err := svc.Login(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != created.ID {
		t.Fatalf("expected same user id %d, got %d", created.ID, logged.ID)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)

	if _, err := svc.Signup(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err := svc.Signup(context.Background(), "a@x.com", "other")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected exactly one user record, got %d", len(users))
	}
}

func TestSignupCaseSensitiveEmail(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)

	if _, err := svc.Signup(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	// Matching is a case-sensitive exact comparison, so this is a new user.
	if _, err := svc.Signup(context.Background(), "A@x.com", "p2"); err != nil {
		t.Fatalf("signup with different case: %v", err)
	}
}

func TestSignupMissingFields(t *testing.T) {
	svc := New(memory.New(), nil)

	for _, tc := range []struct{ email, password string }{
		{"", "p1"},
		{"a@x.com", ""},
		{"", ""},
	} {
		_, err := svc.Signup(context.Background(), tc.email, tc.password)
		var appErr *apperr.Error
		if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
}

func TestLoginFailures(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)

	if _, err := svc.Signup(context.Background(), "a@x.com", "p1"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err := svc.Login(context.Background(), "a@x.com", "wrong")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if appErr.Message != "Invalid credentials." {
		t.Fatalf("unexpected message %q", appErr.Message)
	}

	_, err = svc.Login(context.Background(), "nobody@x.com", "p1")
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected failed logins to leave the store untouched, got %d users", len(users))
	}
}

func TestPasswordNeverStoredInPlaintext(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)

	if _, err := svc.Signup(context.Background(), "a@x.com", "hunter2"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	u, err := store.GetUserByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.PasswordHash == "hunter2" || u.PasswordHash == "" {
		t.Fatalf("expected bcrypt hash, got %q", u.PasswordHash)
	}
}
