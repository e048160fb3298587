package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager_IssueAndValidate(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	token, exp, err := tm.Issue("alice123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry should be in the future, got %v", exp)
	}

	subject, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if subject != "alice123" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "alice123")
	}
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", -1*time.Second)

	token, _, err := tm.Issue("alice123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = tm.Validate(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("right-secret", time.Hour)
	validator := NewTokenManager("wrong-secret", time.Hour)

	token, _, err := issuer.Issue("alice123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = validator.Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	_, err := tm.Validate("not.a.jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
