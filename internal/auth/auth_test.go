package auth

import (
	"errors"
	"testing"
	"time"

	"taskflow/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPassword_RejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("secret")
	user := models.User{ID: "user-1", Username: "alice"}

	token, err := issuer.Issue(user, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("secret")

	token, err := issuer.Issue(models.User{ID: "user-1"}, time.Now().Add(-2*TokenTTL))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(token); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	token, err := NewIssuer("secret-a").Issue(models.User{ID: "user-1"}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewIssuer("secret-b").Verify(token); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	if _, err := NewIssuer("secret").Verify("not.a.token"); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
