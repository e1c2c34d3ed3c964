package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "password" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword("password", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}

	if err := VerifyPassword("wrong", hash); !errors.Is(err, ErrMismatchedPassword) {
		t.Errorf("expected ErrMismatchedPassword, got %v", err)
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	if err := VerifyPassword("password", "not-a-bcrypt-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password must differ by salt")
	}
}
