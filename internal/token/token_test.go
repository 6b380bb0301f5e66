package token

import (
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := DeriveKey("hunter2")

	encrypted, err := Encrypt(key, "ghp_exampletoken123")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if encrypted == "ghp_exampletoken123" {
		t.Fatal("ciphertext must not equal plaintext")
	}

	got, err := Decrypt(key, encrypted)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != "ghp_exampletoken123" {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestWrongPasswordFails(t *testing.T) {
	encrypted, err := Encrypt(DeriveKey("correct"), "ghp_secret")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = Decrypt(DeriveKey("incorrect"), encrypted)
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	a := DeriveKey("password")
	b := DeriveKey("password")
	if string(a) != string(b) {
		t.Error("same password must derive the same key")
	}
	if len(a) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(a))
	}

	c := DeriveKey("other")
	if string(a) == string(c) {
		t.Error("different passwords must derive different keys")
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	key := DeriveKey("pw")

	a, err := Encrypt(key, "tok")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := Encrypt(key, "tok")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if a == b {
		t.Error("nonce reuse: two encryptions produced identical ciphertext")
	}
}

func TestDecryptGarbage(t *testing.T) {
	key := DeriveKey("pw")

	if _, err := Decrypt(key, "not base64!!!"); err == nil {
		t.Error("expected error for invalid encoding")
	}
	if _, err := Decrypt(key, "AAAA"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword for truncated data, got %v", err)
	}
}
