// Package token encrypts the GitHub personal access token with a key
// derived from a user password, so the token is never stored in the
// clear.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyIterations = 100000
	keyLength     = 32

	// Fixed salt matches the token store format across runs; the token
	// is a revocable credential, not long-term secret material.
	keySalt = "spicetify_salt"
)

// ErrWrongPassword is returned when the ciphertext fails
// authentication, which in practice means the password was wrong.
var ErrWrongPassword = errors.New("token decryption failed: wrong password or corrupted data")

// DeriveKey turns a password into an encryption key.
func DeriveKey(password string) []byte {
	return pbkdf2.Key([]byte(password), []byte(keySalt), keyIterations, keyLength, sha256.New)
}

// Encrypt seals the token with AES-GCM under key and returns a
// base64url string for settings storage.
func Encrypt(key []byte, tok string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(tok), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. A wrong key fails with ErrWrongPassword
// rather than returning garbage.
func Decrypt(key []byte, encrypted string) (string, error) {
	sealed, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	if len(sealed) < gcm.NonceSize() {
		return "", ErrWrongPassword
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrWrongPassword
	}
	return string(plain), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
