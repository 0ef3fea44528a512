package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// KDF parameters. The iteration count and output size are kept from the
// legacy credential store so existing hashes stay comparable in shape; the
// hash family is SHA-256.
const (
	saltBytes  = 16
	iterations = 10000
	keyBytes   = 32
)

// ErrHash is returned when key derivation cannot proceed. Credentials are
// never stored when hashing fails.
var ErrHash = errors.New("password hashing failed")

// Authenticator derives and verifies salted password hashes using
// PBKDF2-HMAC-SHA256.
type Authenticator struct {
	iterations int
	keyBytes   int
}

func NewAuthenticator() *Authenticator {
	return &Authenticator{iterations: iterations, keyBytes: keyBytes}
}

// GenerateSalt returns a fresh 16-byte salt from the system CSPRNG,
// base64-encoded for storage.
func (a *Authenticator) GenerateSalt() (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %v", ErrHash, err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// Hash derives a 256-bit key from password and the encoded salt, returned
// base64-encoded.
func (a *Authenticator) Hash(password, salt string) (string, error) {
	if salt == "" {
		return "", fmt.Errorf("%w: empty salt", ErrHash)
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), a.iterations, a.keyBytes, sha256.New)
	return base64.StdEncoding.EncodeToString(key), nil
}

// Verify recomputes the hash for password under salt and compares it with
// storedHash in constant time.
func (a *Authenticator) Verify(password, storedHash, salt string) (bool, error) {
	computed, err := a.Hash(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1, nil
}
