package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

// NewRefreshToken returns a random 256-bit token and the hash to persist for it.
func NewRefreshToken() (plain, hash string, err error) {
	b := make([]byte, 32)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}
	plain = base64.RawURLEncoding.EncodeToString(b)
	return plain, HashRefreshToken(plain), nil
}

func HashRefreshToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// MatchRefreshToken compares plain against a stored hash in constant time.
func MatchRefreshToken(plain, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashRefreshToken(plain)), []byte(hash)) == 1
}
