package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"aiproxy/internal/domain/service"
)

// sha256DigestLen is the length of a base64-encoded SHA-256 sum.
const sha256DigestLen = 44

// sha256Hasher reproduces the legacy digest: base64(SHA-256(password)).
// It is unsalted and unkeyed, so equal passwords share a digest. Only kept so
// digests written by the legacy service still verify.
type sha256Hasher struct{}

// NewSHA256Hasher returns the deterministic legacy hasher.
func NewSHA256Hasher() service.PasswordHasher {
	return sha256Hasher{}
}

func (sha256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))

	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (h sha256Hasher) Check(password, hash string) bool {
	if len(hash) != sha256DigestLen {
		return false
	}
	computed, _ := h.Hash(password)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
