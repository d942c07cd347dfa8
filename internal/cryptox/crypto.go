// Package cryptox derives and checks the locally stored operator credentials
// used for offline login.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the random salt stored next to a verifier.
const SaltSize = 32

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier returns the value persisted instead of the derived key.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// CheckPassword reports whether password, stretched with salt, matches verifier.
func CheckPassword(password, salt, verifier []byte) bool {
	candidate := MakeVerifier(DeriveKey(password, salt))
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
