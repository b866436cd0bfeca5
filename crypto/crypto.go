package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor used for all stored password hashes.
const hashCost = 12

// DummyHash is verified against when a login targets an unknown username,
// so both code paths pay the same bcrypt cost. It is the hash of a random
// value generated at startup; no password ever verifies against it.
var DummyHash string

func init() {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("critical security error: failed to generate dummy hash input: %v", err))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(base64.StdEncoding.EncodeToString(b)), hashCost)
	if err != nil {
		panic(fmt.Sprintf("critical security error: failed to generate dummy hash: %v", err))
	}
	DummyHash = string(hash)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
