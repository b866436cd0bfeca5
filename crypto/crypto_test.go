package crypto

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == password {
		t.Error("Hash equals the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("Expected a bcrypt hash, got %q", hash)
	}

	if !CheckPasswordHash(password, hash) {
		t.Error("CheckPasswordHash failed for correct password")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("CheckPasswordHash succeeded for wrong password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	password := "same input twice"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("HashPassword produced identical hashes for the same input")
	}

	// Both still verify.
	if !CheckPasswordHash(password, hash1) || !CheckPasswordHash(password, hash2) {
		t.Error("A salted hash did not verify its own password")
	}
}

func TestDummyHash(t *testing.T) {
	if DummyHash == "" {
		t.Fatal("DummyHash was not initialized")
	}

	for _, guess := range []string{"", "password", "admin123", DummyHash} {
		if CheckPasswordHash(guess, DummyHash) {
			t.Errorf("DummyHash verified password %q", guess)
		}
	}
}
