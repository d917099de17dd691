package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/argon2"
)

func TestHashPassword_PHCFormat(t *testing.T) {
	hash, err := HashPassword("picshare-admin-pass")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("HashPassword() expected 6 PHC parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("HashPassword() algorithm = %q, want %q", parts[1], "argon2id")
	}
	want := fmt.Sprintf("m=%d,t=%d,p=%d", argonMemory, argonIterations, argonParallelism)
	if parts[3] != want {
		t.Errorf("HashPassword() params = %q, want %q", parts[3], want)
	}
}

func TestVerifyPassword_Correct(t *testing.T) {
	password := "picshare-user-pass"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	match, err := VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() returned false for correct password")
	}
}

func TestVerifyPassword_Wrong(t *testing.T) {
	hash, err := HashPassword("right-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	match, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if match {
		t.Error("VerifyPassword() returned true for wrong password")
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	hash1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	hash2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for same password (salt should differ)")
	}
}

// Verification reads the parameters back out of the stored PHC string, so a
// hash created under older, cheaper parameters must still verify after the
// package defaults change.
func TestVerifyPassword_ParamsReadFromHash(t *testing.T) {
	password := "legacy-account-pass"
	salt := []byte("0123456789abcdef")

	var (
		memory      uint32 = 32 * 1024
		iterations  uint32 = 2
		parallelism uint8  = 1
	)
	if memory == argonMemory && iterations == argonIterations {
		t.Fatal("legacy params must differ from current defaults for this test to mean anything")
	}

	key := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, argonKeyLength)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	match, err := VerifyPassword(password, encoded)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() returned false for hash created under legacy parameters")
	}
}

func TestVerifyPassword_InvalidFormat(t *testing.T) {
	for _, bad := range []string{
		"",
		"plain-text",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$not-base64!$aGFzaA",
	} {
		if _, err := VerifyPassword("password", bad); err == nil {
			t.Errorf("VerifyPassword(%q) expected error for invalid hash format", bad)
		}
	}
}

func TestVerifyPassword_IncompatibleVersion(t *testing.T) {
	_, err := VerifyPassword("password", "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA")
	if !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("VerifyPassword() error = %v, want ErrIncompatibleVersion", err)
	}
}
