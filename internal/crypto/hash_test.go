package crypto

import (
	"errors"
	"strings"
	"testing"
)

// fastParams keeps the tests quick; the format checks don't depend on cost.
func fastParams() HashParams {
	p := DefaultHashParams()
	p.Memory = 8 * 1024
	p.Iterations = 1
	p.Parallelism = 1
	return p
}

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("x7#Kq!2mZp@9Lw$e", DefaultHashParams())
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("HashPassword() expected 6 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("HashPassword() algorithm = %q, want %q", parts[1], "argon2id")
	}
	if parts[2] != "v=19" {
		t.Errorf("HashPassword() version = %q, want %q", parts[2], "v=19")
	}
	if parts[3] != "m=65536,t=3,p=2" {
		t.Errorf("HashPassword() params = %q, want %q", parts[3], "m=65536,t=3,p=2")
	}
}

func TestHashPasswordUsesGivenParams(t *testing.T) {
	hash, err := HashPassword("password", fastParams())
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if !strings.Contains(hash, "$m=8192,t=1,p=1$") {
		t.Errorf("HashPassword() = %q, want custom params encoded", hash)
	}
}

func TestHashPasswordRejectsZeroParams(t *testing.T) {
	_, err := HashPassword("password", HashParams{})
	if !errors.Is(err, ErrInvalidHashParams) {
		t.Errorf("HashPassword() error = %v, want %v", err, ErrInvalidHashParams)
	}
}

func TestVerifyPasswordCorrect(t *testing.T) {
	password, err := Generate(DefaultLength, DefaultClasses())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	hash, err := HashPassword(password, fastParams())
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

func TestVerifyPasswordWrong(t *testing.T) {
	hash, err := HashPassword("correct-password", fastParams())
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

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	hash1, err := HashPassword("same-password", fastParams())
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	hash2, err := HashPassword("same-password", fastParams())
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{name: "garbage", hash: "invalid-hash-format", wantErr: ErrInvalidHashFormat},
		{name: "wrong algorithm", hash: "$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5", wantErr: ErrInvalidHashFormat},
		{name: "wrong version", hash: "$argon2id$v=16$m=8192,t=1,p=1$c2FsdA$a2V5", wantErr: ErrIncompatibleVersion},
		{name: "bad params", hash: "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5", wantErr: ErrInvalidHashFormat},
		{name: "zero iterations", hash: "$argon2id$v=19$m=8192,t=0,p=1$c2FsdA$a2V5", wantErr: ErrInvalidHashFormat},
		{name: "bad salt", hash: "$argon2id$v=19$m=8192,t=1,p=1$!!$a2V5", wantErr: ErrInvalidHashFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword("password", tt.hash)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
