package auth

import "testing"

func TestHashPasswordUsesFreshSalts(t *testing.T) {
	hash1, salt1, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hash2, salt2, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if salt1 == salt2 {
		t.Fatalf("two hash calls reused the same salt")
	}
	if hash1 == hash2 {
		t.Fatalf("different salts produced identical hashes")
	}

	if !VerifyPassword("hunter2", salt1, hash1) {
		t.Fatalf("first credential failed to verify")
	}
	if !VerifyPassword("hunter2", salt2, hash2) {
		t.Fatalf("second credential failed to verify")
	}
}

func TestHashPasswordSaltLength(t *testing.T) {
	_, salt, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	raw, err := Decode(salt)
	if err != nil {
		t.Fatalf("decode salt: %v", err)
	}
	if len(raw) != saltSize {
		t.Fatalf("expected %d byte salt, got %d", saltSize, len(raw))
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	hash, salt, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if VerifyPassword("battery staple", salt, hash) {
		t.Fatalf("wrong password verified")
	}
	if VerifyPassword("", salt, hash) {
		t.Fatalf("empty password verified")
	}
}

func TestHashPasswordWithSaltIsDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	if HashPasswordWithSalt("hunter2", salt) != HashPasswordWithSalt("hunter2", salt) {
		t.Fatalf("equal password and salt produced different hashes")
	}
	if !VerifyPassword("hunter2", Encode(salt), HashPasswordWithSalt("hunter2", salt)) {
		t.Fatalf("verify disagreed with a hash derived from the same salt")
	}
}

func TestVerifyPasswordMalformedSalt(t *testing.T) {
	hash, _, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if VerifyPassword("hunter2", "***not base64***", hash) {
		t.Fatalf("malformed salt verified instead of failing closed")
	}
}
