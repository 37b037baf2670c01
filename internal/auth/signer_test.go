package auth

import (
	"strings"
	"testing"
)

func TestSignIsDeterministic(t *testing.T) {
	s := NewSigner("secret")
	if s.Sign("message") != s.Sign("message") {
		t.Fatalf("equal messages under one secret must produce equal signatures")
	}
}

func TestSignDependsOnSecretAndMessage(t *testing.T) {
	a := NewSigner("secret-a")
	b := NewSigner("secret-b")
	if a.Sign("message") == b.Sign("message") {
		t.Fatalf("different secrets produced the same signature")
	}
	if a.Sign("message") == a.Sign("massage") {
		t.Fatalf("different messages produced the same signature")
	}
}

func TestSignerVerify(t *testing.T) {
	s := NewSigner("secret")
	sig := s.Sign("header.payload")
	if !s.Verify("header.payload", sig) {
		t.Fatalf("signature failed to verify against its own message")
	}
	if s.Verify("header.tampered", sig) {
		t.Fatalf("signature verified against a different message")
	}
	if s.Verify("header.payload", sig+"x") {
		t.Fatalf("lengthened signature verified")
	}
}

func TestSignatureEncoding(t *testing.T) {
	sig := NewSigner("secret").Sign("message")
	if strings.ContainsAny(sig, "=+/") {
		t.Fatalf("signature %q is not unpadded URL-safe base64", sig)
	}
	raw, err := Decode(sig)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("expected a 32 byte SHA-256 digest, got %d bytes", len(raw))
	}
}
