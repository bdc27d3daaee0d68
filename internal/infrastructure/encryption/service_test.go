package encryption

import (
	"strings"
	"testing"
)

const hexKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestRoundTrip(t *testing.T) {
	svc, err := NewService(hexKey)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	for _, plaintext := range []string{"shpat_secret_token", "", "unicode ünïcode 私"} {
		encrypted, err := svc.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plaintext, err)
		}
		if encrypted == plaintext && plaintext != "" {
			t.Errorf("Encrypt(%q) returned the plaintext", plaintext)
		}
		decrypted, err := svc.Decrypt(encrypted)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if decrypted != plaintext {
			t.Errorf("round trip = %q, want %q", decrypted, plaintext)
		}
	}
}

func TestNonceMakesCiphertextsDiffer(t *testing.T) {
	svc, _ := NewService(hexKey)
	a, _ := svc.Encrypt("same input")
	b, _ := svc.Encrypt("same input")
	if a == b {
		t.Error("two encryptions of the same input must not match")
	}
}

func TestRawKeyAccepted(t *testing.T) {
	svc, err := NewService("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("raw 32-byte key rejected: %v", err)
	}
	encrypted, _ := svc.Encrypt("token")
	if out, err := svc.Decrypt(encrypted); err != nil || out != "token" {
		t.Errorf("round trip with raw key = %q, %v", out, err)
	}
}

func TestBadKeyRejected(t *testing.T) {
	if _, err := NewService("too short"); err == nil {
		t.Error("short key accepted")
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	svc, _ := NewService(hexKey)
	if _, err := svc.Decrypt("not base64 at all %%%"); err == nil {
		t.Error("invalid base64 accepted")
	}
	if _, err := svc.Decrypt("c2hvcnQ="); err == nil || !strings.Contains(err.Error(), "too short") {
		t.Errorf("short ciphertext: err = %v, want too-short error", err)
	}
}
