package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateReferenceCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateReferenceCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != len("RES-")+8 {
			t.Fatalf("unexpected length for %q", code)
		}
		if !strings.HasPrefix(code, "RES-") {
			t.Fatalf("missing prefix in %q", code)
		}
		for _, ch := range code[4:] {
			if !strings.ContainsRune(referenceCharset, ch) {
				t.Fatalf("character %q outside charset in %q", ch, code)
			}
		}
		if seen[code] {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}

func TestGenerateInvoiceNumber(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	inv, err := GenerateInvoiceNumber(at)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(inv, "INV-20260901-") {
		t.Fatalf("unexpected invoice number %q", inv)
	}
	if len(inv) != len("INV-20260901-")+4 {
		t.Fatalf("unexpected length for %q", inv)
	}
}

func TestGenerateSecureToken(t *testing.T) {
	tok, err := GenerateSecureToken(24)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(tok) != 48 {
		t.Fatalf("expected 48 hex chars, got %d", len(tok))
	}
	if _, err := GenerateSecureToken(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestBuildQRPayload(t *testing.T) {
	t.Setenv("QRIS_MERCHANT_ID", "TESTMERCHANT")
	got := BuildQRPayload("RES-ABCD2345", 80000)
	if got != "QRIS|TESTMERCHANT|RES-ABCD2345|80000" {
		t.Fatalf("unexpected payload %q", got)
	}
}
