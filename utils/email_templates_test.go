package utils

import (
	"strings"
	"testing"
	"time"

	"resto-backend/models"
)

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{80000, "Rp 80.000"},
		{400000, "Rp 400.000"},
		{1234567, "Rp 1.234.567"},
	}
	for _, tt := range tests {
		if got := FormatIDR(tt.amount); got != tt.want {
			t.Fatalf("FormatIDR(%d): expected %q, got %q", tt.amount, tt.want, got)
		}
	}
}

func sampleReservation() *models.Reservation {
	inv := "INV-20260901-ABCD"
	issued := time.Now()
	return &models.Reservation{
		ID:                1,
		ReferenceCode:     "RES-7K2MQX4B",
		Name:              "Budi Santoso",
		Email:             "budi@example.com",
		Date:              "2026-09-15",
		Time:              "19:00",
		Guests:            4,
		TotalBill:         400000,
		DepositAmount:     80000,
		DepositPercentage: 20,
		InvoiceNumber:     &inv,
		InvoiceIssuedAt:   &issued,
	}
}

func TestRenderPendingInvoiceEmail(t *testing.T) {
	r := sampleReservation()
	subject, plain, html := RenderPendingInvoiceEmail(r)

	if !strings.Contains(subject, r.ReferenceCode) {
		t.Fatalf("subject misses reference: %q", subject)
	}
	for _, body := range []string{plain, html} {
		if !strings.Contains(body, "Rp 400.000") {
			t.Fatalf("body misses total bill: %q", body)
		}
		if !strings.Contains(body, "Rp 80.000") {
			t.Fatalf("body misses deposit: %q", body)
		}
	}
	if !strings.Contains(html, "<html>") {
		t.Fatal("expected an HTML document")
	}
}

func TestRenderConfirmationEmail(t *testing.T) {
	r := sampleReservation()
	subject, plain, _ := RenderConfirmationEmail(r)

	if !strings.Contains(subject, "confirmed") {
		t.Fatalf("unexpected subject %q", subject)
	}
	if !strings.Contains(plain, "Auto assign") {
		t.Fatalf("expected auto-assigned table note, got %q", plain)
	}

	table := "VIP-03"
	r.TableNumber = &table
	_, plain, _ = RenderConfirmationEmail(r)
	if !strings.Contains(plain, "VIP-03") {
		t.Fatalf("expected table number, got %q", plain)
	}
}

func TestRenderInvoiceEmail(t *testing.T) {
	r := sampleReservation()
	subject, plain, html := RenderInvoiceEmail(r)

	if !strings.Contains(subject, "INV-20260901-ABCD") {
		t.Fatalf("subject misses invoice number: %q", subject)
	}
	if !strings.Contains(plain, "Rp 400.000") || !strings.Contains(html, "Rp 400.000") {
		t.Fatal("expected total amount in both bodies")
	}
}
