package queue

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resto-backend/config"
	"resto-backend/models"
)

func setupDispatchDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Reservation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

func seedReservation(t *testing.T, db *gorm.DB) models.Reservation {
	t.Helper()
	r := models.Reservation{
		ReferenceCode: "RES-TESTMAIL",
		Name:          "Budi Santoso",
		Email:         "budi@example.com",
		Date:          "2026-09-12",
		Time:          "19:00",
		Guests:        4,
		TotalBill:     400000,
		DepositAmount: 80000,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return r
}

func TestDispatchStampsSentAt(t *testing.T) {
	db := setupDispatchDB(t)
	r := seedReservation(t, db)

	if err := Dispatch(context.Background(), EmailEvent{Kind: EmailPendingInvoice, ReservationID: r.ID}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	var got models.Reservation
	if err := db.First(&got, r.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.PendingInvoiceEmailSentAt == nil {
		t.Fatal("expected pending_invoice_email_sent_at to be stamped")
	}
	if got.ConfirmationEmailSentAt != nil || got.InvoiceEmailSentAt != nil {
		t.Fatal("expected other sent-at columns to stay empty")
	}
}

func TestDispatchSkipsAlreadySent(t *testing.T) {
	db := setupDispatchDB(t)
	r := seedReservation(t, db)

	sent := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if err := db.Model(&r).Update("confirmation_email_sent_at", sent).Error; err != nil {
		t.Fatalf("preset sent-at: %v", err)
	}

	if err := Dispatch(context.Background(), EmailEvent{Kind: EmailBookingConfirmation, ReservationID: r.ID}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	var got models.Reservation
	if err := db.First(&got, r.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ConfirmationEmailSentAt == nil || !got.ConfirmationEmailSentAt.Equal(sent) {
		t.Fatalf("expected original timestamp to survive, got %v", got.ConfirmationEmailSentAt)
	}
}

func TestDispatchUnknownKind(t *testing.T) {
	db := setupDispatchDB(t)
	r := seedReservation(t, db)

	if err := Dispatch(context.Background(), EmailEvent{Kind: "newsletter", ReservationID: r.ID}); err == nil {
		t.Fatal("expected error for unknown email kind")
	}
}

func TestDispatchMissingReservation(t *testing.T) {
	setupDispatchDB(t)

	if err := Dispatch(context.Background(), EmailEvent{Kind: EmailPendingInvoice, ReservationID: 999}); err == nil {
		t.Fatal("expected error for missing reservation")
	}
}
