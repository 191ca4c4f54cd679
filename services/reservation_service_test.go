package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resto-backend/models"
)

func newTestService(t *testing.T) *ReservationService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Reservation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &ReservationService{DB: db, PricePerGuest: 100000}
}

func mustCreate(t *testing.T, s *ReservationService, guests int) *models.Reservation {
	t.Helper()
	r, err := s.Create(CreateReservationInput{
		Name:   "Budi Santoso",
		Email:  "budi@example.com",
		Date:   "2026-09-15",
		Time:   "19:00",
		Guests: guests,
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return r
}

func TestCreateComputesTotals(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 4)

	if r.TotalBill != 400000 {
		t.Fatalf("expected total bill 400000, got %d", r.TotalBill)
	}
	if r.DepositAmount != 80000 {
		t.Fatalf("expected deposit 80000, got %d", r.DepositAmount)
	}
	if r.DepositAmount*5 < r.TotalBill {
		t.Fatalf("deposit %d below 20%% of total %d", r.DepositAmount, r.TotalBill)
	}
	if r.Status != models.StatusPending || r.PaymentStatus != models.PaymentPending {
		t.Fatalf("expected Pending/Pending, got %s/%s", r.Status, r.PaymentStatus)
	}
	if !strings.HasPrefix(r.ReferenceCode, "RES-") {
		t.Fatalf("unexpected reference code %q", r.ReferenceCode)
	}
	if r.QRPayload == "" {
		t.Fatal("expected a QR payload")
	}
}

func TestPaymentStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		deposit int64
		total   int64
		want    string
	}{
		{name: "full deposit", deposit: 400000, total: 400000, want: models.PaymentPaid},
		{name: "over deposit", deposit: 500000, total: 400000, want: models.PaymentPaid},
		{name: "partial deposit", deposit: 80000, total: 400000, want: models.PaymentDeposit},
		{name: "no deposit", deposit: 0, total: 400000, want: models.PaymentPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaymentStatusFor(tt.deposit, tt.total); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	tests := []struct {
		name        string
		deposit     int64
		wantPayment string
	}{
		{name: "paid in full", deposit: 400000, wantPayment: models.PaymentPaid},
		{name: "deposit only", deposit: 80000, wantPayment: models.PaymentDeposit},
		{name: "nothing recorded", deposit: 0, wantPayment: models.PaymentPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t)
			r := mustCreate(t, s, 4)
			if err := s.DB.Model(r).Update("deposit_amount", tt.deposit).Error; err != nil {
				t.Fatalf("set deposit: %v", err)
			}

			got, err := s.ConfirmPayment(r.ID, "siti")
			if err != nil {
				t.Fatalf("confirm payment: %v", err)
			}
			if got.PaymentStatus != tt.wantPayment {
				t.Fatalf("expected payment status %s, got %s", tt.wantPayment, got.PaymentStatus)
			}
			if got.Status != models.StatusConfirmed {
				t.Fatalf("expected status Confirmed, got %s", got.Status)
			}
			if got.ConfirmedBy == nil || *got.ConfirmedBy != "siti" {
				t.Fatalf("expected confirmed_by siti, got %v", got.ConfirmedBy)
			}
			if got.ConfirmedAt == nil {
				t.Fatal("expected confirmed_at to be stamped")
			}
			if tt.wantPayment == models.PaymentPaid {
				if got.InvoiceNumber == nil || !strings.HasPrefix(*got.InvoiceNumber, "INV-") {
					t.Fatalf("expected an invoice number, got %v", got.InvoiceNumber)
				}
			} else if got.InvoiceNumber != nil {
				t.Fatalf("unexpected invoice number %q", *got.InvoiceNumber)
			}
		})
	}
}

func TestConfirmPaymentReapprovesRejected(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)

	if _, err := s.Reject(r.ID, "siti", "no tables left"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	got, err := s.ConfirmPayment(r.ID, "siti")
	if err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	if got.Status != models.StatusConfirmed {
		t.Fatalf("expected Confirmed after re-approval, got %s", got.Status)
	}
	if got.RejectionReason != nil || got.RejectedAt != nil || got.RejectedBy != nil {
		t.Fatal("expected rejection fields to be cleared")
	}
}

func TestConfirmPaymentRefusedWhenFinal(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)
	if err := s.DB.Model(r).Update("status", models.StatusArrived).Error; err != nil {
		t.Fatalf("set status: %v", err)
	}

	if _, err := s.ConfirmPayment(r.ID, "siti"); !errors.Is(err, ErrReservationFinal) {
		t.Fatalf("expected ErrReservationFinal, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)

	if _, err := s.Reject(r.ID, "siti", "   "); !errors.Is(err, ErrRejectionReasonRequired) {
		t.Fatalf("expected ErrRejectionReasonRequired, got %v", err)
	}

	got, err := s.GetByID(r.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Fatalf("reservation mutated despite missing reason: %s", got.Status)
	}
}

func TestRejectGuards(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{name: "arrived", status: models.StatusArrived, wantErr: ErrReservationFinal},
		{name: "canceled", status: models.StatusCanceled, wantErr: ErrReservationFinal},
		{name: "already rejected", status: models.StatusRejected, wantErr: ErrAlreadyRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t)
			r := mustCreate(t, s, 2)
			if err := s.DB.Model(r).Update("status", tt.status).Error; err != nil {
				t.Fatalf("set status: %v", err)
			}
			if _, err := s.Reject(r.ID, "siti", "double booked"); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRejectStampsBothAxes(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)

	got, err := s.Reject(r.ID, "siti", "kitchen closed that day")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.Status != models.StatusRejected || got.PaymentStatus != models.PaymentRejected {
		t.Fatalf("expected Rejected/Rejected, got %s/%s", got.Status, got.PaymentStatus)
	}
	if got.RejectionReason == nil || *got.RejectionReason != "kitchen closed that day" {
		t.Fatalf("expected reason to be stored, got %v", got.RejectionReason)
	}
	if got.RejectedBy == nil || *got.RejectedBy != "siti" {
		t.Fatalf("expected rejected_by siti, got %v", got.RejectedBy)
	}
}

func TestMarkArrivedOnlyFromConfirmed(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)

	if _, err := s.MarkArrived(r.ID); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
}

func TestMarkArrivedPreservesCheckInTime(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)

	earlier := time.Date(2026, 9, 15, 18, 45, 0, 0, time.UTC)
	if err := s.DB.Model(r).Updates(map[string]any{
		"status":        models.StatusConfirmed,
		"check_in_time": earlier,
	}).Error; err != nil {
		t.Fatalf("prepare: %v", err)
	}

	got, err := s.MarkArrived(r.ID)
	if err != nil {
		t.Fatalf("mark arrived: %v", err)
	}
	if got.Status != models.StatusArrived {
		t.Fatalf("expected Arrived, got %s", got.Status)
	}
	if got.CheckInTime == nil || !got.CheckInTime.Equal(earlier) {
		t.Fatalf("check_in_time overwritten: %v", got.CheckInTime)
	}
}

func TestMarkArrivedStampsCheckInTime(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)
	if err := s.DB.Model(r).Update("status", models.StatusConfirmed).Error; err != nil {
		t.Fatalf("prepare: %v", err)
	}

	got, err := s.MarkArrived(r.ID)
	if err != nil {
		t.Fatalf("mark arrived: %v", err)
	}
	if got.CheckInTime == nil {
		t.Fatal("expected check_in_time to be stamped")
	}
}

func TestUndoCheckIn(t *testing.T) {
	statuses := []string{models.StatusArrived, models.StatusNoShow, models.StatusPending}
	for _, status := range statuses {
		t.Run(status, func(t *testing.T) {
			s := newTestService(t)
			r := mustCreate(t, s, 2)
			now := time.Now().UTC()
			if err := s.DB.Model(r).Updates(map[string]any{
				"status":        status,
				"check_in_time": now,
			}).Error; err != nil {
				t.Fatalf("prepare: %v", err)
			}

			got, err := s.UndoCheckIn(r.ID)
			if err != nil {
				t.Fatalf("undo check-in: %v", err)
			}
			if got.Status != models.StatusConfirmed {
				t.Fatalf("expected Confirmed, got %s", got.Status)
			}
			if got.CheckInTime != nil {
				t.Fatalf("expected check_in_time cleared, got %v", got.CheckInTime)
			}
		})
	}
}

func TestApplyPatchDepositPercentage(t *testing.T) {
	tests := []struct {
		name        string
		pct         int
		wantDeposit int64
		wantPayment string
	}{
		{name: "half", pct: 50, wantDeposit: 200000, wantPayment: models.PaymentDeposit},
		{name: "full", pct: 100, wantDeposit: 400000, wantPayment: models.PaymentPaid},
		{name: "zero", pct: 0, wantDeposit: 0, wantPayment: models.PaymentPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t)
			r := mustCreate(t, s, 4) // total 400000

			got, err := s.ApplyPatch(r.ID, AdminPatch{DepositPercentage: &tt.pct})
			if err != nil {
				t.Fatalf("apply patch: %v", err)
			}
			if got.DepositAmount != tt.wantDeposit {
				t.Fatalf("expected deposit %d, got %d", tt.wantDeposit, got.DepositAmount)
			}
			if got.PaymentStatus != tt.wantPayment {
				t.Fatalf("expected payment status %s, got %s", tt.wantPayment, got.PaymentStatus)
			}
		})
	}
}

func TestApplyPatchRejectsUnknownStatus(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)

	bad := "Eaten"
	if _, err := s.ApplyPatch(r.ID, AdminPatch{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestAttachPaymentProof(t *testing.T) {
	s := newTestService(t)
	r := mustCreate(t, s, 2)

	got, err := s.AttachPaymentProof(r.ReferenceCode, "http://localhost:8080/uploads/payment_proofs/123-budi.jpg")
	if err != nil {
		t.Fatalf("attach proof: %v", err)
	}
	if got.PaymentStatus != models.PaymentDeposit {
		t.Fatalf("expected Deposit, got %s", got.PaymentStatus)
	}
	if got.PaymentProofURL == nil {
		t.Fatal("expected proof URL to be stored")
	}
	if got.Status != models.StatusPending {
		t.Fatalf("status should be untouched, got %s", got.Status)
	}
}

func TestDeleteRemovesProofFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	s := newTestService(t)
	r := mustCreate(t, s, 2)

	if err := os.MkdirAll(filepath.Join(dir, "payment_proofs"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	stored := filepath.Join(dir, "payment_proofs", "123-budi.jpg")
	if err := os.WriteFile(stored, []byte("proof"), 0644); err != nil {
		t.Fatalf("write proof: %v", err)
	}
	proofURL := "http://localhost:8080/uploads/payment_proofs/123-budi.jpg"
	if err := s.DB.Model(r).Update("payment_proof_url", proofURL).Error; err != nil {
		t.Fatalf("set proof url: %v", err)
	}

	if err := s.Delete(r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.GetByID(r.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("expected reservation gone, got %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Fatalf("expected proof file removed, stat err %v", err)
	}
}
