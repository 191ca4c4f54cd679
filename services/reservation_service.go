package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"resto-backend/models"
	"resto-backend/utils"
)

// Sentinel errors for the reservation lifecycle. Controllers map these to
// HTTP statuses with errors.Is.
var (
	ErrReservationNotFound     = errors.New("reservation_not_found")
	ErrRejectionReasonRequired = errors.New("rejection_reason_required")
	ErrReservationFinal        = errors.New("reservation_final")
	ErrAlreadyRejected         = errors.New("already_rejected")
	ErrNotConfirmed            = errors.New("not_confirmed")
	ErrInvalidStatus           = errors.New("invalid_status")
	ErrInvalidPercentage       = errors.New("invalid_percentage")
)

const DefaultDepositPercentage = 20

var validStatuses = map[string]bool{
	models.StatusPending:   true,
	models.StatusConfirmed: true,
	models.StatusArrived:   true,
	models.StatusCanceled:  true,
	models.StatusNoShow:    true,
	models.StatusRejected:  true,
}

// PaymentStatusFor derives the payment status from the recorded deposit
// against the total bill.
func PaymentStatusFor(depositAmount, totalBill int64) string {
	switch {
	case totalBill > 0 && depositAmount >= totalBill:
		return models.PaymentPaid
	case depositAmount > 0:
		return models.PaymentDeposit
	default:
		return models.PaymentPending
	}
}

// PaymentStatusForPercentage is the deposit-percentage variant used by the
// inline admin editor.
func PaymentStatusForPercentage(pct int) string {
	switch {
	case pct >= 100:
		return models.PaymentPaid
	case pct > 0:
		return models.PaymentDeposit
	default:
		return models.PaymentPending
	}
}

// DepositForPercentage recomputes the deposit amount for a percentage of the
// total bill.
func DepositForPercentage(totalBill int64, pct int) int64 {
	return totalBill * int64(pct) / 100
}

type ReservationService struct {
	DB            *gorm.DB
	PricePerGuest int64
}

func NewReservationService(db *gorm.DB) *ReservationService {
	price := int64(100000)
	if raw := strings.TrimSpace(utils.EnvOrDefault("PRICE_PER_GUEST", "")); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			price = n
		}
	}
	return &ReservationService{DB: db, PricePerGuest: price}
}

type CreateReservationInput struct {
	Name        string
	Email       string
	Phone       *string
	Date        string
	Time        string
	Guests      int
	TableNumber *string
	Message     string
}

// Create inserts a new Pending reservation. The commercial fields are fixed
// at creation time: total bill is guests times the per-guest price and the
// deposit starts at the 20% minimum.
func (s *ReservationService) Create(in CreateReservationInput) (*models.Reservation, error) {
	ref, err := utils.GenerateReferenceCode()
	if err != nil {
		return nil, fmt.Errorf("generate reference: %w", err)
	}

	totalBill := int64(in.Guests) * s.PricePerGuest
	depositAmount := DepositForPercentage(totalBill, DefaultDepositPercentage)

	r := models.Reservation{
		ReferenceCode:     ref,
		Name:              strings.TrimSpace(in.Name),
		Email:             strings.TrimSpace(in.Email),
		Phone:             in.Phone,
		Date:              in.Date,
		Time:              in.Time,
		Guests:            in.Guests,
		TableNumber:       in.TableNumber,
		Message:           strings.TrimSpace(in.Message),
		TotalBill:         totalBill,
		DepositAmount:     depositAmount,
		DepositPercentage: DefaultDepositPercentage,
		Status:            models.StatusPending,
		PaymentStatus:     models.PaymentPending,
		QRPayload:         utils.BuildQRPayload(ref, depositAmount),
	}

	if err := s.DB.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *ReservationService) GetByReference(ref string) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.Where("reference_code = ?", strings.TrimSpace(ref)).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &r, nil
}

type ListFilters struct {
	Status string
	Date   string
	Search string
}

func (s *ReservationService) List(f ListFilters) ([]models.Reservation, error) {
	q := s.DB.Model(&models.Reservation{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR reference_code LIKE ?", like, like, like)
	}

	var out []models.Reservation
	if err := q.Order("date DESC, time DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmedSlot is the trimmed public view the booking form uses to show
// which tables and times are already taken.
type ConfirmedSlot struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	TableNumber *string `json:"table_number"`
}

func (s *ReservationService) ListConfirmed() ([]ConfirmedSlot, error) {
	var out []ConfirmedSlot
	err := s.DB.Model(&models.Reservation{}).
		Select("id, name, date, time, table_number").
		Where("status = ?", models.StatusConfirmed).
		Order("date ASC, time ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AttachPaymentProof stores the uploaded proof URL and moves the payment
// status to Deposit. The guest-visible status is deliberately untouched; the
// admin still has to verify the transfer.
func (s *ReservationService) AttachPaymentProof(ref, proofURL string) (*models.Reservation, error) {
	r, err := s.GetByReference(ref)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"payment_proof_url": proofURL,
		"payment_status":    models.PaymentDeposit,
	}
	if err := s.DB.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(r.ID)
}

// ConfirmPayment recomputes the payment status from the recorded deposit,
// advances Pending/Rejected bookings to Confirmed and stamps the acting
// admin. Any earlier rejection is cleared. The first transition to Paid also
// issues the invoice number.
func (s *ReservationService) ConfirmPayment(id uint, actor string) (*models.Reservation, error) {
	r, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r.IsFinal() {
		return nil, ErrReservationFinal
	}

	now := time.Now().UTC()
	paymentStatus := PaymentStatusFor(r.DepositAmount, r.TotalBill)

	updates := map[string]any{
		"payment_status":   paymentStatus,
		"rejected_at":      nil,
		"rejected_by":      nil,
		"rejection_reason": nil,
	}
	if r.Status == models.StatusPending || r.Status == models.StatusRejected {
		updates["status"] = models.StatusConfirmed
		updates["confirmed_at"] = now
		updates["confirmed_by"] = actor
	}
	if paymentStatus == models.PaymentPaid && r.InvoiceNumber == nil {
		invoice, ierr := utils.GenerateInvoiceNumber(now)
		if ierr != nil {
			return nil, fmt.Errorf("generate invoice number: %w", ierr)
		}
		updates["invoice_number"] = invoice
		updates["invoice_issued_at"] = now
	}

	if err := s.DB.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Reject requires a non-empty reason and refuses bookings that are Arrived,
// Canceled or already Rejected. Both axes go to Rejected and any previous
// confirmation is cleared.
func (s *ReservationService) Reject(id uint, actor, reason string) (*models.Reservation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReasonRequired
	}

	r, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	switch r.Status {
	case models.StatusArrived, models.StatusCanceled:
		return nil, ErrReservationFinal
	case models.StatusRejected:
		return nil, ErrAlreadyRejected
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"status":           models.StatusRejected,
		"payment_status":   models.PaymentRejected,
		"rejected_at":      now,
		"rejected_by":      actor,
		"rejection_reason": reason,
		"confirmed_at":     nil,
		"confirmed_by":     nil,
	}
	if err := s.DB.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// MarkArrived checks a Confirmed booking in. check_in_time is only stamped
// the first time; re-marking never moves it.
func (s *ReservationService) MarkArrived(id uint) (*models.Reservation, error) {
	r, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r.Status != models.StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	updates := map[string]any{"status": models.StatusArrived}
	if r.CheckInTime == nil {
		updates["check_in_time"] = time.Now().UTC()
	}
	if err := s.DB.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// UndoCheckIn reverts to Confirmed and clears check_in_time regardless of
// the current status.
func (s *ReservationService) UndoCheckIn(id uint) (*models.Reservation, error) {
	r, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"status":        models.StatusConfirmed,
		"check_in_time": nil,
	}
	if err := s.DB.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// AdminPatch carries the per-field inline edits from the reservations table.
// Nil fields are left alone.
type AdminPatch struct {
	Status            *string `json:"status"`
	TableNumber       *string `json:"table_number"`
	Message           *string `json:"message"`
	DepositPercentage *int    `json:"deposit_percentage"`
}

// ApplyPatch persists a partial edit. Changing the deposit percentage also
// recomputes the deposit amount and the payment status; both fields ride in
// the same update payload, not a transaction, matching how the site always
// wrote them.
func (s *ReservationService) ApplyPatch(id uint, p AdminPatch) (*models.Reservation, error) {
	r, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Status != nil {
		if !validStatuses[*p.Status] {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *p.Status
	}
	if p.TableNumber != nil {
		if strings.TrimSpace(*p.TableNumber) == "" {
			updates["table_number"] = nil
		} else {
			updates["table_number"] = strings.TrimSpace(*p.TableNumber)
		}
	}
	if p.Message != nil {
		updates["message"] = strings.TrimSpace(*p.Message)
	}
	if p.DepositPercentage != nil {
		pct := *p.DepositPercentage
		if pct < 0 {
			return nil, ErrInvalidPercentage
		}
		updates["deposit_percentage"] = pct
		updates["deposit_amount"] = DepositForPercentage(r.TotalBill, pct)
		updates["payment_status"] = PaymentStatusForPercentage(pct)
	}

	if len(updates) == 0 {
		return r, nil
	}
	if err := s.DB.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the reservation permanently, along with its stored payment
// proof file. No undo.
func (s *ReservationService) Delete(id uint) error {
	r, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.DB.Delete(&models.Reservation{}, id).Error; err != nil {
		return err
	}
	if r.PaymentProofURL != nil {
		if err := RemoveStoredFile(*r.PaymentProofURL); err != nil {
			// Record is gone either way; the orphaned file is only worth a log line.
			log.Printf("⚠️ Failed to remove payment proof for reservation %d: %v", id, err)
		}
	}
	return nil
}
