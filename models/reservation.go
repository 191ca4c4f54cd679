package models

import (
	"time"
)

// Reservation status values (guest-visible lifecycle stage).
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusArrived   = "Arrived"
	StatusCanceled  = "Canceled"
	StatusNoShow    = "No-show"
	StatusRejected  = "Rejected"
)

// Payment status values (separate axis from Status).
const (
	PaymentPending  = "Pending"
	PaymentDeposit  = "Deposit"
	PaymentPaid     = "Paid"
	PaymentRejected = "Rejected"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Human-shareable booking reference, used in status page URLs and emails.
	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:32" json:"reference_code"`

	Name  string  `gorm:"size:255" json:"name"`
	Email string  `gorm:"size:255" json:"email"`
	Phone *string `gorm:"size:50" json:"phone,omitempty"`

	Date        string  `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	Time        string  `gorm:"size:5" json:"time"`        // HH:MM
	Guests      int     `json:"guests"`
	TableNumber *string `gorm:"column:table_number;size:50" json:"table_number,omitempty"`
	Message     string  `gorm:"type:text" json:"message,omitempty"`

	TotalBill         int64 `gorm:"column:total_bill" json:"total_bill"`
	DepositAmount     int64 `gorm:"column:deposit_amount" json:"deposit_amount"`
	DepositPercentage int   `gorm:"column:deposit_percentage" json:"deposit_percentage"`

	Status        string `gorm:"size:32;index;default:Pending" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32;default:Pending" json:"payment_status"`

	PaymentProofURL *string `gorm:"column:payment_proof_url;size:512" json:"payment_proof_url,omitempty"`
	QRPayload       string  `gorm:"column:qr_payload;size:512" json:"qr_payload,omitempty"`

	ConfirmedAt     *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	ConfirmedBy     *string    `gorm:"column:confirmed_by;size:150" json:"confirmed_by,omitempty"`
	RejectedAt      *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectedBy      *string    `gorm:"column:rejected_by;size:150" json:"rejected_by,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	CheckInTime *time.Time `gorm:"column:check_in_time" json:"check_in_time,omitempty"`

	InvoiceNumber   *string    `gorm:"column:invoice_number;size:64" json:"invoice_number,omitempty"`
	InvoiceIssuedAt *time.Time `gorm:"column:invoice_issued_at" json:"invoice_issued_at,omitempty"`

	// One column per outgoing email kind; the mailer worker checks and sets
	// these to guard against duplicate sends.
	PendingInvoiceEmailSentAt *time.Time `gorm:"column:pending_invoice_email_sent_at" json:"-"`
	ConfirmationEmailSentAt   *time.Time `gorm:"column:confirmation_email_sent_at" json:"-"`
	InvoiceEmailSentAt        *time.Time `gorm:"column:invoice_email_sent_at" json:"-"`
}

// IsFinal reports whether admin edits are disabled for the current status.
func (r *Reservation) IsFinal() bool {
	switch r.Status {
	case StatusArrived, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}
