package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resto-backend/queue"
	"resto-backend/services"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type createReservationPayload struct {
	Name        string  `json:"name" binding:"required,min=2"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       *string `json:"phone"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	Guests      int     `json:"guests" binding:"required,min=1"`
	TableNumber *string `json:"table_number"`
	Message     string  `json:"message"`
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	Svc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Svc: svc}
}

func tableOptions() []string {
	sections := []struct {
		prefix string
		count  int
	}{
		{"Indoor", 20},
		{"Outdoor", 15},
		{"VIP", 10},
		{"Terrace", 5},
	}
	var out []string
	for _, s := range sections {
		for i := 1; i <= s.count; i++ {
			out = append(out, fmt.Sprintf("%s-%02d", s.prefix, i))
		}
	}
	return out
}

// GetTableOptions lists the table identifiers the booking form offers,
// "Auto Assign" first.
func (ctrl *ReservationController) GetTableOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": append([]string{"Auto Assign"}, tableOptions()...)})
}

// GetConfirmed exposes the trimmed list of Confirmed bookings the form uses
// to hint which slots are taken.
func (ctrl *ReservationController) GetConfirmed(c *gin.Context) {
	slots, err := ctrl.Svc.ListConfirmed()
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": slots})
}

// CreateReservation handles the public booking form. The new booking starts
// Pending/Pending and a pending-invoice email event is queued; a failed
// publish is logged and never fails the booking.
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var payload createReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidPayload", "message": "invalid reservation payload", "details": err.Error()},
		})
		return
	}

	// "Auto Assign" means no table picked yet.
	table := payload.TableNumber
	if table != nil && (strings.TrimSpace(*table) == "" || strings.EqualFold(*table, "Auto Assign")) {
		table = nil
	}

	r, err := ctrl.Svc.Create(services.CreateReservationInput{
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Date:        payload.Date,
		Time:        payload.Time,
		Guests:      payload.Guests,
		TableNumber: table,
		Message:     payload.Message,
	})
	if err != nil {
		respondInternal(c, err)
		return
	}

	if err := queue.PublishEmailEvent(context.Background(), queue.EmailEvent{
		Kind:          queue.EmailPendingInvoice,
		ReservationID: r.ID,
	}); err != nil {
		log.Printf("reservation %d: pending-invoice event not published: %v", r.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "reservation": r})
}

// GetReservation serves the status/confirmation page, keyed by the booking
// reference.
func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	r, err := ctrl.Svc.GetByReference(c.Param("ref"))
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			respondError(c, http.StatusNotFound, "error.reservationNotFound", "reservation not found")
			return
		}
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": r})
}

// UploadPaymentProof stores the guest's transfer evidence (image or PDF)
// and moves the payment status to Deposit. The upload and the record update
// are two separate steps; a crash in between leaves an orphaned file, not a
// broken booking.
func (ctrl *ReservationController) UploadPaymentProof(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "error.missingFile", "payment proof file is required")
		return
	}

	proofURL, err := services.SaveUpload(fh, services.PrefixPaymentProofs)
	if err != nil {
		respondError(c, http.StatusBadRequest, "error.uploadFailed", err.Error())
		return
	}

	r, err := ctrl.Svc.AttachPaymentProof(c.Param("ref"), proofURL)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			respondError(c, http.StatusNotFound, "error.reservationNotFound", "reservation not found")
			return
		}
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "reservation": r})
}
