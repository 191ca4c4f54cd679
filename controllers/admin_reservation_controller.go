package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-backend/middleware"
	"resto-backend/models"
	"resto-backend/queue"
	"resto-backend/services"
)

type rejectPayload struct {
	Reason string `json:"reason"`
}

// ListReservations returns the back-office table, optionally filtered by
// status, date (exact day) or a free-text search over name/email/reference.
func (ctrl *ReservationController) ListReservations(c *gin.Context) {
	out, err := ctrl.Svc.List(services.ListFilters{
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Search: c.Query("search"),
	})
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out})
}

func (ctrl *ReservationController) lifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReservationNotFound):
		respondError(c, http.StatusNotFound, "error.reservationNotFound", "reservation not found")
	case errors.Is(err, services.ErrRejectionReasonRequired):
		respondError(c, http.StatusBadRequest, "error.reasonRequired", "a rejection reason is required")
	case errors.Is(err, services.ErrReservationFinal):
		respondError(c, http.StatusConflict, "error.reservationFinal", "this reservation can no longer be edited")
	case errors.Is(err, services.ErrAlreadyRejected):
		respondError(c, http.StatusConflict, "error.alreadyRejected", "this reservation is already rejected")
	case errors.Is(err, services.ErrNotConfirmed):
		respondError(c, http.StatusConflict, "error.notConfirmed", "only confirmed reservations can be checked in")
	case errors.Is(err, services.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, "error.invalidStatus", "unknown reservation status")
	case errors.Is(err, services.ErrInvalidPercentage):
		respondError(c, http.StatusBadRequest, "error.invalidPercentage", "deposit percentage must be zero or positive")
	default:
		respondInternal(c, err)
	}
}

// ConfirmPayment verifies the deposit, advances the booking to Confirmed
// and queues the confirmation email (plus the invoice once fully paid).
func (ctrl *ReservationController) ConfirmPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	r, err := ctrl.Svc.ConfirmPayment(id, middleware.AdminName(c))
	if err != nil {
		ctrl.lifecycleError(c, err)
		return
	}

	events := []string{queue.EmailBookingConfirmation}
	if r.PaymentStatus == models.PaymentPaid {
		events = append(events, queue.EmailInvoice)
	}
	for _, kind := range events {
		if err := queue.PublishEmailEvent(context.Background(), queue.EmailEvent{Kind: kind, ReservationID: r.ID}); err != nil {
			log.Printf("reservation %d: %s event not published: %v", r.ID, kind, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "reservation": r})
}

func (ctrl *ReservationController) RejectReservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload rejectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", "invalid payload")
		return
	}

	r, err := ctrl.Svc.Reject(id, middleware.AdminName(c), payload.Reason)
	if err != nil {
		ctrl.lifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "reservation": r})
}

func (ctrl *ReservationController) MarkArrived(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	r, err := ctrl.Svc.MarkArrived(id)
	if err != nil {
		ctrl.lifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "reservation": r})
}

func (ctrl *ReservationController) UndoCheckIn(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	r, err := ctrl.Svc.UndoCheckIn(id)
	if err != nil {
		ctrl.lifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "reservation": r})
}

// PatchReservation applies the per-field inline edits (status, table,
// notes, deposit percentage).
func (ctrl *ReservationController) PatchReservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var patch services.AdminPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", "invalid payload")
		return
	}

	r, err := ctrl.Svc.ApplyPatch(id, patch)
	if err != nil {
		ctrl.lifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "reservation": r})
}

func (ctrl *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctrl.Svc.Delete(id); err != nil {
		ctrl.lifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
