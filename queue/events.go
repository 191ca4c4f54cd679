// Package queue moves reservation email work off the request path. HTTP
// handlers publish small {kind, reservation_id} events; the consumer
// re-fetches the booking, renders the email and sends it over SMTP.
package queue

// Email kinds. Each maps to one template and one sent-at guard column.
const (
	EmailPendingInvoice      = "pending_invoice"
	EmailBookingConfirmation = "booking_confirmation"
	EmailInvoice             = "invoice"
)

const emailQueueName = "reservation.email"

type EmailEvent struct {
	Kind          string `json:"kind"`
	ReservationID uint   `json:"reservation_id"`
}
