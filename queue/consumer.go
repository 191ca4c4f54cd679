package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"resto-backend/config"
	"resto-backend/models"
	"resto-backend/utils"
)

// StartEmailConsumer connects to RabbitMQ and processes reservation.email
// jobs until the process exits. It runs a reconnect loop with capped
// backoff; processing errors reject the message without requeue so a bad
// payload cannot spin the worker. Returns immediately when no broker is
// configured (events are then dispatched inline by the publisher).
func StartEmailConsumer() {
	url := brokerURL()
	if url == "" {
		log.Println("email-consumer: no broker configured, inline dispatch active")
		return
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("email-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("email-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("email-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(emailQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(emailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		var ev EmailEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			log.Printf("email-consumer: bad payload: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		if err := Dispatch(context.Background(), ev); err != nil {
			log.Printf("email-consumer: dispatch %s for reservation %d failed: %v", ev.Kind, ev.ReservationID, err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// Dispatch renders and sends one email. The reservation is re-fetched so
// the message reflects current data, and each kind is guarded by its
// sent-at column: already-sent jobs are acked silently. The guard is a
// plain read-then-write, not an atomic claim.
func Dispatch(ctx context.Context, ev EmailEvent) error {
	var r models.Reservation
	if err := config.DB.WithContext(ctx).First(&r, ev.ReservationID).Error; err != nil {
		return fmt.Errorf("fetch reservation %d: %w", ev.ReservationID, err)
	}

	var (
		sentAt  *time.Time
		column  string
		subject string
		plain   string
		html    string
	)

	switch ev.Kind {
	case EmailPendingInvoice:
		sentAt, column = r.PendingInvoiceEmailSentAt, "pending_invoice_email_sent_at"
		subject, plain, html = utils.RenderPendingInvoiceEmail(&r)
	case EmailBookingConfirmation:
		sentAt, column = r.ConfirmationEmailSentAt, "confirmation_email_sent_at"
		subject, plain, html = utils.RenderConfirmationEmail(&r)
	case EmailInvoice:
		sentAt, column = r.InvoiceEmailSentAt, "invoice_email_sent_at"
		subject, plain, html = utils.RenderInvoiceEmail(&r)
	default:
		return fmt.Errorf("unknown email kind %q", ev.Kind)
	}

	if sentAt != nil {
		return nil
	}

	if err := utils.SendEmail(r.Email, subject, plain, html); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := config.DB.WithContext(ctx).Model(&r).Update(column, now).Error; err != nil {
		log.Printf("email-consumer: failed to stamp %s on reservation %d: %v", column, r.ID, err)
	}
	return nil
}
