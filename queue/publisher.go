package queue

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func brokerURL() string {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return url
}

// PublishEmailEvent enqueues one email job. Errors are logged and returned
// so callers can ignore them; a lost notification never fails the booking
// request that triggered it. Without a broker configured the event is
// dispatched directly in a goroutine through the same code path the
// consumer uses.
func PublishEmailEvent(ctx context.Context, ev EmailEvent) error {
	url := brokerURL()
	if url == "" {
		go func() {
			if err := Dispatch(context.Background(), ev); err != nil {
				log.Printf("email dispatch (inline): %v", err)
			}
		}()
		return nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so jobs survive broker restarts.
	if _, err := ch.QueueDeclare(emailQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(pubCtx, "", emailQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
