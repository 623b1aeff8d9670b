// Package service publishes domain events to RabbitMQ.  Publishing is
// best effort: errors are logged and returned so callers can carry on.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/lunchly/internal/queue"
)

// EventRecorder counts publish outcomes.
type EventRecorder interface {
	RecordEvent(outcome string)
}

// Publisher sends ReservationSavedEvent messages to queue.ReservationQueue.
// Each call dials the broker; reservation writes are infrequent.
type Publisher struct {
	URL     string
	Log     logrus.FieldLogger
	Metrics EventRecorder
}

// PublishReservationSaved publishes ev as a persistent JSON message.
func (p *Publisher) PublishReservationSaved(ctx context.Context, ev queue.ReservationSavedEvent) (err error) {
	log := p.Log.WithFields(logrus.Fields{"event_id": ev.EventID, "reservation_id": ev.ReservationID})
	defer func() {
		if err != nil {
			log.WithError(err).Warn("rabbitmq: publish reservation event failed")
			p.record("failed")
			return
		}
		p.record("published")
	}()

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts; declaring is idempotent
	if _, err := ch.QueueDeclare(queue.ReservationQueue, true, false, false, false, nil); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                     // default exchange
		queue.ReservationQueue, // routing key = queue name
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}

func (p *Publisher) record(outcome string) {
	if p.Metrics != nil {
		p.Metrics.RecordEvent(outcome)
	}
}
