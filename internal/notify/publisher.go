// Package notify publishes reservation lifecycle events to RabbitMQ so that
// mail/SMS workers can notify customers and staff.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/nurpe/tourbook/internal/config"
	"github.com/nurpe/tourbook/internal/model"
)

const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
)

type ReservationEvent struct {
	Event         string                  `json:"event"`
	ReservationID string                  `json:"reservation_id"`
	UserID        string                  `json:"user_id,omitempty"`
	Status        model.ReservationStatus `json:"status"`
	ProductName   string                  `json:"product_name"`
	CustomerName  string                  `json:"customer_name"`
	Email         string                  `json:"email"`
	Phone         string                  `json:"phone"`
	Date          string                  `json:"date"`
	TotalAmount   int64                   `json:"total_amount"`
	Deposit       int64                   `json:"deposit"`
	OccurredAt    string                  `json:"occurred_at"`
}

func NewReservationEvent(event string, res model.Reservation, at time.Time) ReservationEvent {
	e := ReservationEvent{
		Event:         event,
		ReservationID: res.ID.String(),
		Status:        res.Status,
		ProductName:   res.ProductName,
		CustomerName:  res.CustomerName,
		Email:         res.Email,
		Phone:         res.Phone,
		Date:          res.Date,
		TotalAmount:   res.TotalAmount,
		Deposit:       res.Deposit,
		OccurredAt:    at.UTC().Format(time.RFC3339),
	}
	if res.UserID != nil {
		e.UserID = res.UserID.String()
	}
	return e
}

// Publisher sends events to a durable queue. With no AMQP URL configured it
// is disabled and Publish is a no-op.
type Publisher struct {
	url   string
	queue string
	log   zerolog.Logger
}

func NewPublisher(cfg config.QueueConfig, log zerolog.Logger) *Publisher {
	return &Publisher{url: cfg.URL, queue: cfg.Queue, log: log}
}

func (p *Publisher) Enabled() bool {
	return p.url != ""
}

func (p *Publisher) Publish(ctx context.Context, event ReservationEvent) error {
	if !p.Enabled() {
		return nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.log.Error().Err(err).Str("queue", p.queue).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Event,
		Body:         body,
	}); err != nil {
		p.log.Error().Err(err).Str("event", event.Event).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
