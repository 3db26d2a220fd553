package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadCreatedPayload is published once per genuinely new lead row. Resubmits
// of an existing email never reach the queue.
type LeadCreatedPayload struct {
	LeadID     string    `json:"lead_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	IsCoach    bool      `json:"is_coach"`
	Source     string    `json:"source"`
	Site       string    `json:"site"`
	ReferredBy string    `json:"referred_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadCreated(ctx context.Context, payload LeadCreatedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling lead payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("publishing lead-created: %w", err)
	}

	return nil
}
