package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier is whatever turns a new-lead message into an email to the
// team. The worker knows nothing about SMTP.
type LeadNotifier interface {
	SendLeadAlert(payload LeadCreatedPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack, manual is safer
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] Failed to register consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Malformed message, rejecting: %s", err)
				// Rotten message, no requeue: straight to the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] New lead %s (%s), sending alert", payload.Email, payload.Site)

			if err := w.Notifier.SendLeadAlert(payload); err != nil {
				log.Printf("❌ [WORKER] Alert failed: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Alert sent for %s", payload.Email)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}
