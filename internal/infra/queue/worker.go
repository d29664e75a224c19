package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConfirmationSender delivers the application-received confirmation for
// a freshly created lead.
type ConfirmationSender interface {
	SendConfirmation(to, firstName, businessName string) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  ConfirmationSender
}

func NewWorker(ch *amqp.Channel, sender ConfirmationSender) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("worker: invalid JSON: %s", err)
				// Malformed message, reject without requeue so it
				// dead-letters instead of clogging the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("worker: sending confirmation for lead %s (%s)", payload.LeadID, payload.Email)

			if err := w.Sender.SendConfirmation(payload.Email, payload.FirstName, payload.BusinessName); err != nil {
				log.Printf("worker: confirmation failed for lead %s: %s", payload.LeadID, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("worker: waiting for messages on '%s'", queueName)
	<-forever
}
