package dal

import (
	"log"

	"multivend-settlement-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

// Queues: payment_events carries order.paid / order.refunded from the order
// service; gateway_payouts carries settlement results back from the payout
// gateway worker. settlement_events is the outbound exchange.
func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	if err := ch.ExchangeDeclare("settlement_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("payment_events", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare payment_events failed: %v", err)
	}
	if _, err := ch.QueueDeclare("gateway_payouts", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare gateway_payouts failed: %v", err)
	}
	if err := ch.QueueBind("payment_events", "order.#", "settlement_events", false, nil); err != nil {
		log.Fatalf("queue bind payment_events failed: %v", err)
	}
	if err := ch.QueueBind("gateway_payouts", "gateway.payout.#", "settlement_events", false, nil); err != nil {
		log.Fatalf("queue bind gateway_payouts failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
