package consumers

import (
	"log"

	"github.com/streadway/amqp"

	"multivend-settlement-api/internal/dal"
)

const maxRetry = 3

// StartAll attaches the payment and gateway-settlement consumers.
func StartAll() {
	if dal.RabbitCh == nil {
		log.Println("RabbitMQ channel not initialized")
		return
	}
	go startPaymentConsumer()
	go startGatewayConsumer()
}

func consume(queue string, handler func(amqp.Delivery)) {
	msgs, err := dal.RabbitCh.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		log.Printf("consume %s failed: %v", queue, err)
		return
	}
	log.Printf("[MQ] consumer attached to %s", queue)
	for d := range msgs {
		go handler(d)
	}
}

// requeue publishes the message back onto its queue for a bounded retry.
func requeue(queue string, body []byte) {
	_ = dal.RabbitCh.Publish(
		"", queue, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
