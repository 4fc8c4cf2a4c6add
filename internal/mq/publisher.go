package mq

import (
	"encoding/json"
	"log"

	"multivend-settlement-api/internal/dal"

	"github.com/streadway/amqp"
)

// PayoutEvent announces a payout lifecycle change on settlement_events;
// the gateway worker picks up payout.approved and executes the transfer.
type PayoutEvent struct {
	PayoutID uint64 `json:"payout_id"`
	VendorID uint64 `json:"vendor_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Method   string `json:"method"`
	Status   string `json:"status"`
	Ts       int64  `json:"ts"`
}

func PublishPayoutEvent(routingKey string, evt PayoutEvent) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(evt)
	err := dal.RabbitCh.Publish(
		"settlement_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}
