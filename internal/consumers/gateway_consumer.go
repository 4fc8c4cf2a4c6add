package consumers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/streadway/amqp"

	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/dto"
	"multivend-settlement-api/internal/service"
)

// startGatewayConsumer applies payout settlement results coming back from
// the payout gateway worker: processing payouts move to completed or
// failed. Settle is idempotent for repeat deliveries of the same result.
func startGatewayConsumer() {
	payoutSvc := service.NewPayoutService()
	consume("gateway_payouts", func(d amqp.Delivery) {
		var msg dto.GatewayPayoutMsg
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			log.Printf("[GATEWAY-MQ] unmarshal failed: %v", err)
			d.Nack(false, false)
			return
		}

		if err := payoutSvc.Settle(msg); err != nil {
			var ce constant.Error
			if errors.As(err, &ce) && (ce.Code() == constant.CodePayoutNotFound || ce.Code() == constant.CodePayoutStateConflict) {
				log.Printf("[GATEWAY-MQ] settlement for %d rejected: %v", msg.PayoutID, err)
				d.Nack(false, false)
				return
			}
			if msg.RetryCount < maxRetry {
				msg.RetryCount++
				body, _ := json.Marshal(msg)
				requeue("gateway_payouts", body)
				log.Printf("[GATEWAY-MQ] retrying settlement for %d (attempt %d)", msg.PayoutID, msg.RetryCount)
			} else {
				log.Printf("[GATEWAY-MQ] max retry reached for payout %d", msg.PayoutID)
			}
			d.Nack(false, false)
			return
		}
		d.Ack(false)
	})
}
