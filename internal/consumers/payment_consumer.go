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

// startPaymentConsumer ingests order.paid / order.refunded events from
// the order service into the ledger. Record is idempotent on gateway
// transaction id, so a redelivered event is acked without a second row.
func startPaymentConsumer() {
	txSvc := service.NewTransactionService()
	consume("payment_events", func(d amqp.Delivery) {
		var msg dto.PaymentEventMsg
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			log.Printf("[PAYMENT-MQ] unmarshal failed: %v", err)
			d.Nack(false, false)
			return
		}

		req := dto.RecordTransactionReq{
			VendorID:    msg.VendorID,
			Amount:      msg.Amount,
			Currency:    msg.Currency,
			GatewayTxID: msg.GatewayTxID,
			OrderID:     msg.OrderID,
		}
		switch msg.Event {
		case "order.paid":
			req.Type = "order_payment"
		case "order.refunded":
			req.Type = "refund"
		default:
			log.Printf("[PAYMENT-MQ] unknown event %q, dropping", msg.Event)
			d.Nack(false, false)
			return
		}

		if _, err := txSvc.Record(req); err != nil {
			var ce constant.Error
			if errors.As(err, &ce) && ce.Code() != constant.CodeDatabaseError {
				// business rejection will not change on redelivery
				log.Printf("[PAYMENT-MQ] event %s rejected: %v", msg.GatewayTxID, err)
				d.Nack(false, false)
				return
			}
			if msg.RetryCount < maxRetry {
				msg.RetryCount++
				body, _ := json.Marshal(msg)
				requeue("payment_events", body)
				log.Printf("[PAYMENT-MQ] retrying event %s (attempt %d)", msg.GatewayTxID, msg.RetryCount)
			} else {
				log.Printf("[PAYMENT-MQ] max retry reached for event %s", msg.GatewayTxID)
			}
			d.Nack(false, false)
			return
		}
		d.Ack(false)
	})
}
