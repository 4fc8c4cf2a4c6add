package dto

import "github.com/shopspring/decimal"

// RecordTransactionReq is the internal ingestion contract for payment,
// refund and subscription events (HTTP and MQ share it).
type RecordTransactionReq struct {
	VendorID    uint64 `json:"vendorId" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	GatewayTxID string `json:"gatewayTxId" binding:"required"`
	OrderID     string `json:"orderId"`
	InvoiceID   string `json:"invoiceId"`
}

type TransactionResp struct {
	TxID            string          `json:"txId"`
	VendorID        uint64          `json:"vendorId"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	Net             decimal.Decimal `json:"net"`
	Currency        string          `json:"currency"`
	ScheduleVersion int             `json:"scheduleVersion"`
	GatewayTxID     string          `json:"gatewayTxId"`
	OrderID         string          `json:"orderId,omitempty"`
	InvoiceID       string          `json:"invoiceId,omitempty"`
	SettledAt       string          `json:"settledAt"`
	CreateTime      string          `json:"createTime"`
}

type ListTransactionsReq struct {
	Type   string `form:"type"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// PaymentEventMsg is the order-service event consumed off payment_events.
type PaymentEventMsg struct {
	Event       string `json:"event"` // order.paid | order.refunded
	VendorID    uint64 `json:"vendor_id"`
	OrderID     string `json:"order_id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	GatewayTxID string `json:"gateway_tx_id"`
	Ts          int64  `json:"ts"`
	RetryCount  int    `json:"retry_count"`
}
