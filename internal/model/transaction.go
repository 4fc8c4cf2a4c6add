package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxType int8

const (
	TxTypeOrderPayment TxType = 1
	TxTypeRefund       TxType = 2
	TxTypeSubscription TxType = 3
	TxTypePayout       TxType = 4
)

var txTypeNames = map[TxType]string{
	TxTypeOrderPayment: "order_payment",
	TxTypeRefund:       "refund",
	TxTypeSubscription: "platform_subscription",
	TxTypePayout:       "payout",
}

func (t TxType) String() string {
	if s, ok := txTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseTxType maps the wire name back to the enum; ok is false for
// unknown names.
func ParseTxType(s string) (TxType, bool) {
	for k, v := range txTypeNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}

type TxStatus int8

const (
	TxStatusPending       TxStatus = 1
	TxStatusCompleted     TxStatus = 2
	TxStatusFailed        TxStatus = 3
	TxStatusRefunded      TxStatus = 4
	TxStatusPartialRefund TxStatus = 5
)

var txStatusNames = map[TxStatus]string{
	TxStatusPending:       "pending",
	TxStatusCompleted:     "completed",
	TxStatusFailed:        "failed",
	TxStatusRefunded:      "refunded",
	TxStatusPartialRefund: "partial_refund",
}

func (s TxStatus) String() string {
	if n, ok := txStatusNames[s]; ok {
		return n
	}
	return "unknown"
}

func ParseTxStatus(s string) (TxStatus, bool) {
	for k, v := range txStatusNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}

// Transaction is one row of the append-only ledger. Net = Amount - Fee
// always; Fee was computed from the schedule version recorded here, so a
// later schedule change never rewrites history. Immutable once completed.
type Transaction struct {
	TxID            uint64          `gorm:"column:tx_id;primaryKey;not null" json:"txId"` // snowflake
	VendorID        uint64          `gorm:"column:vendor_id;not null;index" json:"vendorId"`
	Type            TxType          `gorm:"column:type;not null" json:"type"`
	Status          TxStatus        `gorm:"column:status;not null" json:"status"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Fee             decimal.Decimal `gorm:"column:fee;type:decimal(18,2);not null" json:"fee"`
	Net             decimal.Decimal `gorm:"column:net;type:decimal(18,2);not null" json:"net"`
	Currency        string          `gorm:"column:currency;type:char(3);not null" json:"currency"`
	ScheduleVersion int             `gorm:"column:schedule_version;not null" json:"scheduleVersion"`
	GatewayTxID     string          `gorm:"column:gateway_tx_id;size:64;not null;uniqueIndex" json:"gatewayTxId"`
	OrderID         *string         `gorm:"column:order_id;size:50" json:"orderId,omitempty"`
	InvoiceID       *string         `gorm:"column:invoice_id;size:50" json:"invoiceId,omitempty"`
	SettledAt       time.Time       `gorm:"column:settled_at;not null" json:"settledAt"` // create_time + hold window
	CreateTime      time.Time       `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`
}

func (Transaction) TableName() string {
	return "w_transaction"
}
