package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutStatus int8

const (
	PayoutPending    PayoutStatus = 1
	PayoutProcessing PayoutStatus = 2
	PayoutCompleted  PayoutStatus = 3
	PayoutFailed     PayoutStatus = 4
)

var payoutStatusNames = map[PayoutStatus]string{
	PayoutPending:    "pending",
	PayoutProcessing: "processing",
	PayoutCompleted:  "completed",
	PayoutFailed:     "failed",
}

func (s PayoutStatus) String() string {
	if n, ok := payoutStatusNames[s]; ok {
		return n
	}
	return "unknown"
}

func ParsePayoutStatus(s string) (PayoutStatus, bool) {
	for k, v := range payoutStatusNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}

// payoutTransitions is the allowed-transition table: pending can be
// approved (processing) or rejected (failed); processing settles to
// completed or failed at the gateway. Completed and failed are terminal.
var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending:    {PayoutProcessing, PayoutFailed},
	PayoutProcessing: {PayoutCompleted, PayoutFailed},
}

// CanTransition reports whether moving from s to target is legal.
func (s PayoutStatus) CanTransition(target PayoutStatus) bool {
	for _, t := range payoutTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s PayoutStatus) Terminal() bool {
	return len(payoutTransitions[s]) == 0
}

// Supported payout methods.
const (
	MethodBankTransfer = "bank_transfer"
	MethodPaypal       = "paypal"
	MethodStripe       = "stripe"
)

var supportedMethods = map[string]bool{
	MethodBankTransfer: true,
	MethodPaypal:       true,
	MethodStripe:       true,
}

func ValidPayoutMethod(m string) bool {
	return supportedMethods[m]
}

// Payout is a vendor's withdrawal request. Amount is immutable after
// creation; while pending or processing it is reserved against the
// vendor's available balance, never debited directly.
type Payout struct {
	PayoutID        uint64          `gorm:"column:payout_id;primaryKey;not null" json:"payoutId"` // snowflake
	VendorID        uint64          `gorm:"column:vendor_id;not null;index" json:"vendorId"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Method          string          `gorm:"column:method;size:20;not null" json:"method"`
	Status          PayoutStatus    `gorm:"column:status;not null" json:"status"`
	Fee             decimal.Decimal `gorm:"column:fee;type:decimal(18,2);not null" json:"fee"`
	Currency        string          `gorm:"column:currency;type:char(3);not null" json:"currency"`
	Notes           string          `gorm:"column:notes;size:255" json:"notes"`
	GatewayPayoutID *string         `gorm:"column:gateway_payout_id;size:64" json:"gatewayPayoutId,omitempty"`
	CreateTime      time.Time       `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`
	UpdateTime      time.Time       `gorm:"column:update_time;autoUpdateTime;not null" json:"updateTime"`
	FinishTime      *time.Time      `gorm:"column:finish_time" json:"finishTime,omitempty"`
}

func (Payout) TableName() string {
	return "w_payout"
}
