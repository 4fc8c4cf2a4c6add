package dto

import "github.com/shopspring/decimal"

type CreatePayoutReq struct {
	Amount   string `json:"amount" binding:"required"`
	Method   string `json:"method" binding:"required"`
	Currency string `json:"currency" binding:"required"`
	Notes    string `json:"notes"`
}

// ReviewPayoutReq carries the admin's notes on approve/reject.
type ReviewPayoutReq struct {
	Notes string `json:"notes"`
}

type PayoutResp struct {
	PayoutID        string          `json:"payoutId"`
	VendorID        uint64          `json:"vendorId"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Status          string          `json:"status"`
	Fee             decimal.Decimal `json:"fee"`
	Currency        string          `json:"currency"`
	Notes           string          `json:"notes,omitempty"`
	GatewayPayoutID string          `json:"gatewayPayoutId,omitempty"`
	CreateTime      string          `json:"createTime"`
	FinishTime      string          `json:"finishTime,omitempty"`
}

type ListPayoutsReq struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// GatewayPayoutMsg is the settlement callback from the payout gateway
// worker, consumed off the gateway_payouts queue.
type GatewayPayoutMsg struct {
	PayoutID        uint64 `json:"payout_id"`
	Status          string `json:"status"` // SUCCESS | FAIL
	GatewayPayoutID string `json:"gateway_payout_id"`
	Reason          string `json:"reason,omitempty"`
	Ts              int64  `json:"ts"`
	RetryCount      int    `json:"retry_count"`
}
