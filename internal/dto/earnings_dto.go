package dto

import "github.com/shopspring/decimal"

type EarningsResp struct {
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`  // gross order payments, trailing window
	AvailableBalance   decimal.Decimal `json:"availableBalance"`
	ProcessingBalance  decimal.Decimal `json:"processingBalance"`
	TotalPaidOut       decimal.Decimal `json:"totalPaidOut"`
	ReservedForPayouts decimal.Decimal `json:"reservedForPayouts"`
	RevenueChange      decimal.Decimal `json:"revenueChange"` // percent vs the prior window
	PendingPayoutCount int64           `json:"pendingPayoutCount"`
	Currency           string          `json:"currency"`
}
