package dto

import "github.com/shopspring/decimal"

// TierVo is one revenue threshold on the wire. Money travels as decimal
// strings; shopspring marshals quoted by default.
type TierVo struct {
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	FeePercentage  decimal.Decimal `json:"feePercentage"`
}

// UpdateScheduleReq accepts unsorted thresholds; the server sorts and
// validates uniqueness before persisting a new schedule version.
type UpdateScheduleReq struct {
	BaseFeePercentage  string   `json:"baseFeePercentage" binding:"required"`
	TransactionFeeFlat string   `json:"transactionFeeFlat" binding:"required"`
	Thresholds         []TierVo `json:"thresholds"`
	UpdatedBy          string   `json:"updatedBy"`
}

type ScheduleResp struct {
	Version            int             `json:"version"`
	BaseFeePercentage  decimal.Decimal `json:"baseFeePercentage"`
	TransactionFeeFlat decimal.Decimal `json:"transactionFeeFlat"`
	Thresholds         []TierVo        `json:"thresholds"`
	CreatedBy          string          `json:"createdBy,omitempty"`
	CreateTime         string          `json:"createTime,omitempty"`
}
