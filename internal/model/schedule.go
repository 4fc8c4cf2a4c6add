package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionSchedule is the platform-wide tiered fee schedule. Schedules are
// append-only: an update writes version N+1 and deactivates version N, so a
// transaction's recorded fee can always be traced back to the schedule
// version active when it was created.
type CommissionSchedule struct {
	ID                 uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Version            int              `gorm:"column:version;not null;uniqueIndex" json:"version"`
	BaseFeePercentage  decimal.Decimal  `gorm:"column:base_fee_percentage;type:decimal(5,2);not null" json:"baseFeePercentage"`   // rate below the lowest tier, [0,100]
	TransactionFeeFlat decimal.Decimal  `gorm:"column:transaction_fee_flat;type:decimal(10,2);not null" json:"transactionFeeFlat"` // fixed fee added per transaction
	IsActive           bool             `gorm:"column:is_active;not null;default:0" json:"isActive"`
	CreatedBy          string           `gorm:"column:created_by;size:50;not null" json:"createdBy"`
	CreateTime         time.Time        `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`
	Tiers              []CommissionTier `gorm:"foreignKey:ScheduleID;references:ID" json:"tiers"`
}

func (CommissionSchedule) TableName() string {
	return "w_commission_schedule"
}

// CommissionTier maps a monthly-revenue boundary to a fee percentage.
// Unique per schedule by MonthlyRevenue, stored sorted ascending.
type CommissionTier struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ScheduleID     uint64          `gorm:"column:schedule_id;not null;index" json:"scheduleId"`
	MonthlyRevenue decimal.Decimal `gorm:"column:monthly_revenue;type:decimal(18,2);not null" json:"monthlyRevenue"` // inclusive lower bound, > 0
	FeePercentage  decimal.Decimal `gorm:"column:fee_percentage;type:decimal(5,2);not null" json:"feePercentage"`    // [0,100]
}

func (CommissionTier) TableName() string {
	return "w_commission_tier"
}
