package model

import "time"

// VendorAccount carries no running balance (balances are derived from the
// transaction and payout logs). Its row is what gets locked FOR UPDATE to
// serialize concurrent balance check-and-transition operations on one
// vendor.
type VendorAccount struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VendorID   uint64    `gorm:"column:vendor_id;not null;uniqueIndex" json:"vendorId"`
	Currency   string    `gorm:"column:currency;type:char(3);not null" json:"currency"`
	Status     int8      `gorm:"column:status;not null;default:1" json:"status"` // 0=disabled, 1=active
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime;not null" json:"updateTime"`
}

func (VendorAccount) TableName() string {
	return "w_vendor_account"
}

const (
	VendorDisabled int8 = 0
	VendorActive   int8 = 1
)
