package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/model"
)

type PayoutDao struct{}

func NewPayoutDao() *PayoutDao {
	return &PayoutDao{}
}

func (d *PayoutDao) Create(tx *gorm.DB, p *model.Payout) error {
	return tx.Create(p).Error
}

func (d *PayoutDao) Get(payoutID uint64) (*model.Payout, error) {
	var p model.Payout
	if err := dal.MainDB.Where("payout_id = ?", payoutID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// LockForUpdate loads the payout row under a row lock so a status
// transition cannot race another admin acting on the same payout.
func (d *PayoutDao) LockForUpdate(tx *gorm.DB, payoutID uint64) (*model.Payout, error) {
	var p model.Payout
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payout_id = ?", payoutID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatus writes the new status plus any extra columns (notes,
// gateway id, finish time) in one statement.
func (d *PayoutDao) UpdateStatus(tx *gorm.DB, payoutID uint64, status model.PayoutStatus, extra map[string]interface{}) error {
	updates := map[string]interface{}{"status": status}
	for k, v := range extra {
		updates[k] = v
	}
	return tx.Model(&model.Payout{}).
		Where("payout_id = ?", payoutID).
		Updates(updates).Error
}

// ListByVendor loads all payouts for a vendor inside tx, for the balance
// projection.
func (d *PayoutDao) ListByVendor(tx *gorm.DB, vendorID uint64) ([]model.Payout, error) {
	var rows []model.Payout
	if err := tx.Where("vendor_id = ?", vendorID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *PayoutDao) CountByVendorStatus(vendorID uint64, status model.PayoutStatus) (int64, error) {
	var n int64
	err := dal.MainDB.Model(&model.Payout{}).
		Where("vendor_id = ?", vendorID).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

// ListPage returns a page of a vendor's payout history, newest first.
func (d *PayoutDao) ListPage(vendorID uint64, status *model.PayoutStatus, page, limit int) ([]model.Payout, int64, error) {
	q := dal.MainDB.Model(&model.Payout{}).Where("vendor_id = ?", vendorID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Payout
	err := q.Order("create_time desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
