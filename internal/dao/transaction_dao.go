package dao

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/model"
)

type TransactionDao struct{}

func NewTransactionDao() *TransactionDao {
	return &TransactionDao{}
}

func (d *TransactionDao) Create(tx *gorm.DB, t *model.Transaction) error {
	return tx.Create(t).Error
}

func (d *TransactionDao) GetByGatewayTxID(gatewayTxID string) (*model.Transaction, error) {
	var t model.Transaction
	if err := dal.MainDB.Where("gateway_tx_id = ?", gatewayTxID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByVendor loads all ledger rows for a vendor inside tx; the balance
// projection consumes this under the vendor row lock.
func (d *TransactionDao) ListByVendor(tx *gorm.DB, vendorID uint64) ([]model.Transaction, error) {
	var rows []model.Transaction
	if err := tx.Where("vendor_id = ?", vendorID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumCompletedOrderPayments returns gross completed order-payment volume
// for a vendor in [from, to), the trailing-revenue input to tier
// resolution and the earnings summary.
func (d *TransactionDao) SumCompletedOrderPayments(tx *gorm.DB, vendorID uint64, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.Model(&model.Transaction{}).
		Select("SUM(amount)").
		Where("vendor_id = ?", vendorID).
		Where("type = ?", model.TxTypeOrderPayment).
		Where("status = ?", model.TxStatusCompleted).
		Where("create_time >= ? AND create_time < ?", from, to).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// ListPage returns a filtered page of a vendor's transaction history,
// newest first.
func (d *TransactionDao) ListPage(vendorID uint64, txType *model.TxType, status *model.TxStatus, page, limit int) ([]model.Transaction, int64, error) {
	q := dal.MainDB.Model(&model.Transaction{}).Where("vendor_id = ?", vendorID)
	if txType != nil {
		q = q.Where("type = ?", *txType)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Transaction
	err := q.Order("create_time desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
