package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/model"
)

type VendorDao struct{}

func NewVendorDao() *VendorDao {
	return &VendorDao{}
}

func (d *VendorDao) Get(vendorID uint64) (*model.VendorAccount, error) {
	var v model.VendorAccount
	if err := dal.MainDB.Where("vendor_id = ?", vendorID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// LockForUpdate takes a row lock on the vendor account inside tx. Every
// balance check-and-transition (payout request, payout approval) goes
// through this lock so two concurrent checks on the same vendor serialize
// instead of both reading a stale balance.
func (d *VendorDao) LockForUpdate(tx *gorm.DB, vendorID uint64) (*model.VendorAccount, error) {
	var v model.VendorAccount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vendor_id = ?", vendorID).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *VendorDao) Create(v *model.VendorAccount) error {
	return dal.MainDB.Create(v).Error
}
