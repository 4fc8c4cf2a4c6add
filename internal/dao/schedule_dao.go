package dao

import (
	"errors"

	"gorm.io/gorm"

	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/model"
)

type ScheduleDao struct{}

func NewScheduleDao() *ScheduleDao {
	return &ScheduleDao{}
}

// GetActive loads the single active schedule with its tiers, ascending by
// revenue boundary.
func (d *ScheduleDao) GetActive() (*model.CommissionSchedule, error) {
	var s model.CommissionSchedule
	err := dal.MainDB.
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("monthly_revenue asc")
		}).
		Where("is_active = ?", true).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByVersion loads a historical schedule version (fee provenance for
// recorded transactions).
func (d *ScheduleDao) GetByVersion(version int) (*model.CommissionSchedule, error) {
	var s model.CommissionSchedule
	err := dal.MainDB.
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("monthly_revenue asc")
		}).
		Where("version = ?", version).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateVersion persists s as the next schedule version and deactivates
// the previous active one, atomically. The caller has already validated
// and sorted the tiers; nothing is written when any step fails.
func (d *ScheduleDao) CreateVersion(s *model.CommissionSchedule) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var current model.CommissionSchedule
		err := tx.Where("is_active = ?", true).First(&current).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if e := tx.Model(&model.CommissionSchedule{}).
				Where("id = ?", current.ID).
				Update("is_active", false).Error; e != nil {
				return e
			}
			s.Version = current.Version + 1
		} else {
			s.Version = 1
		}
		s.IsActive = true
		return tx.Create(s).Error
	})
}
