package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"multivend-settlement-api/internal/commission"
	"multivend-settlement-api/internal/config"
	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/dao"
	"multivend-settlement-api/internal/dto"
	"multivend-settlement-api/internal/model"
	rediskey "multivend-settlement-api/internal/types/redis-key"
)

type ScheduleService struct {
	scheduleDao *dao.ScheduleDao
	group       singleflight.Group
}

func NewScheduleService() *ScheduleService {
	return &ScheduleService{
		scheduleDao: dao.NewScheduleDao(),
	}
}

// GetActive returns the active schedule, redis-cached with singleflight
// around cache misses so a cache expiry does not stampede the database.
func (s *ScheduleService) GetActive() (*model.CommissionSchedule, error) {
	if dal.RedisClient != nil {
		if raw, err := dal.RedisClient.Get(dal.RedisCtx, rediskey.ScheduleActiveKey).Result(); err == nil && raw != "" {
			var cached model.CommissionSchedule
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	v, err, _ := s.group.Do(rediskey.ScheduleActiveKey, func() (interface{}, error) {
		sched, err := s.scheduleDao.GetActive()
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, constant.NewError(constant.CodeScheduleNotFound)
			}
			return nil, constant.NewError(constant.CodeDatabaseError)
		}
		if dal.RedisClient != nil {
			if b, err := json.Marshal(sched); err == nil {
				ttl := time.Duration(config.C.Settlement.ScheduleCacheTTLSec) * time.Second
				if ttl <= 0 {
					ttl = time.Minute
				}
				dal.RedisClient.Set(dal.RedisCtx, rediskey.ScheduleActiveKey, b, ttl)
			}
		}
		return sched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.CommissionSchedule), nil
}

// GetVersion returns a historical schedule version, uncached: the lookup
// serves fee provenance for recorded transactions, not the hot path.
func (s *ScheduleService) GetVersion(version int) (*model.CommissionSchedule, error) {
	sched, err := s.scheduleDao.GetByVersion(version)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.NewErrorf(constant.CodeScheduleNotFound, "schedule version %d not found", version)
		}
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	return sched, nil
}

// Update validates the submitted schedule and persists it as a new
// version; nothing is written when validation fails (no partial write).
func (s *ScheduleService) Update(req dto.UpdateScheduleReq) (*model.CommissionSchedule, error) {
	base, err := decimal.NewFromString(req.BaseFeePercentage)
	if err != nil {
		return nil, constant.NewErrorf(constant.CodeInvalidParams, "baseFeePercentage is not a decimal: %s", req.BaseFeePercentage)
	}
	flat, err := decimal.NewFromString(req.TransactionFeeFlat)
	if err != nil {
		return nil, constant.NewErrorf(constant.CodeInvalidParams, "transactionFeeFlat is not a decimal: %s", req.TransactionFeeFlat)
	}

	sched := &model.CommissionSchedule{
		BaseFeePercentage:  base,
		TransactionFeeFlat: flat,
		CreatedBy:          req.UpdatedBy,
	}
	for _, t := range req.Thresholds {
		sched.Tiers = append(sched.Tiers, model.CommissionTier{
			MonthlyRevenue: t.MonthlyRevenue,
			FeePercentage:  t.FeePercentage,
		})
	}

	if err := commission.ValidateSchedule(sched); err != nil {
		return nil, err
	}
	if err := s.scheduleDao.CreateVersion(sched); err != nil {
		log.Printf("[SCHEDULE] create version failed: %v", err)
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	s.invalidateCache()
	log.Printf("[SCHEDULE] schedule version %d activated by %s", sched.Version, sched.CreatedBy)
	return sched, nil
}

func (s *ScheduleService) invalidateCache() {
	if dal.RedisClient != nil {
		dal.RedisClient.Del(dal.RedisCtx, rediskey.ScheduleActiveKey)
	}
}

// ToScheduleResp maps a schedule to the wire shape.
func ToScheduleResp(s *model.CommissionSchedule) dto.ScheduleResp {
	resp := dto.ScheduleResp{
		Version:            s.Version,
		BaseFeePercentage:  s.BaseFeePercentage,
		TransactionFeeFlat: s.TransactionFeeFlat,
		Thresholds:         make([]dto.TierVo, 0, len(s.Tiers)),
		CreatedBy:          s.CreatedBy,
	}
	if !s.CreateTime.IsZero() {
		resp.CreateTime = s.CreateTime.Format(time.RFC3339)
	}
	for _, t := range s.Tiers {
		resp.Thresholds = append(resp.Thresholds, dto.TierVo{
			MonthlyRevenue: t.MonthlyRevenue,
			FeePercentage:  t.FeePercentage,
		})
	}
	return resp
}
