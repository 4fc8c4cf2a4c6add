package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"multivend-settlement-api/internal/commission"
	"multivend-settlement-api/internal/config"
	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/dao"
	"multivend-settlement-api/internal/dto"
	"multivend-settlement-api/internal/ledger"
	"multivend-settlement-api/internal/model"
)

type EarningsService struct {
	vendorDao *dao.VendorDao
	txDao     *dao.TransactionDao
	payoutDao *dao.PayoutDao
}

func NewEarningsService() *EarningsService {
	return &EarningsService{
		vendorDao: dao.NewVendorDao(),
		txDao:     dao.NewTransactionDao(),
		payoutDao: dao.NewPayoutDao(),
	}
}

// Summary derives the vendor's earnings view: trailing-window gross
// revenue, the balance projection, and the revenue change against the
// prior window. A plain consistent read; no lock, nothing is written.
func (s *EarningsService) Summary(vendorID uint64) (dto.EarningsResp, error) {
	var resp dto.EarningsResp

	vendor, err := s.vendorDao.Get(vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, constant.NewError(constant.CodeVendorNotFound)
		}
		return resp, constant.NewError(constant.CodeDatabaseError)
	}

	now := time.Now()
	windowDays := config.C.Settlement.RevenueWindowDays
	windowStart := now.AddDate(0, 0, -windowDays)
	prevStart := now.AddDate(0, 0, -2*windowDays)

	current, err := s.txDao.SumCompletedOrderPayments(dal.MainDB, vendorID, windowStart, now)
	if err != nil {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}
	previous, err := s.txDao.SumCompletedOrderPayments(dal.MainDB, vendorID, prevStart, windowStart)
	if err != nil {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}

	transactions, err := s.txDao.ListByVendor(dal.MainDB, vendorID)
	if err != nil {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}
	payouts, err := s.payoutDao.ListByVendor(dal.MainDB, vendorID)
	if err != nil {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}
	balance := ledger.ComputeVendorBalance(transactions, payouts, now)

	pendingCount, err := s.payoutDao.CountByVendorStatus(vendorID, model.PayoutPending)
	if err != nil {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}

	return dto.EarningsResp{
		TotalRevenue:       current,
		AvailableBalance:   balance.AvailableBalance,
		ProcessingBalance:  balance.ProcessingBalance,
		TotalPaidOut:       balance.TotalPaidOut,
		ReservedForPayouts: balance.ReservedForPayouts,
		RevenueChange:      RevenueChange(current, previous),
		PendingPayoutCount: pendingCount,
		Currency:           vendor.Currency,
	}, nil
}

// RevenueChange is the percent change of current over previous, rounded
// to 2 places. A zero previous window reports 100% when there is current
// revenue and 0% when there is none.
func RevenueChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return commission.Round2(current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)))
}
