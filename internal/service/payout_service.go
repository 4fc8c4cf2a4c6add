package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/dao"
	"multivend-settlement-api/internal/dto"
	"multivend-settlement-api/internal/idgen"
	"multivend-settlement-api/internal/ledger"
	"multivend-settlement-api/internal/logger"
	"multivend-settlement-api/internal/model"
	"multivend-settlement-api/internal/mq"
	"multivend-settlement-api/internal/notify"
	"multivend-settlement-api/internal/utils"
)

type PayoutService struct {
	vendorDao *dao.VendorDao
	payoutDao *dao.PayoutDao
	txDao     *dao.TransactionDao
}

func NewPayoutService() *PayoutService {
	return &PayoutService{
		vendorDao: dao.NewVendorDao(),
		payoutDao: dao.NewPayoutDao(),
		txDao:     dao.NewTransactionDao(),
	}
}

// balanceTx derives the vendor's balance from the ledger inside tx. The
// caller holds the vendor row lock, so the reads are consistent with any
// concurrent check on the same vendor. excludePayout removes the payout
// under review from the reservation sum; its own hold must not count
// against its own approval.
func (s *PayoutService) balanceTx(tx *gorm.DB, vendorID uint64, excludePayout uint64, now time.Time) (ledger.VendorBalance, error) {
	transactions, err := s.txDao.ListByVendor(tx, vendorID)
	if err != nil {
		return ledger.VendorBalance{}, err
	}
	payouts, err := s.payoutDao.ListByVendor(tx, vendorID)
	if err != nil {
		return ledger.VendorBalance{}, err
	}
	return ledger.ComputeVendorBalanceExcluding(transactions, payouts, excludePayout, now), nil
}

// Request creates a pending payout after checking the fresh available
// balance under the vendor row lock. The amount is reserved, not debited:
// the balance projection counts pending payouts against availability.
func (s *PayoutService) Request(vendorID uint64, req dto.CreatePayoutReq) (dto.PayoutResp, error) {
	var resp dto.PayoutResp

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return resp, constant.NewErrorf(constant.CodeAmountInvalid, "amount is not a decimal: %s", req.Amount)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return resp, constant.NewErrorf(constant.CodeAmountInvalid, "payout amount must be positive, got %s", req.Amount)
	}
	if !model.ValidPayoutMethod(req.Method) {
		return resp, constant.NewErrorf(constant.CodeMethodInvalid, "method %q not supported", req.Method)
	}

	payout := &model.Payout{
		PayoutID: idgen.New(),
		VendorID: vendorID,
		Amount:   amount,
		Method:   req.Method,
		Status:   model.PayoutPending,
		Fee:      decimal.Zero,
		Currency: req.Currency,
		Notes:    req.Notes,
	}

	err = dal.MainDB.Transaction(func(tx *gorm.DB) error {
		vendor, err := s.vendorDao.LockForUpdate(tx, vendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodeVendorNotFound)
			}
			return constant.NewError(constant.CodeDatabaseError)
		}
		if vendor.Status != model.VendorActive {
			return constant.NewError(constant.CodeVendorDisabled)
		}
		if req.Currency != vendor.Currency {
			return constant.NewErrorf(constant.CodeInvalidParams, "currency %q does not match vendor account currency %q", req.Currency, vendor.Currency)
		}

		balance, err := s.balanceTx(tx, vendorID, 0, time.Now())
		if err != nil {
			return constant.NewError(constant.CodeDatabaseError)
		}
		if amount.GreaterThan(balance.AvailableBalance) {
			return constant.NewErrorf(constant.CodeInsufficientBalance,
				"requested %s exceeds available balance %s", amount, balance.AvailableBalance)
		}

		return s.payoutDao.Create(tx, payout)
	})
	if err != nil {
		var ce constant.Error
		if errors.As(err, &ce) {
			return resp, ce
		}
		log.Printf("[PAYOUT] request failed: %v", err)
		return resp, constant.NewError(constant.CodeDatabaseError)
	}

	logger.Audit().WithFields(map[string]interface{}{
		"payoutId": payout.PayoutID,
		"vendorId": vendorID,
		"amount":   amount.String(),
		"method":   req.Method,
	}).Info("payout requested")

	mq.PublishPayoutEvent("payout.requested", mq.PayoutEvent{
		PayoutID: payout.PayoutID,
		VendorID: vendorID,
		Amount:   amount.String(),
		Currency: payout.Currency,
		Method:   payout.Method,
		Status:   payout.Status.String(),
		Ts:       time.Now().Unix(),
	})

	return toPayoutResp(payout), nil
}

// Approve moves a pending payout to processing. The available balance is
// recomputed fresh under the vendor row lock because refunds or other
// payouts may have landed since the request; on a failed re-check the
// payout stays pending and the caller is told, nothing is half-applied.
func (s *PayoutService) Approve(payoutID uint64, notes string) (dto.PayoutResp, error) {
	var resp dto.PayoutResp
	var approved *model.Payout

	err := dal.MainDB.Transaction(func(tx *gorm.DB) error {
		payout, err := s.payoutDao.LockForUpdate(tx, payoutID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodePayoutNotFound)
			}
			return constant.NewError(constant.CodeDatabaseError)
		}
		if !payout.Status.CanTransition(model.PayoutProcessing) {
			return constant.NewErrorf(constant.CodePayoutStateConflict,
				"cannot approve payout in status %s", payout.Status)
		}

		if _, err := s.vendorDao.LockForUpdate(tx, payout.VendorID); err != nil {
			return constant.NewError(constant.CodeDatabaseError)
		}
		balance, err := s.balanceTx(tx, payout.VendorID, payout.PayoutID, time.Now())
		if err != nil {
			return constant.NewError(constant.CodeDatabaseError)
		}
		if payout.Amount.GreaterThan(balance.AvailableBalance) {
			notify.OpsAlert("payout approval blocked",
				fmt.Sprintf("payout %d for vendor %d: amount %s exceeds available balance %s (balance dropped since request)",
					payout.PayoutID, payout.VendorID, payout.Amount, balance.AvailableBalance))
			return constant.NewErrorf(constant.CodeInsufficientBalance,
				"amount %s exceeds available balance %s at approval time", payout.Amount, balance.AvailableBalance)
		}

		if err := s.payoutDao.UpdateStatus(tx, payout.PayoutID, model.PayoutProcessing, map[string]interface{}{
			"notes": notes,
		}); err != nil {
			return err
		}
		payout.Status = model.PayoutProcessing
		payout.Notes = notes
		approved = payout
		return nil
	})
	if err != nil {
		var ce constant.Error
		if errors.As(err, &ce) {
			return resp, ce
		}
		log.Printf("[PAYOUT] approve failed: %v", err)
		return resp, constant.NewError(constant.CodeDatabaseError)
	}

	logger.Audit().WithFields(map[string]interface{}{
		"payoutId": approved.PayoutID,
		"vendorId": approved.VendorID,
		"amount":   approved.Amount.String(),
	}).Info("payout approved")

	mq.PublishPayoutEvent("payout.approved", mq.PayoutEvent{
		PayoutID: approved.PayoutID,
		VendorID: approved.VendorID,
		Amount:   approved.Amount.String(),
		Currency: approved.Currency,
		Method:   approved.Method,
		Status:   approved.Status.String(),
		Ts:       time.Now().Unix(),
	})

	return toPayoutResp(approved), nil
}

// Reject moves a pending payout to failed. The reservation is released on
// the next balance derivation; no balance is touched here because the
// amount was never debited.
func (s *PayoutService) Reject(payoutID uint64, notes string) (dto.PayoutResp, error) {
	var resp dto.PayoutResp
	var rejected *model.Payout

	err := dal.MainDB.Transaction(func(tx *gorm.DB) error {
		payout, err := s.payoutDao.LockForUpdate(tx, payoutID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodePayoutNotFound)
			}
			return constant.NewError(constant.CodeDatabaseError)
		}
		if payout.Status != model.PayoutPending {
			return constant.NewErrorf(constant.CodePayoutStateConflict,
				"cannot reject payout in status %s", payout.Status)
		}

		now := time.Now()
		if err := s.payoutDao.UpdateStatus(tx, payout.PayoutID, model.PayoutFailed, map[string]interface{}{
			"notes":       notes,
			"finish_time": now,
		}); err != nil {
			return err
		}
		payout.Status = model.PayoutFailed
		payout.Notes = notes
		payout.FinishTime = &now
		rejected = payout
		return nil
	})
	if err != nil {
		var ce constant.Error
		if errors.As(err, &ce) {
			return resp, ce
		}
		log.Printf("[PAYOUT] reject failed: %v", err)
		return resp, constant.NewError(constant.CodeDatabaseError)
	}

	logger.Audit().WithFields(map[string]interface{}{
		"payoutId": rejected.PayoutID,
		"vendorId": rejected.VendorID,
	}).Info("payout rejected")

	return toPayoutResp(rejected), nil
}

// Settle applies a gateway settlement result to a processing payout.
// Success completes the payout and writes the payout ledger row; failure
// terminates it, which releases the reservation on the next derivation.
// Repeat deliveries of the same result are acknowledged without effect.
func (s *PayoutService) Settle(msg dto.GatewayPayoutMsg) error {
	target := model.PayoutFailed
	if msg.Status == "SUCCESS" {
		target = model.PayoutCompleted
	}

	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		payout, err := s.payoutDao.LockForUpdate(tx, msg.PayoutID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodePayoutNotFound)
			}
			return err
		}
		if payout.Status == target {
			log.Printf("[PAYOUT] settlement for %d already applied (%s), skipping", payout.PayoutID, target)
			return nil
		}
		if !payout.Status.CanTransition(target) {
			return constant.NewErrorf(constant.CodePayoutStateConflict,
				"cannot settle payout in status %s to %s", payout.Status, target)
		}

		now := time.Now()
		extra := map[string]interface{}{"finish_time": now}
		if msg.GatewayPayoutID != "" {
			extra["gateway_payout_id"] = msg.GatewayPayoutID
		}
		if msg.Reason != "" {
			extra["notes"] = msg.Reason
		}
		if err := s.payoutDao.UpdateStatus(tx, payout.PayoutID, target, extra); err != nil {
			return err
		}

		if target == model.PayoutCompleted {
			// ledger row for the completed payout; balance math itself keys
			// off the payout table, this row feeds the transaction history
			row := &model.Transaction{
				TxID:        idgen.New(),
				VendorID:    payout.VendorID,
				Type:        model.TxTypePayout,
				Status:      model.TxStatusCompleted,
				Amount:      payout.Amount,
				Fee:         payout.Fee,
				Net:         payout.Amount.Sub(payout.Fee),
				Currency:    payout.Currency,
				GatewayTxID: fmt.Sprintf("payout-%d", payout.PayoutID),
				SettledAt:   now,
				CreateTime:  now,
			}
			if err := s.txDao.Create(tx, row); err != nil {
				return err
			}
		} else {
			notify.OpsAlert("payout settlement failed",
				fmt.Sprintf("payout %d for vendor %d failed at gateway: %s", payout.PayoutID, payout.VendorID, msg.Reason))
		}

		logger.Audit().WithFields(map[string]interface{}{
			"payoutId": payout.PayoutID,
			"vendorId": payout.VendorID,
			"status":   target.String(),
		}).Info("payout settled")
		return nil
	})
}

// Get returns one payout.
func (s *PayoutService) Get(payoutID uint64) (dto.PayoutResp, error) {
	p, err := s.payoutDao.Get(payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PayoutResp{}, constant.NewError(constant.CodePayoutNotFound)
		}
		return dto.PayoutResp{}, constant.NewError(constant.CodeDatabaseError)
	}
	return toPayoutResp(p), nil
}

// ListPage returns a page of a vendor's payout history; page and limit
// come back clamped in the envelope.
func (s *PayoutService) ListPage(vendorID uint64, req dto.ListPayoutsReq) (utils.PageData, error) {
	var status *model.PayoutStatus
	if req.Status != "" {
		st, ok := model.ParsePayoutStatus(req.Status)
		if !ok {
			return utils.PageData{}, constant.NewErrorf(constant.CodeInvalidParams, "unknown status %q", req.Status)
		}
		status = &st
	}
	page, limit := normalizePage(req.Page, req.Limit)

	rows, total, err := s.payoutDao.ListPage(vendorID, status, page, limit)
	if err != nil {
		return utils.PageData{}, constant.NewError(constant.CodeDatabaseError)
	}
	out := make([]dto.PayoutResp, 0, len(rows))
	for i := range rows {
		out = append(out, toPayoutResp(&rows[i]))
	}
	return utils.PageData{List: out, Total: total, Page: page, Limit: limit}, nil
}

func toPayoutResp(p *model.Payout) dto.PayoutResp {
	var resp dto.PayoutResp
	_ = copier.Copy(&resp, p)
	resp.PayoutID = strconv.FormatUint(p.PayoutID, 10)
	resp.Status = p.Status.String()
	resp.CreateTime = p.CreateTime.Format(time.RFC3339)
	if p.GatewayPayoutID != nil {
		resp.GatewayPayoutID = *p.GatewayPayoutID
	}
	if p.FinishTime != nil {
		resp.FinishTime = p.FinishTime.Format(time.RFC3339)
	}
	return resp
}
