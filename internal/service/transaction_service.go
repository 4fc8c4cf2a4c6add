package service

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"multivend-settlement-api/internal/commission"
	"multivend-settlement-api/internal/config"
	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/dao"
	"multivend-settlement-api/internal/dto"
	"multivend-settlement-api/internal/idgen"
	"multivend-settlement-api/internal/logger"
	"multivend-settlement-api/internal/model"
	"multivend-settlement-api/internal/utils"
)

type TransactionService struct {
	vendorDao   *dao.VendorDao
	txDao       *dao.TransactionDao
	scheduleSvc *ScheduleService
}

func NewTransactionService() *TransactionService {
	return &TransactionService{
		vendorDao:   dao.NewVendorDao(),
		txDao:       dao.NewTransactionDao(),
		scheduleSvc: NewScheduleService(),
	}
}

// Record writes a ledger row for a payment, refund or subscription event.
// The commission fee is computed from the active schedule and the
// vendor's trailing revenue at this instant, then frozen onto the row
// with the schedule version, so later schedule changes are not retroactive.
// Idempotent on gateway transaction id: a repeat delivery returns the
// already-recorded row.
func (s *TransactionService) Record(req dto.RecordTransactionReq) (dto.TransactionResp, error) {
	var resp dto.TransactionResp

	txType, ok := model.ParseTxType(req.Type)
	if !ok || txType == model.TxTypePayout {
		// payout rows are written by the settlement flow, never ingested
		return resp, constant.NewErrorf(constant.CodeTypeInvalid, "type %q cannot be recorded", req.Type)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return resp, constant.NewErrorf(constant.CodeAmountInvalid, "amount is not a decimal: %s", req.Amount)
	}
	if amount.IsNegative() {
		return resp, constant.NewErrorf(constant.CodeAmountInvalid, "amount must not be negative, got %s", req.Amount)
	}

	vendor, err := s.vendorDao.Get(req.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, constant.NewError(constant.CodeVendorNotFound)
		}
		return resp, constant.NewError(constant.CodeDatabaseError)
	}
	if vendor.Status != model.VendorActive {
		return resp, constant.NewError(constant.CodeVendorDisabled)
	}

	if existing, err := s.txDao.GetByGatewayTxID(req.GatewayTxID); err == nil {
		log.Printf("[LEDGER] duplicate gateway tx %s, returning recorded row %d", req.GatewayTxID, existing.TxID)
		return toTransactionResp(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}

	now := time.Now()
	row := &model.Transaction{
		TxID:        idgen.New(),
		VendorID:    req.VendorID,
		Type:        txType,
		Status:      model.TxStatusCompleted,
		Amount:      amount,
		Currency:    req.Currency,
		GatewayTxID: req.GatewayTxID,
		SettledAt:   now,
		CreateTime:  now,
	}
	if req.OrderID != "" {
		row.OrderID = &req.OrderID
	}
	if req.InvoiceID != "" {
		row.InvoiceID = &req.InvoiceID
	}

	switch txType {
	case model.TxTypeOrderPayment:
		sched, err := s.scheduleSvc.GetActive()
		if err != nil {
			return resp, err
		}
		windowStart := now.AddDate(0, 0, -config.C.Settlement.RevenueWindowDays)
		monthlyRevenue, err := s.txDao.SumCompletedOrderPayments(dal.MainDB, req.VendorID, windowStart, now)
		if err != nil {
			return resp, constant.NewError(constant.CodeDatabaseError)
		}
		fees, err := commission.ComputeFee(sched, amount, monthlyRevenue)
		if err != nil {
			return resp, err
		}
		row.Fee = fees.Fee
		row.Net = fees.Net
		row.ScheduleVersion = sched.Version
		// order payment funds sit in the settlement hold window first
		row.SettledAt = now.AddDate(0, 0, config.C.Settlement.HoldDays)
	default:
		// refunds and subscription charges carry no commission fee
		row.Fee = decimal.Zero
		row.Net = amount
	}

	if err := s.txDao.Create(dal.MainDB, row); err != nil {
		// unique index on gateway_tx_id: a racer slipped in between the
		// pre-check and this insert
		if _, ge := s.txDao.GetByGatewayTxID(req.GatewayTxID); ge == nil {
			log.Printf("[LEDGER] lost insert race on gateway tx %s", req.GatewayTxID)
			return resp, constant.NewErrorf(constant.CodeTransactionExists, "gateway tx %s already recorded", req.GatewayTxID)
		}
		log.Printf("[LEDGER] create transaction failed: %v", err)
		return resp, constant.NewError(constant.CodeDatabaseError)
	}

	logger.Audit().WithFields(map[string]interface{}{
		"txId":            row.TxID,
		"vendorId":        row.VendorID,
		"type":            row.Type.String(),
		"amount":          row.Amount.String(),
		"fee":             row.Fee.String(),
		"net":             row.Net.String(),
		"scheduleVersion": row.ScheduleVersion,
	}).Info("transaction recorded")

	return toTransactionResp(row), nil
}

// ListPage returns a page of a vendor's transaction history; page and
// limit come back clamped in the envelope.
func (s *TransactionService) ListPage(vendorID uint64, req dto.ListTransactionsReq) (utils.PageData, error) {
	var txType *model.TxType
	if req.Type != "" {
		t, ok := model.ParseTxType(req.Type)
		if !ok {
			return utils.PageData{}, constant.NewErrorf(constant.CodeTypeInvalid, "unknown type %q", req.Type)
		}
		txType = &t
	}
	var status *model.TxStatus
	if req.Status != "" {
		st, ok := model.ParseTxStatus(req.Status)
		if !ok {
			return utils.PageData{}, constant.NewErrorf(constant.CodeInvalidParams, "unknown status %q", req.Status)
		}
		status = &st
	}
	page, limit := normalizePage(req.Page, req.Limit)

	rows, total, err := s.txDao.ListPage(vendorID, txType, status, page, limit)
	if err != nil {
		return utils.PageData{}, constant.NewError(constant.CodeDatabaseError)
	}
	out := make([]dto.TransactionResp, 0, len(rows))
	for i := range rows {
		out = append(out, toTransactionResp(&rows[i]))
	}
	return utils.PageData{List: out, Total: total, Page: page, Limit: limit}, nil
}

func toTransactionResp(t *model.Transaction) dto.TransactionResp {
	var resp dto.TransactionResp
	_ = copier.Copy(&resp, t)
	resp.TxID = strconv.FormatUint(t.TxID, 10)
	resp.Type = t.Type.String()
	resp.Status = t.Status.String()
	resp.SettledAt = t.SettledAt.Format(time.RFC3339)
	resp.CreateTime = t.CreateTime.Format(time.RFC3339)
	if t.OrderID != nil {
		resp.OrderID = *t.OrderID
	}
	if t.InvoiceID != nil {
		resp.InvoiceID = *t.InvoiceID
	}
	return resp
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}
