package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"multivend-settlement-api/internal/model"
)

// VendorBalance is a projection over the immutable transaction and payout
// logs. It is never stored; recomputing it from the same inputs always
// yields the same result.
type VendorBalance struct {
	AvailableBalance   decimal.Decimal `json:"availableBalance"`
	ProcessingBalance  decimal.Decimal `json:"processingBalance"`
	TotalPaidOut       decimal.Decimal `json:"totalPaidOut"`
	ReservedForPayouts decimal.Decimal `json:"reservedForPayouts"`
}

// ComputeVendorBalance derives a vendor's balances at instant now.
//
//   - settled revenue: net of completed order payments whose hold window
//     has elapsed (settled_at <= now), minus the net magnitude of
//     completed refunds;
//   - processing: net of completed order payments still inside the hold
//     window;
//   - reserved: amounts of pending and processing payouts. A failed
//     payout drops out of this sum, which is how its reservation is
//     released back into the available balance;
//   - available = settled - totalPaidOut - reserved.
func ComputeVendorBalance(transactions []model.Transaction, payouts []model.Payout, now time.Time) VendorBalance {
	settled := decimal.Zero
	processing := decimal.Zero
	for _, t := range transactions {
		switch {
		case t.Type == model.TxTypeOrderPayment && t.Status == model.TxStatusCompleted:
			if t.SettledAt.After(now) {
				processing = processing.Add(t.Net)
			} else {
				settled = settled.Add(t.Net)
			}
		case t.Type == model.TxTypeRefund && t.Status == model.TxStatusCompleted:
			settled = settled.Sub(t.Net.Abs())
		}
	}

	paidOut := decimal.Zero
	reserved := decimal.Zero
	for _, p := range payouts {
		switch p.Status {
		case model.PayoutCompleted:
			paidOut = paidOut.Add(p.Amount)
		case model.PayoutPending, model.PayoutProcessing:
			reserved = reserved.Add(p.Amount)
		}
	}

	return VendorBalance{
		AvailableBalance:   settled.Sub(paidOut).Sub(reserved),
		ProcessingBalance:  processing,
		TotalPaidOut:       paidOut,
		ReservedForPayouts: reserved,
	}
}

// ComputeVendorBalanceExcluding derives the balance with one payout left
// out of the reservation sum. Approval re-checks pass the payout under
// review: it is already reserved, so counting it would charge the amount
// being approved twice. excludePayoutID 0 excludes nothing; request-time
// checks use ComputeVendorBalance directly since their row does not exist
// yet.
func ComputeVendorBalanceExcluding(transactions []model.Transaction, payouts []model.Payout, excludePayoutID uint64, now time.Time) VendorBalance {
	if excludePayoutID != 0 {
		filtered := make([]model.Payout, 0, len(payouts))
		for _, p := range payouts {
			if p.PayoutID != excludePayoutID {
				filtered = append(filtered, p)
			}
		}
		payouts = filtered
	}
	return ComputeVendorBalance(transactions, payouts, now)
}
