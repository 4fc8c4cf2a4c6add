package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"multivend-settlement-api/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var now = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func settledPayment(net string) model.Transaction {
	return model.Transaction{
		Type:      model.TxTypeOrderPayment,
		Status:    model.TxStatusCompleted,
		Net:       dec(net),
		SettledAt: now.Add(-time.Hour),
	}
}

func heldPayment(net string) model.Transaction {
	return model.Transaction{
		Type:      model.TxTypeOrderPayment,
		Status:    model.TxStatusCompleted,
		Net:       dec(net),
		SettledAt: now.Add(72 * time.Hour),
	}
}

func TestComputeVendorBalanceBasic(t *testing.T) {
	txs := []model.Transaction{
		settledPayment("300"),
		settledPayment("200"),
		heldPayment("150"),
	}
	payouts := []model.Payout{
		{Status: model.PayoutPending, Amount: dec("200")},
	}

	b := ComputeVendorBalance(txs, payouts, now)
	if !b.AvailableBalance.Equal(dec("300")) {
		t.Errorf("available: got %s, want 300", b.AvailableBalance)
	}
	if !b.ProcessingBalance.Equal(dec("150")) {
		t.Errorf("processing: got %s, want 150", b.ProcessingBalance)
	}
	if !b.ReservedForPayouts.Equal(dec("200")) {
		t.Errorf("reserved: got %s, want 200", b.ReservedForPayouts)
	}
	if !b.TotalPaidOut.IsZero() {
		t.Errorf("paid out: got %s, want 0", b.TotalPaidOut)
	}
}

// A vendor with $500 settled net and a $200 pending payout has $300
// available; a $350 request must not pass.
func TestComputeVendorBalancePendingPayoutReservation(t *testing.T) {
	txs := []model.Transaction{settledPayment("500")}
	payouts := []model.Payout{{Status: model.PayoutPending, Amount: dec("200")}}

	b := ComputeVendorBalance(txs, payouts, now)
	if !b.AvailableBalance.Equal(dec("300")) {
		t.Fatalf("available: got %s, want 300", b.AvailableBalance)
	}
	if dec("350").LessThanOrEqual(b.AvailableBalance) {
		t.Error("a 350 request should exceed the available balance")
	}
}

func TestComputeVendorBalanceRefundsReduceSettled(t *testing.T) {
	txs := []model.Transaction{
		settledPayment("500"),
		{Type: model.TxTypeRefund, Status: model.TxStatusCompleted, Net: dec("100"), SettledAt: now.Add(-time.Hour)},
	}

	b := ComputeVendorBalance(txs, nil, now)
	if !b.AvailableBalance.Equal(dec("400")) {
		t.Errorf("available: got %s, want 400", b.AvailableBalance)
	}
}

// Refund rows stored with a negative net must reduce by magnitude, not
// double-subtract.
func TestComputeVendorBalanceNegativeNetRefund(t *testing.T) {
	txs := []model.Transaction{
		settledPayment("500"),
		{Type: model.TxTypeRefund, Status: model.TxStatusCompleted, Net: dec("-100"), SettledAt: now.Add(-time.Hour)},
	}

	b := ComputeVendorBalance(txs, nil, now)
	if !b.AvailableBalance.Equal(dec("400")) {
		t.Errorf("available: got %s, want 400", b.AvailableBalance)
	}
}

func TestComputeVendorBalanceFailedPayoutReleasesReservation(t *testing.T) {
	txs := []model.Transaction{settledPayment("500")}

	reserved := ComputeVendorBalance(txs, []model.Payout{
		{Status: model.PayoutProcessing, Amount: dec("200")},
	}, now)
	if !reserved.AvailableBalance.Equal(dec("300")) {
		t.Fatalf("available while processing: got %s, want 300", reserved.AvailableBalance)
	}

	released := ComputeVendorBalance(txs, []model.Payout{
		{Status: model.PayoutFailed, Amount: dec("200")},
	}, now)
	if !released.AvailableBalance.Equal(dec("500")) {
		t.Errorf("available after failure: got %s, want 500", released.AvailableBalance)
	}
}

func TestComputeVendorBalanceCompletedPayout(t *testing.T) {
	txs := []model.Transaction{settledPayment("500")}
	payouts := []model.Payout{{Status: model.PayoutCompleted, Amount: dec("200")}}

	b := ComputeVendorBalance(txs, payouts, now)
	if !b.TotalPaidOut.Equal(dec("200")) {
		t.Errorf("paid out: got %s, want 200", b.TotalPaidOut)
	}
	if !b.AvailableBalance.Equal(dec("300")) {
		t.Errorf("available: got %s, want 300", b.AvailableBalance)
	}
}

func TestComputeVendorBalanceIgnoresNonLedgerRows(t *testing.T) {
	txs := []model.Transaction{
		settledPayment("500"),
		{Type: model.TxTypeOrderPayment, Status: model.TxStatusPending, Net: dec("999"), SettledAt: now.Add(-time.Hour)},
		{Type: model.TxTypeOrderPayment, Status: model.TxStatusFailed, Net: dec("999"), SettledAt: now.Add(-time.Hour)},
		{Type: model.TxTypeSubscription, Status: model.TxStatusCompleted, Net: dec("49"), SettledAt: now.Add(-time.Hour)},
		{Type: model.TxTypePayout, Status: model.TxStatusCompleted, Net: dec("200"), SettledAt: now.Add(-time.Hour)},
	}

	b := ComputeVendorBalance(txs, nil, now)
	if !b.AvailableBalance.Equal(dec("500")) {
		t.Errorf("available: got %s, want 500", b.AvailableBalance)
	}
}

func TestComputeVendorBalanceIdempotent(t *testing.T) {
	txs := []model.Transaction{
		settledPayment("300.33"),
		heldPayment("12.34"),
		{Type: model.TxTypeRefund, Status: model.TxStatusCompleted, Net: dec("50.01"), SettledAt: now.Add(-time.Hour)},
	}
	payouts := []model.Payout{
		{Status: model.PayoutPending, Amount: dec("100")},
		{Status: model.PayoutCompleted, Amount: dec("75.50")},
	}

	a := ComputeVendorBalance(txs, payouts, now)
	b := ComputeVendorBalance(txs, payouts, now)
	if !a.AvailableBalance.Equal(b.AvailableBalance) ||
		!a.ProcessingBalance.Equal(b.ProcessingBalance) ||
		!a.TotalPaidOut.Equal(b.TotalPaidOut) ||
		!a.ReservedForPayouts.Equal(b.ReservedForPayouts) {
		t.Errorf("projection not idempotent: %+v vs %+v", a, b)
	}
}

// The approval re-check sees the payout under review excluded from the
// reservation: a $300 pending payout against $500 settled approves
// ($500 >= $300), even though the request-time view shows only $200.
func TestComputeVendorBalanceExcluding(t *testing.T) {
	txs := []model.Transaction{settledPayment("500")}
	payouts := []model.Payout{
		{PayoutID: 42, Status: model.PayoutPending, Amount: dec("300")},
	}

	requestView := ComputeVendorBalance(txs, payouts, now)
	if !requestView.AvailableBalance.Equal(dec("200")) {
		t.Fatalf("request view: got %s, want 200", requestView.AvailableBalance)
	}

	approvalView := ComputeVendorBalanceExcluding(txs, payouts, 42, now)
	if !approvalView.AvailableBalance.Equal(dec("500")) {
		t.Fatalf("approval view: got %s, want 500", approvalView.AvailableBalance)
	}
	if dec("300").GreaterThan(approvalView.AvailableBalance) {
		t.Error("a 300 approval should pass against 500 available")
	}
}

// A refund landing between request and approval must fail the re-check:
// $500 settled - $250 refund leaves $250, below the $300 under review.
func TestComputeVendorBalanceExcludingRefundBlocksApproval(t *testing.T) {
	txs := []model.Transaction{
		settledPayment("500"),
		{Type: model.TxTypeRefund, Status: model.TxStatusCompleted, Net: dec("250"), SettledAt: now.Add(-time.Minute)},
	}
	payouts := []model.Payout{
		{PayoutID: 42, Status: model.PayoutPending, Amount: dec("300")},
	}

	b := ComputeVendorBalanceExcluding(txs, payouts, 42, now)
	if !b.AvailableBalance.Equal(dec("250")) {
		t.Fatalf("available: got %s, want 250", b.AvailableBalance)
	}
	if !dec("300").GreaterThan(b.AvailableBalance) {
		t.Error("a 300 approval should fail against 250 available")
	}
}

// Only the payout under review drops out; other vendors' holds and a zero
// exclude id leave the reservation untouched.
func TestComputeVendorBalanceExcludingScope(t *testing.T) {
	txs := []model.Transaction{settledPayment("500")}
	payouts := []model.Payout{
		{PayoutID: 42, Status: model.PayoutPending, Amount: dec("300")},
		{PayoutID: 43, Status: model.PayoutPending, Amount: dec("100")},
	}

	b := ComputeVendorBalanceExcluding(txs, payouts, 42, now)
	if !b.ReservedForPayouts.Equal(dec("100")) {
		t.Errorf("reserved: got %s, want 100", b.ReservedForPayouts)
	}
	if !b.AvailableBalance.Equal(dec("400")) {
		t.Errorf("available: got %s, want 400", b.AvailableBalance)
	}

	noExclude := ComputeVendorBalanceExcluding(txs, payouts, 0, now)
	if !noExclude.ReservedForPayouts.Equal(dec("400")) {
		t.Errorf("reserved with no exclusion: got %s, want 400", noExclude.ReservedForPayouts)
	}

	missing := ComputeVendorBalanceExcluding(txs, payouts, 99, now)
	if !missing.ReservedForPayouts.Equal(dec("400")) {
		t.Errorf("reserved excluding a missing id: got %s, want 400", missing.ReservedForPayouts)
	}
}

func TestComputeVendorBalanceEmpty(t *testing.T) {
	b := ComputeVendorBalance(nil, nil, now)
	if !b.AvailableBalance.IsZero() || !b.ProcessingBalance.IsZero() {
		t.Errorf("empty ledger should be all zero, got %+v", b)
	}
}
