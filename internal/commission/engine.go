package commission

import (
	"sort"

	"github.com/shopspring/decimal"

	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds a currency amount to 2 decimal places, half away from
// zero. Every money computation in the engine goes through this so fees
// and nets never drift by a penny between call sites.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Fees is the result of a fee computation. Net is derived by subtraction,
// so Fee.Add(Net) equals the original amount exactly.
type Fees struct {
	FeePercentage decimal.Decimal
	Fee           decimal.Decimal
	Net           decimal.Decimal
}

// ResolveFeePercentage returns the rate for a vendor whose trailing
// monthly revenue is monthlyRevenue: the fee percentage of the greatest
// tier whose boundary is <= monthlyRevenue (inclusive), or the schedule's
// base rate when the revenue sits below the lowest tier.
func ResolveFeePercentage(s *model.CommissionSchedule, monthlyRevenue decimal.Decimal) (decimal.Decimal, error) {
	if monthlyRevenue.IsNegative() {
		return decimal.Zero, constant.NewErrorf(constant.CodeAmountInvalid, "monthly revenue must not be negative")
	}
	// an absent base rate is unrepresentable after decoding: the decimal
	// zero value is a valid 0% rate, and ValidateSchedule bounds it

	// defensive sort; persisted schedules are already ascending
	tiers := make([]model.CommissionTier, len(s.Tiers))
	copy(tiers, s.Tiers)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MonthlyRevenue.LessThan(tiers[j].MonthlyRevenue)
	})

	rate := s.BaseFeePercentage
	for _, t := range tiers {
		if t.MonthlyRevenue.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, constant.NewErrorf(constant.CodeScheduleInvalid, "tier revenue must be positive, got %s", t.MonthlyRevenue)
		}
		if t.MonthlyRevenue.LessThanOrEqual(monthlyRevenue) {
			rate = t.FeePercentage
		}
	}
	return rate, nil
}

// ComputeFee computes the commission fee and net for a transaction amount
// against the schedule in effect, using the vendor's trailing monthly
// revenue at transaction time for tier resolution.
//
// fee = round2(amount * pct/100 + flat); net = amount - fee. Net may go
// negative when the flat fee exceeds a small amount; that is not clamped.
func ComputeFee(s *model.CommissionSchedule, amount, monthlyRevenue decimal.Decimal) (Fees, error) {
	if amount.IsNegative() {
		return Fees{}, constant.NewErrorf(constant.CodeAmountInvalid, "amount must not be negative, got %s", amount)
	}
	pct, err := ResolveFeePercentage(s, monthlyRevenue)
	if err != nil {
		return Fees{}, err
	}
	fee := Round2(amount.Mul(pct).Div(hundred).Add(s.TransactionFeeFlat))
	return Fees{
		FeePercentage: pct,
		Fee:           fee,
		Net:           amount.Sub(fee),
	}, nil
}

// ValidateSchedule checks a schedule before it is persisted and
// normalizes the tiers to ascending order. Duplicate revenue boundaries
// are reported, never silently merged.
func ValidateSchedule(s *model.CommissionSchedule) error {
	if s.BaseFeePercentage.IsNegative() || s.BaseFeePercentage.GreaterThan(hundred) {
		return constant.NewErrorf(constant.CodeScheduleInvalid, "base fee percentage must be in [0,100], got %s", s.BaseFeePercentage)
	}
	if s.TransactionFeeFlat.IsNegative() {
		return constant.NewErrorf(constant.CodeScheduleInvalid, "flat transaction fee must not be negative, got %s", s.TransactionFeeFlat)
	}

	sort.SliceStable(s.Tiers, func(i, j int) bool {
		return s.Tiers[i].MonthlyRevenue.LessThan(s.Tiers[j].MonthlyRevenue)
	})

	for i, t := range s.Tiers {
		if t.MonthlyRevenue.LessThanOrEqual(decimal.Zero) {
			return constant.NewErrorf(constant.CodeScheduleInvalid, "tier revenue must be positive, got %s", t.MonthlyRevenue)
		}
		if t.FeePercentage.IsNegative() || t.FeePercentage.GreaterThan(hundred) {
			return constant.NewErrorf(constant.CodeScheduleInvalid, "tier fee percentage must be in [0,100], got %s", t.FeePercentage)
		}
		if i > 0 && t.MonthlyRevenue.Equal(s.Tiers[i-1].MonthlyRevenue) {
			return constant.NewErrorf(constant.CodeDuplicateThreshold, "duplicate tier revenue %s", t.MonthlyRevenue)
		}
	}
	return nil
}
