package commission

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testSchedule() *model.CommissionSchedule {
	return &model.CommissionSchedule{
		Version:            1,
		BaseFeePercentage:  dec("2.5"),
		TransactionFeeFlat: dec("0.30"),
		Tiers: []model.CommissionTier{
			{MonthlyRevenue: dec("1000"), FeePercentage: dec("2.5")},
			{MonthlyRevenue: dec("5000"), FeePercentage: dec("2.25")},
			{MonthlyRevenue: dec("10000"), FeePercentage: dec("2.0")},
		},
	}
}

func TestResolveFeePercentage(t *testing.T) {
	s := testSchedule()

	cases := []struct {
		revenue string
		want    string
	}{
		{"0", "2.5"},      // below lowest tier, base rate
		{"999.99", "2.5"}, // still below lowest tier
		{"1000", "2.5"},   // inclusive lower bound
		{"5000", "2.25"},  // exact boundary uses that tier
		{"7500", "2.25"},
		{"10000", "2.0"},
		{"250000", "2.0"},
	}
	for _, c := range cases {
		got, err := ResolveFeePercentage(s, dec(c.revenue))
		if err != nil {
			t.Fatalf("revenue %s: %v", c.revenue, err)
		}
		if !got.Equal(dec(c.want)) {
			t.Errorf("revenue %s: got %s, want %s", c.revenue, got, c.want)
		}
	}
}

func TestResolveFeePercentageUnsortedTiers(t *testing.T) {
	s := testSchedule()
	s.Tiers[0], s.Tiers[2] = s.Tiers[2], s.Tiers[0]

	got, err := ResolveFeePercentage(s, dec("7500"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec("2.25")) {
		t.Errorf("got %s, want 2.25", got)
	}
}

// A schedule without tiers always resolves the base rate; the zero value
// is a valid 0% rate, not an absent one.
func TestResolveFeePercentageNoTiers(t *testing.T) {
	s := &model.CommissionSchedule{BaseFeePercentage: dec("2.5")}
	got, err := ResolveFeePercentage(s, dec("7500"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec("2.5")) {
		t.Errorf("got %s, want 2.5", got)
	}

	zero := &model.CommissionSchedule{}
	got, err = ResolveFeePercentage(zero, dec("7500"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Errorf("zero-value base: got %s, want 0", got)
	}
}

func TestResolveFeePercentageNegativeRevenue(t *testing.T) {
	if _, err := ResolveFeePercentage(testSchedule(), dec("-1")); err == nil {
		t.Fatal("expected error for negative revenue")
	}
}

func TestResolveFeePercentageBadTier(t *testing.T) {
	s := testSchedule()
	s.Tiers[0].MonthlyRevenue = decimal.Zero
	_, err := ResolveFeePercentage(s, dec("7500"))
	var ce constant.Error
	if !errors.As(err, &ce) || ce.Code() != constant.CodeScheduleInvalid {
		t.Fatalf("expected schedule invalid error, got %v", err)
	}
}

func TestComputeFee(t *testing.T) {
	s := testSchedule()

	// $7500 monthly revenue resolves 2.25%; $100 * 2.25% + $0.30 = $2.55
	fees, err := ComputeFee(s, dec("100"), dec("7500"))
	if err != nil {
		t.Fatal(err)
	}
	if !fees.Fee.Equal(dec("2.55")) {
		t.Errorf("fee: got %s, want 2.55", fees.Fee)
	}
	if !fees.Net.Equal(dec("97.45")) {
		t.Errorf("net: got %s, want 97.45", fees.Net)
	}
}

func TestComputeFeeRoundTrip(t *testing.T) {
	s := testSchedule()
	amounts := []string{"0.01", "0.99", "19.99", "100", "12345.67", "0.03"}
	for _, a := range amounts {
		fees, err := ComputeFee(s, dec(a), dec("7500"))
		if err != nil {
			t.Fatal(err)
		}
		if !fees.Fee.Add(fees.Net).Equal(dec(a)) {
			t.Errorf("amount %s: fee %s + net %s != amount", a, fees.Fee, fees.Net)
		}
	}
}

func TestComputeFeeLinearInAmount(t *testing.T) {
	s := testSchedule()
	a := dec("123.45")

	single, err := ComputeFee(s, a, dec("7500"))
	if err != nil {
		t.Fatal(err)
	}
	double, err := ComputeFee(s, a.Mul(decimal.NewFromInt(2)), dec("7500"))
	if err != nil {
		t.Fatal(err)
	}
	// the flat fee is added once, not doubled
	want := single.Fee.Mul(decimal.NewFromInt(2)).Sub(s.TransactionFeeFlat)
	if !double.Fee.Sub(want).Abs().LessThanOrEqual(dec("0.01")) {
		t.Errorf("fee(2a) = %s, want ~%s", double.Fee, want)
	}
}

func TestComputeFeeNegativeAmount(t *testing.T) {
	_, err := ComputeFee(testSchedule(), dec("-10"), dec("7500"))
	var ce constant.Error
	if !errors.As(err, &ce) || ce.Code() != constant.CodeAmountInvalid {
		t.Fatalf("expected amount invalid error, got %v", err)
	}
}

func TestComputeFeeNetMayGoNegative(t *testing.T) {
	s := testSchedule()
	s.TransactionFeeFlat = dec("5.00")

	fees, err := ComputeFee(s, dec("1.00"), dec("0"))
	if err != nil {
		t.Fatal(err)
	}
	if !fees.Net.IsNegative() {
		t.Errorf("expected negative net with oversized flat fee, got %s", fees.Net)
	}
	if !fees.Fee.Add(fees.Net).Equal(dec("1.00")) {
		t.Errorf("round trip broken: fee %s net %s", fees.Fee, fees.Net)
	}
}

func TestValidateScheduleDuplicateThreshold(t *testing.T) {
	s := testSchedule()
	s.Tiers = append(s.Tiers, model.CommissionTier{MonthlyRevenue: dec("1000"), FeePercentage: dec("2.0")})

	err := ValidateSchedule(s)
	var ce constant.Error
	if !errors.As(err, &ce) || ce.Code() != constant.CodeDuplicateThreshold {
		t.Fatalf("expected duplicate threshold error, got %v", err)
	}
}

func TestValidateScheduleSortsTiers(t *testing.T) {
	s := testSchedule()
	s.Tiers[0], s.Tiers[2] = s.Tiers[2], s.Tiers[0]

	if err := ValidateSchedule(s); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(s.Tiers); i++ {
		if s.Tiers[i].MonthlyRevenue.LessThan(s.Tiers[i-1].MonthlyRevenue) {
			t.Fatalf("tiers not sorted: %s before %s", s.Tiers[i-1].MonthlyRevenue, s.Tiers[i].MonthlyRevenue)
		}
	}
}

func TestValidateScheduleRejectsBadRates(t *testing.T) {
	s := testSchedule()
	s.BaseFeePercentage = dec("101")
	if err := ValidateSchedule(s); err == nil {
		t.Error("expected error for base rate > 100")
	}

	s = testSchedule()
	s.TransactionFeeFlat = dec("-0.01")
	if err := ValidateSchedule(s); err == nil {
		t.Error("expected error for negative flat fee")
	}

	s = testSchedule()
	s.Tiers[1].FeePercentage = dec("-1")
	if err := ValidateSchedule(s); err == nil {
		t.Error("expected error for negative tier rate")
	}

	s = testSchedule()
	s.Tiers[1].MonthlyRevenue = dec("0")
	if err := ValidateSchedule(s); err == nil {
		t.Error("expected error for non-positive tier revenue")
	}
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2.545", "2.55"},
		{"2.544", "2.54"},
		{"-2.545", "-2.55"},
		{"0.005", "0.01"},
	}
	for _, c := range cases {
		if got := Round2(dec(c.in)); !got.Equal(dec(c.want)) {
			t.Errorf("Round2(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}
