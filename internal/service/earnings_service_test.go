package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRevenueChange(t *testing.T) {
	dec := decimal.RequireFromString

	cases := []struct {
		current, previous, want string
	}{
		{"150", "100", "50"},
		{"50", "100", "-50"},
		{"100", "100", "0"},
		{"100", "0", "100"}, // no prior revenue, any revenue is +100%
		{"0", "0", "0"},
		{"100", "30", "233.33"},
	}
	for _, c := range cases {
		got := RevenueChange(dec(c.current), dec(c.previous))
		if !got.Equal(dec(c.want)) {
			t.Errorf("RevenueChange(%s, %s) = %s, want %s", c.current, c.previous, got, c.want)
		}
	}
}
