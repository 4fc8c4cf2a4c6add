package model

import "testing"

func TestPayoutTransitions(t *testing.T) {
	cases := []struct {
		from, to PayoutStatus
		allowed  bool
	}{
		{PayoutPending, PayoutProcessing, true},
		{PayoutPending, PayoutFailed, true},
		{PayoutPending, PayoutCompleted, false}, // must go through processing
		{PayoutProcessing, PayoutCompleted, true},
		{PayoutProcessing, PayoutFailed, true},
		{PayoutProcessing, PayoutPending, false},
		{PayoutCompleted, PayoutFailed, false},
		{PayoutCompleted, PayoutProcessing, false},
		{PayoutFailed, PayoutPending, false},
		{PayoutFailed, PayoutProcessing, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.allowed {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.allowed)
		}
	}
}

func TestPayoutTerminalStates(t *testing.T) {
	if PayoutPending.Terminal() || PayoutProcessing.Terminal() {
		t.Error("pending/processing must not be terminal")
	}
	if !PayoutCompleted.Terminal() || !PayoutFailed.Terminal() {
		t.Error("completed/failed must be terminal")
	}
}

func TestPayoutStatusNames(t *testing.T) {
	for _, s := range []PayoutStatus{PayoutPending, PayoutProcessing, PayoutCompleted, PayoutFailed} {
		name := s.String()
		if name == "unknown" {
			t.Fatalf("status %d has no name", s)
		}
		parsed, ok := ParsePayoutStatus(name)
		if !ok || parsed != s {
			t.Errorf("round trip failed for %s", name)
		}
	}
	if _, ok := ParsePayoutStatus("bogus"); ok {
		t.Error("parsed a bogus status")
	}
}

func TestValidPayoutMethod(t *testing.T) {
	for _, m := range []string{MethodBankTransfer, MethodPaypal, MethodStripe} {
		if !ValidPayoutMethod(m) {
			t.Errorf("%s should be supported", m)
		}
	}
	if ValidPayoutMethod("venmo") || ValidPayoutMethod("") {
		t.Error("unsupported method accepted")
	}
}
