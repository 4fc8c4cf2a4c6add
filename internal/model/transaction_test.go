package model

import "testing"

func TestTxTypeNames(t *testing.T) {
	for _, tt := range []TxType{TxTypeOrderPayment, TxTypeRefund, TxTypeSubscription, TxTypePayout} {
		name := tt.String()
		if name == "unknown" {
			t.Fatalf("type %d has no name", tt)
		}
		parsed, ok := ParseTxType(name)
		if !ok || parsed != tt {
			t.Errorf("round trip failed for %s", name)
		}
	}
	if _, ok := ParseTxType("chargeback"); ok {
		t.Error("parsed an unknown type")
	}
}

func TestTxStatusNames(t *testing.T) {
	got, ok := ParseTxStatus("partial_refund")
	if !ok || got != TxStatusPartialRefund {
		t.Errorf("partial_refund: got %v, %v", got, ok)
	}
	if _, ok := ParseTxStatus(""); ok {
		t.Error("parsed an empty status")
	}
}
