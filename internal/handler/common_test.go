package handler

import (
	"net/http"
	"testing"

	"multivend-settlement-api/internal/constant"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{constant.CodeScheduleNotFound, http.StatusNotFound},
		{constant.CodeVendorNotFound, http.StatusNotFound},
		{constant.CodePayoutNotFound, http.StatusNotFound},
		{constant.CodePayoutStateConflict, http.StatusConflict},
		{constant.CodeTransactionExists, http.StatusConflict},
		{constant.CodeDatabaseError, http.StatusInternalServerError},
		{constant.CodeUnauthorized, http.StatusUnauthorized},
		{constant.CodeSignatureError, http.StatusUnauthorized},
		{constant.CodeAmountInvalid, http.StatusBadRequest},
		{constant.CodeInsufficientBalance, http.StatusBadRequest},
	}
	for _, c := range cases {
		if got := statusFor(c.code); got != c.want {
			t.Errorf("statusFor(%d) = %d, want %d", c.code, got, c.want)
		}
	}
}
