package constant

// ErrorMessages maps business codes to user-facing descriptions.
var ErrorMessages = map[int]string{
	CodeSuccess:       "success",
	CodeSystemError:   "system error",
	CodeDatabaseError: "database error",
	CodeRedisError:    "cache error",

	CodeInvalidParams: "invalid request parameters",

	CodeUnauthorized:   "unauthorized",
	CodeSignatureError: "signature verification failed",

	CodeScheduleNotFound:   "commission schedule not found",
	CodeScheduleInvalid:    "commission schedule invalid",
	CodeDuplicateThreshold: "duplicate revenue threshold in commission schedule",

	CodeTransactionNotFound: "transaction not found",
	CodeAmountInvalid:       "amount invalid",
	CodeTransactionExists:   "transaction already recorded",
	CodeTypeInvalid:         "transaction type invalid",

	CodeVendorNotFound: "vendor not found",
	CodeVendorDisabled: "vendor account disabled",

	CodePayoutNotFound:      "payout not found",
	CodeInsufficientBalance: "amount exceeds available balance",
	CodeMethodInvalid:       "payout method not supported",
	CodePayoutStateConflict: "payout is not in a state that allows this operation",
}
