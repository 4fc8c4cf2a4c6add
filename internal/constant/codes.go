package constant

// System-level codes (1xxx)
const (
	CodeSuccess       = 0
	CodeSystemError   = 1000 // unexpected internal failure
	CodeDatabaseError = 1001 // connection/query/transaction failure
	CodeRedisError    = 1002 // cache read/write failure
)

// Parameter codes (11xx)
const (
	CodeInvalidParams = 1100 // request body malformed or fails binding
)

// Auth codes (12xx)
const (
	CodeUnauthorized   = 1200
	CodeSignatureError = 1203 // HMAC signature mismatch
)

// Commission schedule codes (20xx)
const (
	CodeScheduleNotFound   = 2000 // no active commission schedule configured
	CodeScheduleInvalid    = 2001 // rate out of [0,100], non-positive tier revenue, negative flat fee
	CodeDuplicateThreshold = 2002 // two tiers share the same monthly revenue boundary
)

// Transaction codes (21xx)
const (
	CodeTransactionNotFound = 2100
	CodeAmountInvalid       = 2101 // amount not a decimal, or out of range for the operation
	CodeTransactionExists   = 2102 // duplicate gateway transaction id
	CodeTypeInvalid         = 2103 // unknown transaction type
)

// Vendor codes (22xx)
const (
	CodeVendorNotFound = 2200
	CodeVendorDisabled = 2201
)

// Payout codes (23xx)
const (
	CodePayoutNotFound      = 2300
	CodeInsufficientBalance = 2301 // requested amount exceeds available balance
	CodeMethodInvalid       = 2302 // payout method outside the supported set
	CodePayoutStateConflict = 2303 // transition not allowed from the payout's current status
)
