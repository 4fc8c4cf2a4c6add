package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/utils"
)

// statusFor maps business codes to HTTP statuses.
func statusFor(code int) int {
	switch code {
	case constant.CodeScheduleNotFound, constant.CodeVendorNotFound,
		constant.CodePayoutNotFound, constant.CodeTransactionNotFound:
		return http.StatusNotFound
	case constant.CodePayoutStateConflict, constant.CodeTransactionExists:
		return http.StatusConflict
	case constant.CodeDatabaseError, constant.CodeSystemError, constant.CodeRedisError:
		return http.StatusInternalServerError
	case constant.CodeUnauthorized, constant.CodeSignatureError:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// respondErr writes the envelope for a service error.
func respondErr(c *gin.Context, err error) {
	var ce constant.Error
	if errors.As(err, &ce) {
		c.JSON(statusFor(ce.Code()), utils.ErrorFrom(ce))
		return
	}
	c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeSystemError))
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, "invalid "+name))
		return 0, false
	}
	return id, true
}
