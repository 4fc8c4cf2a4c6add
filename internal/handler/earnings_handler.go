package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"multivend-settlement-api/internal/service"
	"multivend-settlement-api/internal/utils"
)

type EarningsHandler struct{ svc *service.EarningsService }

func NewEarningsHandler() *EarningsHandler {
	return &EarningsHandler{svc: service.NewEarningsService()}
}

// Summary returns the vendor earnings view: revenue, derived balances and
// the change against the prior window.
func (h *EarningsHandler) Summary(c *gin.Context) {
	vendorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Summary(vendorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}
