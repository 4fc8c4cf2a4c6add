package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/dto"
	"multivend-settlement-api/internal/service"
	"multivend-settlement-api/internal/utils"
)

type TransactionHandler struct{ svc *service.TransactionService }

func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{svc: service.NewTransactionService()}
}

// Record ingests a payment / refund / subscription event over HTTP (the
// MQ consumer feeds the same service path).
func (h *TransactionHandler) Record(c *gin.Context) {
	var req dto.RecordTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	resp, err := h.svc.Record(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.Success(resp))
}

// List returns a page of a vendor's transaction history.
func (h *TransactionHandler) List(c *gin.Context) {
	vendorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ListTransactionsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	data, err := h.svc.ListPage(vendorID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(data))
}
