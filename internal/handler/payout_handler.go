package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/dto"
	"multivend-settlement-api/internal/service"
	"multivend-settlement-api/internal/utils"
)

type PayoutHandler struct{ svc *service.PayoutService }

func NewPayoutHandler() *PayoutHandler {
	return &PayoutHandler{svc: service.NewPayoutService()}
}

// Create handles a vendor's payout request.
func (h *PayoutHandler) Create(c *gin.Context) {
	vendorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreatePayoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	resp, err := h.svc.Request(vendorID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.Success(resp))
}

// Approve moves a pending payout to processing after the fresh balance
// re-check. A failed re-check answers 409 and leaves the payout pending.
func (h *PayoutHandler) Approve(c *gin.Context) {
	payoutID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewPayoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	resp, err := h.svc.Approve(payoutID, req.Notes)
	if err != nil {
		var ce constant.Error
		if errors.As(err, &ce) && ce.Code() == constant.CodeInsufficientBalance {
			c.JSON(http.StatusConflict, utils.ErrorFrom(ce))
			return
		}
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Reject moves a pending payout to failed.
func (h *PayoutHandler) Reject(c *gin.Context) {
	payoutID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewPayoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	resp, err := h.svc.Reject(payoutID, req.Notes)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Get returns one payout.
func (h *PayoutHandler) Get(c *gin.Context) {
	payoutID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(payoutID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// List returns a page of a vendor's payout history.
func (h *PayoutHandler) List(c *gin.Context) {
	vendorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ListPayoutsReq
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
