package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/dto"
	"multivend-settlement-api/internal/model"
	"multivend-settlement-api/internal/service"
	"multivend-settlement-api/internal/utils"
)

type ScheduleHandler struct{ svc *service.ScheduleService }

func NewScheduleHandler() *ScheduleHandler {
	return &ScheduleHandler{svc: service.NewScheduleService()}
}

// Get returns the active commission schedule, or a historical version
// when ?version=N is given (fee provenance for recorded transactions).
func (h *ScheduleHandler) Get(c *gin.Context) {
	var sched *model.CommissionSchedule
	var err error
	if v := c.Query("version"); v != "" {
		version, perr := strconv.Atoi(v)
		if perr != nil || version <= 0 {
			c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, "invalid version"))
			return
		}
		sched, err = h.svc.GetVersion(version)
	} else {
		sched, err = h.svc.GetActive()
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(service.ToScheduleResp(sched)))
}

// Update persists a new schedule version. Thresholds may arrive unsorted;
// duplicates are rejected with no partial write.
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.UpdateScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	sched, err := h.svc.Update(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(service.ToScheduleResp(sched)))
}
