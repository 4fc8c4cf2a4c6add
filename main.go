package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"multivend-settlement-api/internal/config"
	"multivend-settlement-api/internal/consumers"
	"multivend-settlement-api/internal/dal"
	"multivend-settlement-api/internal/handler"
	"multivend-settlement-api/internal/idgen"
	"multivend-settlement-api/internal/logger"
	"multivend-settlement-api/internal/middleware"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen + audit trail
	idgen.Init(config.C.Snowflake.NodeID)
	go idgen.CheckSystemClock()
	logger.InitLoggers()

	// start consumers
	consumers.StartAll()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover(), middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		sh := handler.NewScheduleHandler()
		v1.GET("/payments/commission-settings", sh.Get)
		v1.PUT("/payments/commission-settings", middleware.AuthHMAC(), sh.Update)

		ph := handler.NewPayoutHandler()
		v1.POST("/vendors/:id/payouts", middleware.AuthHMAC(), ph.Create)
		v1.GET("/vendors/:id/payouts", ph.List)
		v1.PATCH("/platform/payouts/:id/approve", ph.Approve)
		v1.PATCH("/platform/payouts/:id/reject", ph.Reject)
		v1.GET("/platform/payouts/:id", ph.Get)

		eh := handler.NewEarningsHandler()
		v1.GET("/vendors/:id/earnings", eh.Summary)

		th := handler.NewTransactionHandler()
		v1.POST("/transactions", middleware.AuthHMAC(), th.Record)
		v1.GET("/vendors/:id/transactions", th.List)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
