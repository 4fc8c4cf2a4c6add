package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"multivend-settlement-api/internal/config"
	"multivend-settlement-api/internal/constant"
	"multivend-settlement-api/internal/utils"
)

// AuthHMAC verifies the X-Signature header on mutating internal routes:
// schedule updates, transaction ingestion and payout requests come from
// trusted collaborators that share the platform secret.
func AuthHMAC() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		sig := c.GetHeader("X-Signature")
		if sig == "" {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}

		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, []byte(config.C.Security.HMACSecret))
		mac.Write(body)
		if hex.EncodeToString(mac.Sum(nil)) != sig {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeSignatureError))
			c.Abort()
			return
		}
		c.Next()
	}
}
