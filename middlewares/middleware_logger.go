package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/guestlist-app/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"status":    status,
			"latency":   latency,
			"client_ip": c.ClientIP(),
			"path":      path,
		})
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}

// CheckInLoggerMiddleware keeps an audit trail of door redemptions.
func CheckInLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		fields := logrus.Fields{
			"status":    c.Writer.Status(),
			"client_ip": c.ClientIP(),
			"path":      c.Request.URL.Path,
		}
		if userID, ok := c.Get(ContextUserID); ok {
			fields["user_id"] = userID
		}
		if c.Writer.Status() < 300 {
			utils.InfoLogger.WithFields(fields).Info("Check-in accepted")
		} else {
			utils.InfoLogger.WithFields(fields).Warn("Check-in refused")
		}
	}
}
