package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const logEventHTTP = "http"

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(context *gin.Context) {
		start := time.Now()
		context.Next()
		fields := []zap.Field{
			zap.String("method", context.Request.Method),
			zap.String("path", context.Request.URL.Path),
			zap.Int("status", context.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("ip", context.ClientIP()),
			zap.String("ua", context.Request.UserAgent()),
		}
		if clientID := ClientIDFromContext(context); clientID != "" {
			fields = append(fields, zap.String("client_id", clientID))
		}
		// Fragment polling is frequent; keep it out of info logs.
		if context.Writer.Status() < 400 && context.Request.Method == "GET" && context.FullPath() != DashboardPath {
			logger.Debug(logEventHTTP, fields...)
			return
		}
		logger.Info(logEventHTTP, fields...)
	}
}
