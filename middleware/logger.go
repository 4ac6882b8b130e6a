package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Logger writes one structured line per request.
func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		attrs := []any{
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency", param.Latency.String(),
			"client_ip", param.ClientIP,
		}
		if param.ErrorMessage != "" {
			attrs = append(attrs, "error", param.ErrorMessage)
		}

		switch {
		case param.StatusCode >= 500:
			slog.Error("request", attrs...)
		case param.StatusCode >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
		return ""
	})
}
