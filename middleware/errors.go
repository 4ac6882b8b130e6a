package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// Error page templates.
const (
	Template403 = "pages/403csrf.html"
	Template404 = "pages/404.html"
	Template500 = "pages/500.html"
)

// ErrorHandler recovers panics and answers with the 500 page, or JSON for API routes.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.HTML(http.StatusInternalServerError, Template500, gin.H{"user": CurrentUser(c)})
		c.Abort()
	})
}

// NotFound renders the 404 page for unknown routes.
func NotFound(c *gin.Context) {
	if isAPI(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, Template404, gin.H{"user": CurrentUser(c), "path": c.Request.URL.Path})
}

// SameOrigin rejects form posts whose Origin header names another host.
func SameOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		u, err := url.Parse(origin)
		if err != nil || !strings.EqualFold(u.Host, c.Request.Host) {
			slog.Warn("cross-origin form post rejected", "origin", origin, "host", c.Request.Host)
			c.HTML(http.StatusForbidden, Template403, gin.H{"user": CurrentUser(c)})
			c.Abort()
			return
		}
		c.Next()
	}
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
