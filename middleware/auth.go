package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// SessionCookie holds the JWT of a logged-in browser session.
	SessionCookie = "access_token"
	// LoginURL is where anonymous visitors of protected pages are sent.
	LoginURL = "/auth/login/"

	userKey = "user"
)

// Authenticate resolves the current user from a Bearer token, the ?token=
// query of a websocket handshake, or the session cookie. Anonymous requests
// pass through untouched.
func Authenticate(users *services.UserService, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" && websocket.IsWebSocketUpgrade(c.Request) {
			// browsers cannot set headers on a websocket handshake
			token = c.Query("token")
		}
		if token == "" {
			token, _ = c.Cookie(SessionCookie)
		}
		if token == "" {
			c.Next()
			return
		}

		userID, err := utils.ValidateJWT(secret, token)
		if err != nil {
			slog.Debug("token validation failed", "error", err)
			c.Next()
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// LoginRequired redirects anonymous visitors to the login page and back.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

func APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !user.IsStaff {
			slog.Warn("non-staff user blocked from staff route", "route", c.FullPath(), "user_id", user.ID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
