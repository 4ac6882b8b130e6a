package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"blogicum/config"
	"blogicum/middleware"
	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	userService *services.UserService
	cfg         *config.Config
}

func NewAuthController(users *services.UserService, cfg *config.Config) *AuthController {
	return &AuthController{
		userService: users,
		cfg:         cfg,
	}
}

// LoginPage shows the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "registration/login.html", gin.H{"next": c.Query("next")})
}

// Login checks the credentials, sets the session cookie and follows next.
func (ac *AuthController) Login(c *gin.Context) {
	next := c.PostForm("next")

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusOK, "registration/login.html", gin.H{
			"next":     next,
			"username": req.Username,
			"errors":   formErrors(err),
		})
		return
	}

	user, err := ac.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			render(c, http.StatusOK, "registration/login.html", gin.H{
				"next":     next,
				"username": req.Username,
				"errors":   []string{"Please enter a correct username and password."},
			})
			return
		}
		serverError(c, err)
		return
	}

	if err := ac.startSession(c, user); err != nil {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, safeNext(next))
}

// Logout drops the session cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.cfg.SessionCookieSecure, true)
	c.Redirect(http.StatusFound, "/")
}

// Registration creates an account and logs the new user in.
func (ac *AuthController) Registration(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		render(c, http.StatusOK, "registration/registration_form.html", gin.H{"form": models.RegistrationForm{}})
		return
	}

	var form models.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "registration/registration_form.html", gin.H{"form": form, "errors": formErrors(err)})
		return
	}

	user, err := ac.userService.CreateUser(form.CreateUserRequest())
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			render(c, http.StatusOK, "registration/registration_form.html", gin.H{"form": form, "errors": []string{err.Error()}})
			return
		}
		serverError(c, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	if err := ac.startSession(c, user); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) startSession(c *gin.Context, user *models.User) error {
	token, err := utils.GenerateJWT(ac.cfg.JWTSecret, user.ID, ac.cfg.JWTTTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(ac.cfg.JWTTTL.Seconds()), "/", "", ac.cfg.SessionCookieSecure, true)
	return nil
}

// safeNext only follows local paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (ac *AuthController) APIRegister(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.userService.CreateUser(&req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		slog.Error("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := utils.GenerateJWT(ac.cfg.JWTSecret, user.ID, ac.cfg.JWTTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"data":    user,
		"token":   token,
	})
}

func (ac *AuthController) APILogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := utils.GenerateJWT(ac.cfg.JWTSecret, user.ID, ac.cfg.JWTTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    user,
		"token":   token,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": middleware.CurrentUser(c)})
}

// DeleteMe removes the current account together with its posts and comments.
func (ac *AuthController) DeleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := ac.userService.DeleteUser(user.ID); err != nil {
		slog.Error("delete user failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
