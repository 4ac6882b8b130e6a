package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"blogicum/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// render adds the current user to data and renders the named page.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = middleware.CurrentUser(c)
	data["path"] = c.Request.URL.Path
	c.HTML(status, name, data)
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, middleware.Template404, nil)
}

func serverError(c *gin.Context, err error) {
	slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
	render(c, http.StatusInternalServerError, middleware.Template500, nil)
}

func redirectToPost(c *gin.Context, postID uint) {
	c.Redirect(http.StatusFound, postURL(postID))
}

func postURL(postID uint) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// formErrors turns binding errors into messages shown above a form.
func formErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Check the submitted values: " + err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+": this field is required")
		case "max":
			messages = append(messages, fmt.Sprintf("%s: at most %s characters", field, fe.Param()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s: at least %s characters", field, fe.Param()))
		case "email":
			messages = append(messages, field+": enter a valid email address")
		case "username":
			messages = append(messages, field+": only letters, digits and @/./+/-/_ are allowed")
		case "eqfield":
			messages = append(messages, "the two password fields didn't match")
		default:
			messages = append(messages, field+": invalid value")
		}
	}
	return messages
}
