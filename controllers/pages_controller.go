package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func About(c *gin.Context) {
	render(c, http.StatusOK, "pages/about.html", nil)
}

func Rules(c *gin.Context) {
	render(c, http.StatusOK, "pages/rules.html", nil)
}
