package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"blogicum/middleware"
	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
)

// APIController exposes the blog read model and the staff catalogue as JSON.
type APIController struct {
	postService     *services.PostService
	categoryService *services.CategoryService
	locationService *services.LocationService
}

func NewAPIController(posts *services.PostService, categories *services.CategoryService, locations *services.LocationService) *APIController {
	return &APIController{
		postService:     posts,
		categoryService: categories,
		locationService: locations,
	}
}

func (ac *APIController) GetPosts(c *gin.Context) {
	page, err := ac.postService.ListPublished(c.Query("page"))
	if err != nil {
		if errors.Is(err, utils.ErrPageOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid page"})
			return
		}
		slog.Error("list posts failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      page.Posts,
		"page":      page.Page.Number,
		"num_pages": page.Page.NumPages,
		"total":     page.Page.Total,
	})
}

func (ac *APIController) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := ac.postService.GetVisiblePost(uint(id), middleware.CurrentUser(c))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (ac *APIController) GetCategories(c *gin.Context) {
	var (
		categories []models.Category
		err        error
	)
	if user := middleware.CurrentUser(c); user != nil && user.IsStaff {
		categories, err = ac.categoryService.ListAll()
	} else {
		categories, err = ac.categoryService.ListPublished()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (ac *APIController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := ac.categoryService.CreateCategory(&req)
	if err != nil {
		catalogueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func (ac *APIController) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := ac.categoryService.UpdateCategory(uint(id), &req)
	if err != nil {
		catalogueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (ac *APIController) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := ac.categoryService.DeleteCategory(uint(id)); err != nil {
		catalogueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (ac *APIController) GetLocations(c *gin.Context) {
	locations, err := ac.locationService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": locations})
}

func (ac *APIController) CreateLocation(c *gin.Context) {
	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := ac.locationService.CreateLocation(&req)
	if err != nil {
		catalogueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": location})
}

func (ac *APIController) UpdateLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := ac.locationService.UpdateLocation(uint(id), &req)
	if err != nil {
		catalogueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": location})
}

func (ac *APIController) DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if err := ac.locationService.DeleteLocation(uint(id)); err != nil {
		catalogueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}

func catalogueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound), errors.Is(err, services.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error("catalogue update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
