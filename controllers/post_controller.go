package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"blogicum/middleware"
	"blogicum/models"
	"blogicum/services"
	"blogicum/storage"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
)

const postFormTemplate = "blog/create.html"

type PostController struct {
	postService     *services.PostService
	commentService  *services.CommentService
	categoryService *services.CategoryService
	locationService *services.LocationService
}

func NewPostController(posts *services.PostService, comments *services.CommentService, categories *services.CategoryService, locations *services.LocationService) *PostController {
	return &PostController{
		postService:     posts,
		commentService:  comments,
		categoryService: categories,
		locationService: locations,
	}
}

// Index renders the public feed.
func (pc *PostController) Index(c *gin.Context) {
	page, err := pc.postService.ListPublished(c.Query("page"))
	if err != nil {
		pc.listError(c, err)
		return
	}

	render(c, http.StatusOK, "blog/index.html", gin.H{
		"posts": page.Posts,
		"page":  page.Page,
	})
}

// CategoryPosts renders the feed of one published category.
func (pc *PostController) CategoryPosts(c *gin.Context) {
	category, page, err := pc.postService.ListByCategory(c.Param("slug"), c.Query("page"))
	if err != nil {
		pc.listError(c, err)
		return
	}

	render(c, http.StatusOK, "blog/category.html", gin.H{
		"category": category,
		"posts":    page.Posts,
		"page":     page.Page,
	})
}

// PostDetail shows a post with its comments. Hidden posts are 404 for
// everyone but their author.
func (pc *PostController) PostDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return
	}

	user := middleware.CurrentUser(c)
	post, err := pc.postService.GetVisiblePost(id, user)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			notFound(c)
			return
		}
		serverError(c, err)
		return
	}

	comments, err := pc.commentService.ListForPost(post.ID)
	if err != nil {
		serverError(c, err)
		return
	}

	data := gin.H{
		"post":     post,
		"comments": comments,
		"can_edit": services.IsAuthor(user, post.AuthorID),
	}
	if user != nil {
		data["form"] = &models.CommentForm{}
	}
	render(c, http.StatusOK, "blog/detail.html", data)
}

// CreatePost shows the empty form and stores a submitted post authored by
// the current user.
func (pc *PostController) CreatePost(c *gin.Context) {
	user := middleware.CurrentUser(c)
	data := gin.H{"action": "/posts/create/"}

	if c.Request.Method == http.MethodGet {
		data["form"] = models.PostForm{PubDate: pc.postService.Now(), IsPublished: true}
		pc.renderForm(c, data)
		return
	}

	var form models.PostForm
	if err := c.ShouldBind(&form); err != nil {
		data["form"] = form
		data["errors"] = formErrors(err)
		pc.renderForm(c, data)
		return
	}

	if _, err := pc.postService.CreatePost(c.Request.Context(), user, &form, uploadedImage(c)); err != nil {
		if msg, ok := postFormError(err); ok {
			data["form"] = form
			data["errors"] = []string{msg}
			pc.renderForm(c, data)
			return
		}
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, profileURL(user.Username))
}

// EditPost lets the author change a post; anyone else is sent back to it.
func (pc *PostController) EditPost(c *gin.Context) {
	post, ok := pc.authoredPost(c)
	if !ok {
		return
	}

	data := gin.H{"action": c.Request.URL.Path, "post": post}

	if c.Request.Method == http.MethodGet {
		data["form"] = models.PostFormFromPost(post)
		pc.renderForm(c, data)
		return
	}

	var form models.PostForm
	if err := c.ShouldBind(&form); err != nil {
		data["form"] = form
		data["errors"] = formErrors(err)
		pc.renderForm(c, data)
		return
	}

	if err := pc.postService.UpdatePost(c.Request.Context(), post, &form, uploadedImage(c)); err != nil {
		if msg, ok := postFormError(err); ok {
			data["form"] = form
			data["errors"] = []string{msg}
			pc.renderForm(c, data)
			return
		}
		serverError(c, err)
		return
	}

	redirectToPost(c, post.ID)
}

// DeletePost asks for confirmation on GET and deletes on POST.
func (pc *PostController) DeletePost(c *gin.Context) {
	post, ok := pc.authoredPost(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodGet {
		pc.renderForm(c, gin.H{
			"action": c.Request.URL.Path,
			"post":   post,
			"form":   models.PostFormFromPost(post),
			"delete": true,
		})
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), post); err != nil {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// authoredPost loads the path post and checks the current user wrote it. It
// answers the request itself when ok is false.
func (pc *PostController) authoredPost(c *gin.Context) (*models.Post, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return nil, false
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			notFound(c)
		} else {
			serverError(c, err)
		}
		return nil, false
	}

	if !services.IsAuthor(middleware.CurrentUser(c), post.AuthorID) {
		redirectToPost(c, post.ID)
		return nil, false
	}
	return post, true
}

func (pc *PostController) renderForm(c *gin.Context, data gin.H) {
	categories, err := pc.categoryService.ListPublished()
	if err != nil {
		serverError(c, err)
		return
	}
	locations, err := pc.locationService.ListPublished()
	if err != nil {
		serverError(c, err)
		return
	}

	data["categories"] = categories
	data["locations"] = locations
	render(c, http.StatusOK, postFormTemplate, data)
}

func (pc *PostController) listError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrPageOutOfRange) || errors.Is(err, services.ErrCategoryNotFound) {
		notFound(c)
		return
	}
	serverError(c, err)
}

func uploadedImage(c *gin.Context) *multipart.FileHeader {
	header, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return header
}

func postFormError(err error) (string, bool) {
	switch {
	case errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidLocation):
		return err.Error(), true
	case errors.Is(err, storage.ErrInvalidImage):
		return "image: upload a jpg, png, gif or webp file", true
	}
	return "", false
}
