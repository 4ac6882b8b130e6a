package controllers

import (
	"errors"
	"net/http"

	"blogicum/middleware"
	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	userService *services.UserService
	postService *services.PostService
}

func NewProfileController(users *services.UserService, posts *services.PostService) *ProfileController {
	return &ProfileController{
		userService: users,
		postService: posts,
	}
}

// Profile shows a user and their posts. The owner also sees drafts and
// scheduled posts.
func (pc *ProfileController) Profile(c *gin.Context) {
	profile, err := pc.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			notFound(c)
			return
		}
		serverError(c, err)
		return
	}

	viewer := middleware.CurrentUser(c)
	page, err := pc.postService.ListByAuthor(profile, viewer, c.Query("page"))
	if err != nil {
		if errors.Is(err, utils.ErrPageOutOfRange) {
			notFound(c)
			return
		}
		serverError(c, err)
		return
	}

	render(c, http.StatusOK, "blog/profile.html", gin.H{
		"profile": profile,
		"own":     services.IsAuthor(viewer, profile.ID),
		"posts":   page.Posts,
		"page":    page.Page,
	})
}

// EditProfile edits the current user; there is no way to target anyone else.
func (pc *ProfileController) EditProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if c.Request.Method == http.MethodGet {
		render(c, http.StatusOK, "blog/user.html", gin.H{"form": models.ProfileFormFromUser(user)})
		return
	}

	var form models.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "blog/user.html", gin.H{"form": form, "errors": formErrors(err)})
		return
	}

	if err := pc.userService.UpdateProfile(user, &form); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			render(c, http.StatusOK, "blog/user.html", gin.H{"form": form, "errors": []string{err.Error()}})
			return
		}
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, profileURL(user.Username))
}
