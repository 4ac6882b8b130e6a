package controllers

import (
	"errors"
	"net/http"

	"blogicum/middleware"
	"blogicum/models"
	"blogicum/services"

	"github.com/gin-gonic/gin"
)

const commentTemplate = "blog/comment.html"

type CommentController struct {
	postService    *services.PostService
	commentService *services.CommentService
}

func NewCommentController(posts *services.PostService, comments *services.CommentService) *CommentController {
	return &CommentController{
		postService:    posts,
		commentService: comments,
	}
}

// AddComment stores a comment on a post the current user can see.
func (cc *CommentController) AddComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return
	}

	user := middleware.CurrentUser(c)
	post, err := cc.postService.GetVisiblePost(id, user)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			notFound(c)
			return
		}
		serverError(c, err)
		return
	}

	var form models.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		cc.renderForm(c, post.ID, gin.H{"form": form, "errors": formErrors(err)})
		return
	}

	if _, err := cc.commentService.CreateComment(post, user, &form); err != nil {
		if errors.Is(err, services.ErrEmptyComment) {
			cc.renderForm(c, post.ID, gin.H{"form": form, "errors": []string{err.Error()}})
			return
		}
		serverError(c, err)
		return
	}

	redirectToPost(c, post.ID)
}

// EditComment lets the comment author change its text.
func (cc *CommentController) EditComment(c *gin.Context) {
	postID, comment, ok := cc.authoredComment(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodGet {
		cc.renderForm(c, postID, gin.H{"comment": comment, "form": models.CommentForm{Text: comment.Text}})
		return
	}

	var form models.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		cc.renderForm(c, postID, gin.H{"comment": comment, "form": form, "errors": formErrors(err)})
		return
	}

	if err := cc.commentService.UpdateComment(comment, &form); err != nil {
		if errors.Is(err, services.ErrEmptyComment) {
			cc.renderForm(c, postID, gin.H{"comment": comment, "form": form, "errors": []string{err.Error()}})
			return
		}
		serverError(c, err)
		return
	}

	redirectToPost(c, postID)
}

// DeleteComment asks for confirmation on GET and deletes on POST.
func (cc *CommentController) DeleteComment(c *gin.Context) {
	postID, comment, ok := cc.authoredComment(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodGet {
		cc.renderForm(c, postID, gin.H{"comment": comment, "delete": true})
		return
	}

	if err := cc.commentService.DeleteComment(comment); err != nil {
		serverError(c, err)
		return
	}

	redirectToPost(c, postID)
}

// authoredComment resolves the comment under the path post and checks its
// author. Other users are sent back to the post.
func (cc *CommentController) authoredComment(c *gin.Context) (uint, *models.Comment, bool) {
	postID, ok := parseID(c, "id")
	if !ok {
		notFound(c)
		return 0, nil, false
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		notFound(c)
		return 0, nil, false
	}

	comment, err := cc.commentService.GetComment(postID, commentID)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			notFound(c)
		} else {
			serverError(c, err)
		}
		return 0, nil, false
	}

	if !services.IsAuthor(middleware.CurrentUser(c), comment.AuthorID) {
		redirectToPost(c, postID)
		return 0, nil, false
	}
	return postID, comment, true
}

func (cc *CommentController) renderForm(c *gin.Context, postID uint, data gin.H) {
	data["post_id"] = postID
	data["action"] = c.Request.URL.Path
	render(c, http.StatusOK, commentTemplate, data)
}
