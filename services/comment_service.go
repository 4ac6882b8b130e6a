package services

import (
	"fmt"
	"strings"

	"blogicum/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewCommentService(db *gorm.DB, notifier Notifier) *CommentService {
	return &CommentService{db: db, notifier: notifier}
}

// ListForPost returns the comments of a post, oldest first.
func (s *CommentService) ListForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// GetComment looks the comment up within postID so a comment is only
// reachable under its own post.
func (s *CommentService) GetComment(postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Preload("Author").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	return &comment, nil
}

// CreateComment binds the comment to post and author; nothing else from the
// submitted form is used.
func (s *CommentService) CreateComment(post *models.Post, author *models.User, form *models.CommentForm) (*models.Comment, error) {
	text := strings.TrimSpace(form.Text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: author.ID,
	}
	if err := s.db.Omit(clause.Associations).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment on post %d: %w", post.ID, err)
	}
	comment.Author = *author

	if s.notifier != nil && post.AuthorID != author.ID {
		s.notifier.NotifyUser(post.AuthorID, "comment_created", models.CommentNotification{
			PostID:    post.ID,
			PostTitle: post.Title,
			CommentID: comment.ID,
			Author:    author.Username,
			Text:      comment.Text,
		})
	}

	return comment, nil
}

func (s *CommentService) UpdateComment(comment *models.Comment, form *models.CommentForm) error {
	text := strings.TrimSpace(form.Text)
	if text == "" {
		return ErrEmptyComment
	}

	comment.Text = text
	if err := s.db.Model(comment).Update("text", text).Error; err != nil {
		return fmt.Errorf("update comment %d: %w", comment.ID, err)
	}
	return nil
}

func (s *CommentService) DeleteComment(comment *models.Comment) error {
	if err := s.db.Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return fmt.Errorf("delete comment %d: %w", comment.ID, err)
	}
	return nil
}
