package services

import "errors"

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrSlugTaken          = errors.New("a category with that slug already exists")
	ErrInvalidCategory    = errors.New("select a published category")
	ErrInvalidLocation    = errors.New("select a published location")
	ErrEmptyComment       = errors.New("comment text must not be empty")
)
