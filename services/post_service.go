package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"blogicum/models"
	"blogicum/storage"
	"blogicum/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostService struct {
	db      *gorm.DB
	storage storage.Storage
	now     func() time.Time
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []models.Post
	Page  *utils.Page
}

func NewPostService(db *gorm.DB, store storage.Storage) *PostService {
	return &PostService{
		db:      db,
		storage: store,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for visibility checks.
func (s *PostService) WithClock(now func() time.Time) *PostService {
	s.now = now
	return s
}

func (s *PostService) Now() time.Time {
	return s.now()
}

// ListPublished is the public feed, newest publication first.
func (s *PostService) ListPublished(rawPage string) (*PostPage, error) {
	now := s.now()
	return s.paginate(rawPage, func() *gorm.DB {
		return s.db.Model(&models.Post{}).Scopes(PubliclyVisible(now))
	})
}

// ListByCategory lists the visible posts of a published category.
func (s *PostService) ListByCategory(slug, rawPage string) (*models.Category, *PostPage, error) {
	var category models.Category
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&category).Error
	if err != nil {
		return nil, nil, notFound(err, ErrCategoryNotFound)
	}

	now := s.now()
	page, err := s.paginate(rawPage, func() *gorm.DB {
		return s.db.Model(&models.Post{}).
			Scopes(PubliclyVisible(now)).
			Where("posts.category_id = ?", category.ID)
	})
	if err != nil {
		return nil, nil, err
	}
	return &category, page, nil
}

// ListByAuthor lists every post of author when viewer is the author and only
// publicly visible ones otherwise.
func (s *PostService) ListByAuthor(author, viewer *models.User, rawPage string) (*PostPage, error) {
	now := s.now()
	own := IsAuthor(viewer, author.ID)
	return s.paginate(rawPage, func() *gorm.DB {
		query := s.db.Model(&models.Post{})
		if !own {
			query = query.Scopes(PubliclyVisible(now))
		}
		return query.Where("posts.author_id = ?", author.ID)
	})
}

func (s *PostService) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Category").Preload("Location").First(&post, id).Error
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

// GetVisiblePost returns ErrPostNotFound both for missing posts and for posts
// viewer may not see.
func (s *PostService) GetVisiblePost(id uint, viewer *models.User) (*models.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if !CanView(post, viewer, s.now()) {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, author *models.User, form *models.PostForm, image *multipart.FileHeader) (*models.Post, error) {
	post := &models.Post{AuthorID: author.ID}
	if err := s.applyForm(post, form); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := storage.SaveImage(ctx, s.storage, image)
		if err != nil {
			return nil, err
		}
		post.Image = url
	}

	if err := s.db.Omit(clause.Associations).Create(post).Error; err != nil {
		s.removeImage(ctx, post.Image)
		return nil, fmt.Errorf("create post: %w", err)
	}

	post.Author = *author
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, post *models.Post, form *models.PostForm, image *multipart.FileHeader) error {
	if err := s.applyForm(post, form); err != nil {
		return err
	}

	oldImage := post.Image
	switch {
	case image != nil:
		url, err := storage.SaveImage(ctx, s.storage, image)
		if err != nil {
			return err
		}
		post.Image = url
	case form.ClearImage:
		post.Image = ""
	}

	if err := s.db.Omit(clause.Associations).Save(post).Error; err != nil {
		if post.Image != oldImage {
			s.removeImage(ctx, post.Image)
			post.Image = oldImage
		}
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}

	if oldImage != post.Image {
		s.removeImage(ctx, oldImage)
	}
	return nil
}

// DeletePost removes the post; the database cascades to its comments.
func (s *PostService) DeletePost(ctx context.Context, post *models.Post) error {
	if err := s.db.Delete(&models.Post{}, post.ID).Error; err != nil {
		return fmt.Errorf("delete post %d: %w", post.ID, err)
	}
	s.removeImage(ctx, post.Image)
	return nil
}

// applyForm copies form onto post after checking the category and location
// are published choices.
func (s *PostService) applyForm(post *models.Post, form *models.PostForm) error {
	var category models.Category
	err := s.db.Where("id = ? AND is_published = ?", form.CategoryID, true).First(&category).Error
	if err != nil {
		return notFound(err, ErrInvalidCategory)
	}

	var location *models.Location
	if form.LocationID != 0 {
		location = &models.Location{}
		err := s.db.Where("id = ? AND is_published = ?", form.LocationID, true).First(location).Error
		if err != nil {
			return notFound(err, ErrInvalidLocation)
		}
	}

	post.Title = form.Title
	post.Text = form.Text
	post.PubDate = form.PubDate.UTC()
	post.IsPublished = form.IsPublished
	post.Category = &category
	post.CategoryID = &category.ID
	post.Location = location
	post.LocationID = nil
	if location != nil {
		post.LocationID = &location.ID
	}
	return nil
}

func (s *PostService) paginate(rawPage string, query func() *gorm.DB) (*PostPage, error) {
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	page, err := utils.ParsePage(rawPage, total, utils.PageSize)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	err = query().
		Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count").
		Preload("Author").Preload("Category").Preload("Location").
		Order("posts.pub_date DESC").Order("posts.id DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{Posts: posts, Page: page}, nil
}

func (s *PostService) removeImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.storage.Delete(ctx, url); err != nil {
		slog.Warn("failed to remove post image", "url", url, "error", err)
	}
}
