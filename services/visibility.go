package services

import (
	"time"

	"blogicum/models"

	"gorm.io/gorm"
)

// IsPubliclyVisible reports whether any visitor may read p at now: the post is
// published, its pub_date has passed and its category is published. A post
// whose category was deleted is not publicly visible.
func IsPubliclyVisible(p *models.Post, now time.Time) bool {
	return p.IsPublished &&
		!p.PubDate.After(now) &&
		p.Category != nil && p.Category.IsPublished
}

// IsAuthor reports whether viewer is the user identified by authorID.
func IsAuthor(viewer *models.User, authorID uint) bool {
	return viewer != nil && viewer.ID == authorID
}

// CanView applies the author bypass on top of IsPubliclyVisible.
func CanView(p *models.Post, viewer *models.User, now time.Time) bool {
	return IsPubliclyVisible(p, now) || IsAuthor(viewer, p.AuthorID)
}

// PubliclyVisible is the SQL form of IsPubliclyVisible.
func PubliclyVisible(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ? AND posts.pub_date <= ? AND categories.is_published = ?", true, now, true)
	}
}
