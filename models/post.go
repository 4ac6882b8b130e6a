package models

import (
	"time"
)

// PubDateLayout is the format of the pub_date form field (HTML datetime-local).
const PubDateLayout = "2006-01-02T15:04"

type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:256;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	Image       string    `json:"image,omitempty"`
	PubDate     time.Time `json:"pub_date" gorm:"not null;index"`
	AuthorID    uint      `json:"author_id" gorm:"not null;index"`
	Author      User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	LocationID  *uint     `json:"location_id"`
	Location    *Location `json:"location,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `json:"category,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	IsPublished bool      `json:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	CommentCount int64 `json:"comment_count" gorm:"->;-:migration"`
}

// PostForm backs the create/edit post page. Location 0 means "no location".
type PostForm struct {
	Title       string    `form:"title" binding:"required,max=256"`
	Text        string    `form:"text" binding:"required"`
	PubDate     time.Time `form:"pub_date" time_format:"2006-01-02T15:04" time_utc:"1" binding:"required"`
	LocationID  uint      `form:"location"`
	CategoryID  uint      `form:"category" binding:"required"`
	IsPublished bool      `form:"is_published"`
	ClearImage  bool      `form:"image-clear"`
}

func PostFormFromPost(p *Post) PostForm {
	form := PostForm{
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate,
		IsPublished: p.IsPublished,
	}
	if p.LocationID != nil {
		form.LocationID = *p.LocationID
	}
	if p.CategoryID != nil {
		form.CategoryID = *p.CategoryID
	}
	return form
}
