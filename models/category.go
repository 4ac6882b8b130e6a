package models

import "time"

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:256;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Slug        string    `json:"slug" gorm:"size:64;uniqueIndex;not null"`
	IsPublished bool      `json:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

type Location struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:256;not null"`
	IsPublished bool      `json:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryRequest struct {
	Title       string `json:"title" binding:"required,max=256"`
	Description string `json:"description" binding:"required"`
	Slug        string `json:"slug" binding:"required,max=64,slug"`
	IsPublished *bool  `json:"is_published"`
}

type LocationRequest struct {
	Name        string `json:"name" binding:"required,max=256"`
	IsPublished *bool  `json:"is_published"`
}
