package services

import (
	"fmt"

	"blogicum/models"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) ListPublished() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("is_published = ?", true).Order("title").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) ListAll() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("title").Find(&categories).Error
	return categories, err
}

// GetPublishedBySlug hides unpublished categories behind ErrCategoryNotFound.
func (s *CategoryService) GetPublishedBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&category).Error
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *models.CategoryRequest) (*models.Category, error) {
	if err := s.checkSlug(req.Slug, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(id uint, req *models.CategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	if err := s.checkSlug(req.Slug, id); err != nil {
		return nil, err
	}

	category.Title = req.Title
	category.Description = req.Description
	category.Slug = req.Slug
	if req.IsPublished != nil {
		category.IsPublished = *req.IsPublished
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	return &category, nil
}

// DeleteCategory removes the category; its posts keep existing with no category.
func (s *CategoryService) DeleteCategory(id uint) error {
	result := s.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *CategoryService) checkSlug(slug string, exceptID uint) error {
	var count int64
	err := s.db.Model(&models.Category{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}
