package services

import (
	"fmt"

	"blogicum/models"

	"gorm.io/gorm"
)

type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

func (s *LocationService) ListPublished() ([]models.Location, error) {
	var locations []models.Location
	err := s.db.Where("is_published = ?", true).Order("name").Find(&locations).Error
	return locations, err
}

func (s *LocationService) ListAll() ([]models.Location, error) {
	var locations []models.Location
	err := s.db.Order("name").Find(&locations).Error
	return locations, err
}

func (s *LocationService) CreateLocation(req *models.LocationRequest) (*models.Location, error) {
	location := &models.Location{
		Name:        req.Name,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
	}
	if err := s.db.Create(location).Error; err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return location, nil
}

func (s *LocationService) UpdateLocation(id uint, req *models.LocationRequest) (*models.Location, error) {
	var location models.Location
	if err := s.db.First(&location, id).Error; err != nil {
		return nil, notFound(err, ErrLocationNotFound)
	}

	location.Name = req.Name
	if req.IsPublished != nil {
		location.IsPublished = *req.IsPublished
	}

	if err := s.db.Save(&location).Error; err != nil {
		return nil, fmt.Errorf("update location %d: %w", id, err)
	}
	return &location, nil
}

// DeleteLocation removes the location; posts referencing it get a NULL location.
func (s *LocationService) DeleteLocation(id uint) error {
	result := s.db.Delete(&models.Location{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}
