package services

import (
	"errors"
	"fmt"

	"blogicum/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	taken, err := s.usernameTaken(req.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}

	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate returns the active user matching the credentials.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

// UpdateProfile applies form to user; the username must stay unique.
func (s *UserService) UpdateProfile(user *models.User, form *models.ProfileForm) error {
	taken, err := s.usernameTaken(form.Username, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	user.Username = form.Username
	user.FirstName = form.FirstName
	user.LastName = form.LastName
	user.Email = form.Email

	if err := s.db.Save(user).Error; err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return nil
}

// DeleteUser removes the user; the database cascades to their posts and comments.
func (s *UserService) DeleteUser(id uint) error {
	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) usernameTaken(username string, exceptID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	return count > 0, err
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
