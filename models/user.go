package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:254;index"`
	Password  string    `json:"-" gorm:"not null"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	IsStaff   bool      `json:"is_staff"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName falls back to the username when no names are set.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

type CreateUserRequest struct {
	Email     string `json:"email" form:"email" binding:"omitempty,email"`
	Username  string `json:"username" form:"username" binding:"required,min=3,max=150,username"`
	Password  string `json:"password" form:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
}

// RegistrationForm is the HTML sign-up form; the password is typed twice.
type RegistrationForm struct {
	Username        string `form:"username" binding:"required,min=3,max=150,username"`
	Email           string `form:"email" binding:"omitempty,email"`
	Password        string `form:"password1" binding:"required,min=6"`
	PasswordConfirm string `form:"password2" binding:"required,eqfield=Password"`
}

func (f *RegistrationForm) CreateUserRequest() *CreateUserRequest {
	return &CreateUserRequest{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	}
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ProfileForm struct {
	Username  string `form:"username" binding:"required,min=3,max=150,username"`
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
	Email     string `form:"email" binding:"omitempty,email"`
}

func ProfileFormFromUser(u *User) ProfileForm {
	return ProfileForm{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
