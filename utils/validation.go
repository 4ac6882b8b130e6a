package utils

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	registerOnce    sync.Once
)

// RegisterValidators adds the custom binding tags used by the request types.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
				return IsSlug(fl.Field().String())
			})
			_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
				return IsUsername(fl.Field().String())
			})
		}
	})
}

// IsSlug reports whether s contains only latin letters, digits, hyphens and underscores.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// IsUsername reports whether s is made of letters, digits and the characters . @ + - _.
func IsUsername(s string) bool {
	return usernamePattern.MatchString(s)
}
