package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"blogicum/config"

	"github.com/google/uuid"
)

// ImageFolder is the folder post images are stored under.
const ImageFolder = "posts_images"

var ErrInvalidImage = errors.New("unsupported image type")

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".webp": true,
}

// Storage keeps uploaded files and hands back a public URL for each.
type Storage interface {
	Save(ctx context.Context, body io.Reader, key, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.MediaBackend {
	case "s3":
		return NewS3(ctx, cfg.AWSRegion, cfg.AWSBucket, cfg.AWSAccessKey, cfg.AWSSecretKey)
	case "local", "":
		return NewLocal(cfg.MediaDir, cfg.MediaURL), nil
	}
	return nil, fmt.Errorf("unsupported media backend %q", cfg.MediaBackend)
}

// SaveImage validates an uploaded post image and stores it under a random name.
func SaveImage(ctx context.Context, s Storage, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		return "", ErrInvalidImage
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("%s/post_%s%s", ImageFolder, uuid.NewString(), ext)
	return s.Save(ctx, file, key, header.Header.Get("Content-Type"))
}
