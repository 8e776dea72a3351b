package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vbonduro/foodventory/internal/domain"
	"github.com/vbonduro/foodventory/internal/photostore"
)

// avatarUsers extends userRepository with the write the avatar flow needs.
type avatarUsers interface {
	userRepository
	SetImageID(ctx context.Context, id, imageID string) error
}

type UserService struct {
	users    avatarUsers
	pantries pantryRepository
	images   imageRepository
	photoStg photostore.PhotoStore
	logger   *slog.Logger
}

func NewUserService(
	users avatarUsers,
	pantries pantryRepository,
	images imageRepository,
	photoStg photostore.PhotoStore,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		pantries: pantries,
		images:   images,
		photoStg: photoStg,
		logger:   logger,
	}
}

// ByID returns a user by id, or nil when the id is unknown.
func (s *UserService) ByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Profile returns a user and their pantries. The user is nil when the
// username is unknown.
func (s *UserService) Profile(ctx context.Context, username string) (*domain.User, []*domain.Pantry, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, nil
	}

	pantries, err := s.pantries.ListByOwnerID(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pantries for user %s: %w", user.ID, err)
	}
	return user, pantries, nil
}

// SetPhoto stores a new avatar for the user and points the profile at it.
func (s *UserService) SetPhoto(ctx context.Context, userID string, imageData []byte, mimeType string) (*domain.Image, error) {
	storageKey, err := s.photoStg.Save(ctx, "avatar", mimeType, bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	image, err := s.images.Create(ctx, storageKey, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to record avatar: %w", err)
	}

	if err := s.users.SetImageID(ctx, userID, image.ID); err != nil {
		return nil, err
	}

	s.logger.Info("avatar updated", "user_id", userID, "image_id", image.ID)
	return image, nil
}

// Image opens a stored image by id for serving.
func (s *UserService) Image(ctx context.Context, imageID string) (io.ReadCloser, string, error) {
	image, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, "", err
	}
	if image == nil {
		return nil, "", ErrNotFound
	}
	return s.photoStg.Get(ctx, image.StorageKey)
}
