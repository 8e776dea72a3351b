package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/foodventory/internal/domain"
	"github.com/vbonduro/foodventory/internal/form"
	"github.com/vbonduro/foodventory/internal/photostore"
	"github.com/vbonduro/foodventory/internal/vision"
)

// pantryRepository is the subset of store.PantryStore that PantryService requires.
type pantryRepository interface {
	Create(ctx context.Context, ownerID, title string) (*domain.Pantry, error)
	GetByID(ctx context.Context, id string) (*domain.Pantry, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Pantry, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Pantry, error)
	Update(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
}

// imageRepository is the subset of store.ImageStore that the services require.
type imageRepository interface {
	Create(ctx context.Context, storageKey, mimeType string) (*domain.Image, error)
	GetByID(ctx context.Context, id string) (*domain.Image, error)
}

type PantryService struct {
	pantries pantryRepository
	items    itemRepository
	users    userRepository
	images   imageRepository
	analyzer vision.Analyzer
	photoStg photostore.PhotoStore
	logger   *slog.Logger
}

func NewPantryService(
	pantries pantryRepository,
	items itemRepository,
	users userRepository,
	images imageRepository,
	analyzer vision.Analyzer,
	photoStg photostore.PhotoStore,
	logger *slog.Logger,
) *PantryService {
	return &PantryService{
		pantries: pantries,
		items:    items,
		users:    users,
		images:   images,
		analyzer: analyzer,
		photoStg: photoStg,
		logger:   logger,
	}
}

// SubmitPantry runs the pantry upsert with the same contract as SubmitItem:
// empty id creates, non-empty id updates within the caller's ownership scope.
func (s *PantryService) SubmitPantry(ctx context.Context, userID string, f form.PantryEditor) (string, error) {
	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if owner == nil {
		return "", ErrNotFound
	}

	if f.ID != "" {
		existing, err := s.pantries.GetByIDAndOwner(ctx, f.ID, userID)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", ErrNotFound
		}

		if err := s.pantries.Update(ctx, f.ID, f.Title); err != nil {
			return "", err
		}
		s.logger.Info("pantry updated", "pantry_id", f.ID, "owner_id", userID)
		return pantryPath(owner.Username, f.ID), nil
	}

	pantry, err := s.pantries.Create(ctx, userID, f.Title)
	if err != nil {
		return "", err
	}
	s.logger.Info("pantry created", "pantry_id", pantry.ID, "owner_id", userID)
	return pantryPath(owner.Username, pantry.ID), nil
}

func pantryPath(username, pantryID string) string {
	return fmt.Sprintf("/users/%s/pantries/%s", username, pantryID)
}

// GetPantry returns a pantry and its items. The pantry is nil when the id is
// unknown.
func (s *PantryService) GetPantry(ctx context.Context, pantryID string) (*domain.Pantry, []*domain.Item, error) {
	pantry, err := s.pantries.GetByID(ctx, pantryID)
	if err != nil {
		return nil, nil, err
	}
	if pantry == nil {
		return nil, nil, nil
	}

	items, err := s.items.ListByPantryID(ctx, pantryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list items for pantry %s: %w", pantryID, err)
	}
	return pantry, items, nil
}

// PantrySummary bundles a pantry with its items for list rendering.
type PantrySummary struct {
	*domain.Pantry
	Items []*domain.Item
}

// OwnerPantries returns a user and their pantries with items. The user is nil
// when the username is unknown.
func (s *PantryService) OwnerPantries(ctx context.Context, username string) (*domain.User, []*PantrySummary, error) {
	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, nil
	}

	pantries, err := s.pantries.ListByOwnerID(ctx, owner.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pantries for user %s: %w", owner.ID, err)
	}

	summaries := make([]*PantrySummary, 0, len(pantries))
	for _, pantry := range pantries {
		items, err := s.items.ListByPantryID(ctx, pantry.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list items for pantry %s: %w", pantry.ID, err)
		}
		summaries = append(summaries, &PantrySummary{Pantry: pantry, Items: items})
	}
	return owner, summaries, nil
}

// ScanPhoto stores a photo of the caller's pantry and returns item
// suggestions parsed from the vision model. Ownership is enforced through the
// same scoped lookup as update.
func (s *PantryService) ScanPhoto(ctx context.Context, userID, pantryID string, imageData []byte, mimeType string) ([]vision.Suggestion, error) {
	if s.analyzer == nil {
		return nil, ErrScanUnavailable
	}

	pantry, err := s.pantries.GetByIDAndOwner(ctx, pantryID, userID)
	if err != nil {
		return nil, err
	}
	if pantry == nil {
		return nil, ErrNotFound
	}

	storageKey, err := s.photoStg.Save(ctx, "scan", mimeType, bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to save scan photo: %w", err)
	}
	if _, err := s.images.Create(ctx, storageKey, mimeType); err != nil {
		return nil, fmt.Errorf("failed to record scan photo: %w", err)
	}

	result, err := s.analyzer.Analyze(ctx, bytes.NewReader(imageData), mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze photo: %w", err)
	}

	s.logger.Info("pantry scanned",
		"pantry_id", pantryID,
		"owner_id", userID,
		"suggestions", len(result.Suggestions),
	)
	return result.Suggestions, nil
}
