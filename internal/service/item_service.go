package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/foodventory/internal/domain"
	"github.com/vbonduro/foodventory/internal/form"
)

// itemRepository is the subset of store.ItemStore that ItemService requires.
type itemRepository interface {
	Create(ctx context.Context, ownerID string, pantryID *string, title, content string, quantity float64, quantityUnit string) (*domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Item, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Item, error)
	ListByPantryID(ctx context.Context, pantryID string) ([]*domain.Item, error)
	SearchByOwnerID(ctx context.Context, ownerID, query string) ([]*domain.Item, error)
	Update(ctx context.Context, id, title, content string, quantity float64, quantityUnit string) error
	Delete(ctx context.Context, id string) error
}

// userRepository is the subset of store.UserStore that the services require.
type userRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type ItemService struct {
	items  itemRepository
	users  userRepository
	logger *slog.Logger
}

func NewItemService(items itemRepository, users userRepository, logger *slog.Logger) *ItemService {
	return &ItemService{items: items, users: users, logger: logger}
}

// SubmitItem runs the item upsert: an empty form id creates a new item owned
// by userID, a non-empty id updates the caller's existing item. The form must
// already have passed validation; no store write happens on a failed lookup.
// Returns the redirect path for the written record.
func (s *ItemService) SubmitItem(ctx context.Context, userID string, f form.ItemEditor) (string, error) {
	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if owner == nil {
		return "", ErrNotFound
	}

	// Quantity fields are pinned to their creation defaults on both paths: the
	// editor collects and validates them, but they are not persisted.
	// TODO: persist the submitted quantity/quantityUnit once product confirms
	// that is the intended behavior.
	quantity := float64(domain.DefaultQuantity)
	quantityUnit := domain.DefaultQuantityUnit

	if f.ID != "" {
		existing, err := s.items.GetByIDAndOwner(ctx, f.ID, userID)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", ErrNotFound
		}

		if err := s.items.Update(ctx, f.ID, f.Title, f.Content, quantity, quantityUnit); err != nil {
			return "", err
		}
		s.logger.Info("item updated", "item_id", f.ID, "owner_id", userID)
		return itemPath(owner.Username, f.ID), nil
	}

	item, err := s.items.Create(ctx, userID, nil, f.Title, f.Content, quantity, quantityUnit)
	if err != nil {
		return "", err
	}
	s.logger.Info("item created", "item_id", item.ID, "owner_id", userID)
	return itemPath(owner.Username, item.ID), nil
}

func itemPath(username, itemID string) string {
	return fmt.Sprintf("/users/%s/items/%s", username, itemID)
}

// GetItem returns an item by id, or nil when it does not exist.
func (s *ItemService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.items.GetByID(ctx, itemID)
}

// OwnerItems returns a user and their items, filtered by query when it is
// non-empty. The user is nil when the username is unknown.
func (s *ItemService) OwnerItems(ctx context.Context, username, query string) (*domain.User, []*domain.Item, error) {
	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, nil
	}

	var items []*domain.Item
	if query != "" {
		items, err = s.items.SearchByOwnerID(ctx, owner.ID, query)
	} else {
		items, err = s.items.ListByOwnerID(ctx, owner.ID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list items for user %s: %w", owner.ID, err)
	}
	return owner, items, nil
}

// DeleteItem removes the caller's item. Ownership is enforced through the
// same scoped lookup as update.
func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID string) error {
	existing, err := s.items.GetByIDAndOwner(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.logger.Info("item deleted", "item_id", itemID, "owner_id", userID)
	return nil
}
