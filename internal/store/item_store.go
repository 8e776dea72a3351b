package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/foodventory/internal/domain"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = "id, title, content, quantity, quantity_unit, owner_id, pantry_id, created_at, updated_at"

func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	item := &domain.Item{}
	err := row.Scan(&item.ID, &item.Title, &item.Content, &item.Quantity, &item.QuantityUnit,
		&item.OwnerID, &item.PantryID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemStore) Create(ctx context.Context, ownerID string, pantryID *string, title, content string, quantity float64, quantityUnit string) (*domain.Item, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, title, content, quantity, quantity_unit, owner_id, pantry_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, title, content, quantity, quantityUnit, ownerID, pantryID)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ItemStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM items WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// GetByIDAndOwner resolves an item only within the owner's scope. Absence and
// someone else's item both come back as nil.
func (s *ItemStore) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM items WHERE id = ? AND owner_id = ?
	`, id, ownerID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

func (s *ItemStore) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM items WHERE owner_id = ? ORDER BY title ASC
	`, ownerID)
}

func (s *ItemStore) ListByPantryID(ctx context.Context, pantryID string) ([]*domain.Item, error) {
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM items WHERE pantry_id = ? ORDER BY title ASC
	`, pantryID)
}

// SearchByOwnerID matches the owner's items whose title contains the query,
// case-insensitively.
func (s *ItemStore) SearchByOwnerID(ctx context.Context, ownerID, query string) ([]*domain.Item, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM items WHERE owner_id = ? AND LOWER(title) LIKE ? ORDER BY title ASC
	`, ownerID, pattern)
}

func (s *ItemStore) list(ctx context.Context, query string, args ...any) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

func (s *ItemStore) Update(ctx context.Context, id, title, content string, quantity float64, quantityUnit string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE items SET title = ?, content = ?, quantity = ?, quantity_unit = ?, updated_at = datetime('now')
		WHERE id = ?
	`, title, content, quantity, quantityUnit, id)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("item not found")
	}

	return nil
}

func (s *ItemStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM items WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("item not found")
	}

	return nil
}
