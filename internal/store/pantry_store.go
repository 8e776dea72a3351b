package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vbonduro/foodventory/internal/domain"
)

type PantryStore struct {
	db *sql.DB
}

func NewPantryStore(db *sql.DB) *PantryStore {
	return &PantryStore{db: db}
}

func (s *PantryStore) Create(ctx context.Context, ownerID, title string) (*domain.Pantry, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pantries (id, title, owner_id) VALUES (?, ?, ?)
	`, id, title, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pantry: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *PantryStore) GetByID(ctx context.Context, id string) (*domain.Pantry, error) {
	pantry := &domain.Pantry{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, owner_id, created_at, updated_at FROM pantries WHERE id = ?
	`, id).Scan(&pantry.ID, &pantry.Title, &pantry.OwnerID, &pantry.CreatedAt, &pantry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry: %w", err)
	}

	return pantry, nil
}

// GetByIDAndOwner resolves a pantry only within the owner's scope. Absence and
// someone else's pantry both come back as nil.
func (s *PantryStore) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Pantry, error) {
	pantry := &domain.Pantry{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, owner_id, created_at, updated_at FROM pantries WHERE id = ? AND owner_id = ?
	`, id, ownerID).Scan(&pantry.ID, &pantry.Title, &pantry.OwnerID, &pantry.CreatedAt, &pantry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry: %w", err)
	}

	return pantry, nil
}

func (s *PantryStore) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Pantry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, owner_id, created_at, updated_at FROM pantries
		WHERE owner_id = ? ORDER BY title ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantries: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var pantries []*domain.Pantry
	for rows.Next() {
		pantry := &domain.Pantry{}
		if err := rows.Scan(&pantry.ID, &pantry.Title, &pantry.OwnerID, &pantry.CreatedAt, &pantry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pantry: %w", err)
		}
		pantries = append(pantries, pantry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pantries: %w", err)
	}

	return pantries, nil
}

func (s *PantryStore) Update(ctx context.Context, id, title string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE pantries SET title = ?, updated_at = datetime('now') WHERE id = ?
	`, title, id)
	if err != nil {
		return fmt.Errorf("failed to update pantry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("pantry not found")
	}

	return nil
}

func (s *PantryStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM pantries WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pantry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("pantry not found")
	}

	return nil
}
