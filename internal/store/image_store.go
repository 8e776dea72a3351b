package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vbonduro/foodventory/internal/domain"
)

type ImageStore struct {
	db *sql.DB
}

func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

func (s *ImageStore) Create(ctx context.Context, storageKey, mimeType string) (*domain.Image, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO images (id, storage_key, mime_type) VALUES (?, ?, ?)
	`, id, storageKey, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ImageStore) GetByID(ctx context.Context, id string) (*domain.Image, error) {
	image := &domain.Image{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, storage_key, mime_type, created_at FROM images WHERE id = ?
	`, id).Scan(&image.ID, &image.StorageKey, &image.MimeType, &image.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return image, nil
}
