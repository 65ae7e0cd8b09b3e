package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mementoapp/memento/internal/model"
)

var (
	ErrImageNotFound = errors.New("image not found")
)

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	ByID(ctx context.Context, id string) (*model.Image, error)
	// ForAlbum returns the album's images, most recently added first.
	ForAlbum(ctx context.Context, albumID string) ([]*model.Image, error)
	Update(ctx context.Context, image *model.Image) error
	Delete(ctx context.Context, id string) error
}

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *model.Image) error {
	query := `INSERT INTO images (id, album_id, user_id, caption, image_url, latitude, longitude, date_added, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		image.ID,
		image.AlbumID,
		image.UserID,
		image.Caption,
		image.ImageURL,
		image.Latitude,
		image.Longitude,
		image.DateAdded,
		image.CreatedAt,
		image.UpdatedAt,
	)

	return err
}

func (r *imageRepository) ByID(ctx context.Context, id string) (*model.Image, error) {
	image := &model.Image{}
	query := `SELECT * FROM images WHERE id = $1`

	err := r.db.GetContext(ctx, image, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}

	return image, nil
}

func (r *imageRepository) ForAlbum(ctx context.Context, albumID string) ([]*model.Image, error) {
	images := []*model.Image{}
	query := `SELECT * FROM images WHERE album_id = $1 ORDER BY date_added DESC, id DESC`

	err := r.db.SelectContext(ctx, &images, query, albumID)
	if err != nil {
		return nil, err
	}

	return images, nil
}

// Update writes the mutable columns. album_id and user_id are never written.
func (r *imageRepository) Update(ctx context.Context, image *model.Image) error {
	query := `UPDATE images
	          SET caption = $1, image_url = $2, latitude = $3, longitude = $4, updated_at = $5
	          WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		image.Caption,
		image.ImageURL,
		image.Latitude,
		image.Longitude,
		image.UpdatedAt,
		image.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrImageNotFound
	}

	return nil
}

// Delete removes the image and its audio in a single transaction.
func (r *imageRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `DELETE FROM audio WHERE image_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image audio: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrImageNotFound
	}

	return tx.Commit()
}
