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
	ErrAlbumNotFound = errors.New("album not found")
)

type AlbumRepository interface {
	Create(ctx context.Context, album *model.Album) error
	ByID(ctx context.Context, id string) (*model.Album, error)
	// ForUser returns albums the user owns or is a member of, newest first.
	ForUser(ctx context.Context, userID string) ([]*model.Album, error)
	Update(ctx context.Context, album *model.Album) error
	Delete(ctx context.Context, id string) error
}

type albumRepository struct {
	db *sqlx.DB
}

func NewAlbumRepository(db *sqlx.DB) AlbumRepository {
	return &albumRepository{db: db}
}

func (r *albumRepository) Create(ctx context.Context, album *model.Album) error {
	query := `INSERT INTO albums (id, name, owner_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		album.ID,
		album.Name,
		album.OwnerID,
		album.CreatedAt,
		album.UpdatedAt,
	)

	return err
}

func (r *albumRepository) ByID(ctx context.Context, id string) (*model.Album, error) {
	album := &model.Album{}
	query := `SELECT * FROM albums WHERE id = $1`

	err := r.db.GetContext(ctx, album, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAlbumNotFound
	}
	if err != nil {
		return nil, err
	}

	return album, nil
}

func (r *albumRepository) ForUser(ctx context.Context, userID string) ([]*model.Album, error) {
	albums := []*model.Album{}
	query := `SELECT * FROM albums
	          WHERE owner_id = $1
	             OR id IN (SELECT album_id FROM album_members WHERE user_id = $1)
	          ORDER BY created_at DESC, id DESC`

	err := r.db.SelectContext(ctx, &albums, query, userID)
	if err != nil {
		return nil, err
	}

	return albums, nil
}

// Update persists the album name. owner_id is never written.
func (r *albumRepository) Update(ctx context.Context, album *model.Album) error {
	query := `UPDATE albums SET name = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, album.Name, album.UpdatedAt, album.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAlbumNotFound
	}

	return nil
}

// Delete removes the album together with its members, images and their
// audio in a single transaction.
func (r *albumRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	cascade := []string{
		`DELETE FROM audio WHERE image_id IN (SELECT id FROM images WHERE album_id = $1)`,
		`DELETE FROM images WHERE album_id = $1`,
		`DELETE FROM album_members WHERE album_id = $1`,
	}
	for _, query := range cascade {
		_, err = tx.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete album dependents: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAlbumNotFound
	}

	return tx.Commit()
}
