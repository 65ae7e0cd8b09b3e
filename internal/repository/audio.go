package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mementoapp/memento/internal/model"
)

var (
	ErrAudioNotFound  = errors.New("audio not found")
	ErrDuplicateAudio = errors.New("audio already exists for image")
)

type AudioRepository interface {
	Create(ctx context.Context, audio *model.Audio) error
	ByID(ctx context.Context, id string) (*model.Audio, error)
	ByImageID(ctx context.Context, imageID string) (*model.Audio, error)
	Update(ctx context.Context, audio *model.Audio) error
	Delete(ctx context.Context, id string) error
}

type audioRepository struct {
	db *sqlx.DB
}

func NewAudioRepository(db *sqlx.DB) AudioRepository {
	return &audioRepository{db: db}
}

func (r *audioRepository) Create(ctx context.Context, audio *model.Audio) error {
	query := `INSERT INTO audio (id, image_id, url, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, audio.ID, audio.ImageID, audio.URL, audio.CreatedAt, audio.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAudio
		}
		return err
	}

	return nil
}

func (r *audioRepository) ByID(ctx context.Context, id string) (*model.Audio, error) {
	audio := &model.Audio{}
	query := `SELECT * FROM audio WHERE id = $1`

	err := r.db.GetContext(ctx, audio, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAudioNotFound
	}
	if err != nil {
		return nil, err
	}

	return audio, nil
}

func (r *audioRepository) ByImageID(ctx context.Context, imageID string) (*model.Audio, error) {
	audio := &model.Audio{}
	query := `SELECT * FROM audio WHERE image_id = $1`

	err := r.db.GetContext(ctx, audio, query, imageID)
	if err == sql.ErrNoRows {
		return nil, ErrAudioNotFound
	}
	if err != nil {
		return nil, err
	}

	return audio, nil
}

func (r *audioRepository) Update(ctx context.Context, audio *model.Audio) error {
	query := `UPDATE audio SET url = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, audio.URL, audio.UpdatedAt, audio.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAudioNotFound
	}

	return nil
}

func (r *audioRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM audio WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAudioNotFound
	}

	return nil
}
