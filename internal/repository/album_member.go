package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mementoapp/memento/internal/model"
)

var (
	ErrMemberNotFound  = errors.New("album member not found")
	ErrDuplicateMember = errors.New("user is already a member of this album")
)

type AlbumMemberRepository interface {
	Add(ctx context.Context, member *model.AlbumMember) error
	Remove(ctx context.Context, albumID, userID string) error
	IsMember(ctx context.Context, albumID, userID string) (bool, error)
	// Members returns the explicit members of an album, oldest first.
	Members(ctx context.Context, albumID string) ([]*model.AlbumMember, error)
}

type albumMemberRepository struct {
	db *sqlx.DB
}

func NewAlbumMemberRepository(db *sqlx.DB) AlbumMemberRepository {
	return &albumMemberRepository{db: db}
}

func (r *albumMemberRepository) Add(ctx context.Context, member *model.AlbumMember) error {
	query := `INSERT INTO album_members (id, album_id, user_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, member.ID, member.AlbumID, member.UserID, member.CreatedAt)
	if err != nil {
		// Concurrent adds of the same pair are settled by the unique constraint
		if isUniqueViolation(err) {
			return ErrDuplicateMember
		}
		return err
	}

	return nil
}

func (r *albumMemberRepository) Remove(ctx context.Context, albumID, userID string) error {
	query := `DELETE FROM album_members WHERE album_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, albumID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (r *albumMemberRepository) IsMember(ctx context.Context, albumID, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM album_members WHERE album_id = $1 AND user_id = $2`

	err := r.db.QueryRowContext(ctx, query, albumID, userID).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *albumMemberRepository) Members(ctx context.Context, albumID string) ([]*model.AlbumMember, error) {
	members := []*model.AlbumMember{}
	query := `SELECT * FROM album_members WHERE album_id = $1 ORDER BY created_at ASC, id ASC`

	err := r.db.SelectContext(ctx, &members, query, albumID)
	if err != nil {
		return nil, err
	}

	return members, nil
}
