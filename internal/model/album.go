package model

import (
	"time"
)

// Album is owned by exactly one user. The owner is never stored as an
// AlbumMember row; ownership alone grants access.
type Album struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type AlbumMember struct {
	ID        string    `db:"id" json:"id"`
	AlbumID   string    `db:"album_id" json:"album_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
