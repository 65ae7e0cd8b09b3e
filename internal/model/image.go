package model

import (
	"time"
)

type Image struct {
	ID        string    `db:"id" json:"id"`
	AlbumID   string    `db:"album_id" json:"album_id"`
	UserID    string    `db:"user_id" json:"user_id"` // Creator, immutable
	Caption   *string   `db:"caption" json:"caption"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Latitude  *float64  `db:"latitude" json:"latitude"`
	Longitude *float64  `db:"longitude" json:"longitude"`
	DateAdded time.Time `db:"date_added" json:"date_added"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ImagePatch lists the mutable image fields. Nil fields are left unchanged.
type ImagePatch struct {
	Caption   *string
	ImageURL  *string
	Latitude  *float64
	Longitude *float64
}

func (p ImagePatch) IsEmpty() bool {
	return p.Caption == nil && p.ImageURL == nil && p.Latitude == nil && p.Longitude == nil
}
