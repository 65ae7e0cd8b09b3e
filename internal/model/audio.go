package model

import (
	"time"
)

// Audio is an optional voice note attached to a single image.
type Audio struct {
	ID        string    `db:"id" json:"id"`
	ImageID   string    `db:"image_id" json:"image_id"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
