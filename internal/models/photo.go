package models

import "time"

// Photo jest rekordem katalogu zdjęć. Para (OwnerID, ImageURL) jest unikalna:
// ponowny upload tego samego pliku aktualizuje istniejący wiersz.
type Photo struct {
	ID             int64      `json:"id"`
	OwnerID        int64      `json:"owner_id"`
	AlbumID        *int64     `json:"album_id,omitempty"`
	ImageURL       string     `json:"image_url"`
	ImageURLThumb  *string    `json:"image_url_thumb,omitempty"`
	ImageURLMedium *string    `json:"image_url_medium,omitempty"`
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Camera         *string    `json:"camera,omitempty"`
	Lens           *string    `json:"lens,omitempty"`
	Settings       *string    `json:"settings,omitempty"`
	TakenAt        *time.Time `json:"taken_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
