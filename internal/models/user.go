package models

import "time"

type User struct {
	ID                   int64     `json:"id" db:"id"`
	Username             string    `json:"username" db:"username"`
	Email                *string   `json:"email,omitempty" db:"email"`
	PasswordHash         string    `json:"-" db:"password_hash"`
	DisplayName          *string   `json:"display_name,omitempty" db:"display_name"`
	Bio                  *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL            *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Website              *string   `json:"website,omitempty" db:"website"`
	Location             *string   `json:"location,omitempty" db:"location"`
	FavoriteCamera       *string   `json:"favorite_camera,omitempty" db:"favorite_camera"`
	FavoriteLens         *string   `json:"favorite_lens,omitempty" db:"favorite_lens"`
	FavoritePhotographer *string   `json:"favorite_photographer,omitempty" db:"favorite_photographer"`
	IsActive             bool      `json:"is_active" db:"is_active"`
	Tier                 string    `json:"tier" db:"user_tier"`
	StorageUsedBytes     int64     `json:"storage_used_bytes" db:"storage_used_bytes"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}
