package models

import "time"

type Download struct {
	ID           int64     `json:"id"`
	PostcardID   *int64    `json:"postcard_id,omitempty"`
	TemplateType *string   `json:"template_type,omitempty"`
	UserAgent    *string   `json:"user_agent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
