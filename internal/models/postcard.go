package models

import "time"

type Postcard struct {
	ID               int64     `json:"id"`
	ImagePath        string    `json:"image_path"`
	TextContent      *string   `json:"text_content,omitempty"`
	OriginalFilename *string   `json:"original_filename,omitempty"`
	FileSize         *int64    `json:"file_size,omitempty"`
	TemplateType     *string   `json:"template_type,omitempty"`
	QRURL            *string   `json:"qr_url,omitempty"`
	Username         *string   `json:"username,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
