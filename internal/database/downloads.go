package database

import (
	"context"

	"serwer-zdjec/internal/models"
)

func (q *Queries) RecordDownload(ctx context.Context, postcardID *int64, templateType, userAgent *string) (*models.Download, error) {
	query := `
		INSERT INTO downloads (postcard_id, template_type, user_agent)
		VALUES ($1, $2, $3)
		RETURNING id, postcard_id, template_type, user_agent, created_at
	`
	var d models.Download
	err := q.db.QueryRow(ctx, query, postcardID, templateType, userAgent).Scan(
		&d.ID, &d.PostcardID, &d.TemplateType, &d.UserAgent, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (q *Queries) ListDownloads(ctx context.Context) ([]models.Download, error) {
	query := `SELECT id, postcard_id, template_type, user_agent, created_at FROM downloads ORDER BY created_at DESC, id DESC`

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var downloads []models.Download
	for rows.Next() {
		var d models.Download
		if err := rows.Scan(&d.ID, &d.PostcardID, &d.TemplateType, &d.UserAgent, &d.CreatedAt); err != nil {
			return nil, err
		}
		downloads = append(downloads, d)
	}
	return downloads, rows.Err()
}
