package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"serwer-zdjec/internal/models"
)

var ErrPostcardNotFound = errors.New("postcard not found")

const postcardColumns = `
	id,
	image_path,
	text_content,
	original_filename,
	file_size,
	template_type,
	qr_url,
	username,
	created_at
`

func scanPostcard(row pgx.Row) (*models.Postcard, error) {
	var p models.Postcard
	err := row.Scan(
		&p.ID,
		&p.ImagePath,
		&p.TextContent,
		&p.OriginalFilename,
		&p.FileSize,
		&p.TemplateType,
		&p.QRURL,
		&p.Username,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

type CreatePostcardParams struct {
	ImagePath        string
	TextContent      *string
	OriginalFilename *string
	FileSize         *int64
	TemplateType     *string
	QRURL            *string
	Username         *string
}

func (q *Queries) CreatePostcard(ctx context.Context, arg CreatePostcardParams) (*models.Postcard, error) {
	query := `
		INSERT INTO postcards (image_path, text_content, original_filename, file_size, template_type, qr_url, username)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + postcardColumns

	return scanPostcard(q.db.QueryRow(ctx, query,
		arg.ImagePath, arg.TextContent, arg.OriginalFilename, arg.FileSize,
		arg.TemplateType, arg.QRURL, arg.Username,
	))
}

func (q *Queries) GetPostcard(ctx context.Context, id int64) (*models.Postcard, error) {
	query := `SELECT ` + postcardColumns + ` FROM postcards WHERE id = $1`
	return scanPostcard(q.db.QueryRow(ctx, query, id))
}

func (q *Queries) ListPostcards(ctx context.Context) ([]models.Postcard, error) {
	query := `SELECT ` + postcardColumns + ` FROM postcards ORDER BY created_at DESC, id DESC`

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postcards []models.Postcard
	for rows.Next() {
		p, err := scanPostcard(rows)
		if err != nil {
			return nil, err
		}
		postcards = append(postcards, *p)
	}
	return postcards, rows.Err()
}

type UpdatePostcardParams struct {
	TextContent  *string
	TemplateType *string
	QRURL        *string
}

func (q *Queries) UpdatePostcard(ctx context.Context, id int64, arg UpdatePostcardParams) (*models.Postcard, error) {
	query := `
		UPDATE postcards SET
			text_content = COALESCE($2, text_content),
			template_type = COALESCE($3, template_type),
			qr_url = COALESCE($4, qr_url)
		WHERE id = $1
		RETURNING ` + postcardColumns

	postcard, err := scanPostcard(q.db.QueryRow(ctx, query, id, arg.TextContent, arg.TemplateType, arg.QRURL))
	if err != nil {
		return nil, err
	}
	if postcard == nil {
		return nil, ErrPostcardNotFound
	}
	return postcard, nil
}

func (q *Queries) DeletePostcard(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM postcards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostcardNotFound
	}
	return nil
}
