package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"serwer-zdjec/internal/models"
)

const albumColumns = `
	a.id,
	a.owner_id,
	a.name,
	a.description,
	a.cover_photo,
	(SELECT count(*) FROM photos p WHERE p.album_id = a.id) AS photo_count,
	a.created_at,
	a.updated_at
`

func scanAlbum(row pgx.Row) (*models.Album, error) {
	var a models.Album
	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Name,
		&a.Description,
		&a.CoverPhoto,
		&a.PhotoCount,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (q *Queries) CreateAlbum(ctx context.Context, ownerID int64, name string, description, coverPhoto *string) (*models.Album, error) {
	query := `
		WITH inserted AS (
			INSERT INTO albums (owner_id, name, description, cover_photo)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)
		SELECT ` + albumColumns + ` FROM inserted a`

	return scanAlbum(q.db.QueryRow(ctx, query, ownerID, name, description, coverPhoto))
}

func (q *Queries) GetAlbumByIDAndOwner(ctx context.Context, albumID, ownerID int64) (*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums a WHERE a.id = $1 AND a.owner_id = $2`
	return scanAlbum(q.db.QueryRow(ctx, query, albumID, ownerID))
}

func (q *Queries) ListUserAlbums(ctx context.Context, ownerID int64) ([]models.Album, error) {
	query := `SELECT ` + albumColumns + `
		FROM albums a
		WHERE a.owner_id = $1
		ORDER BY a.created_at DESC, a.id DESC`

	rows, err := q.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, *a)
	}
	return albums, rows.Err()
}

type UpdateAlbumParams struct {
	Name        *string
	Description *string
	CoverPhoto  *string
}

func (q *Queries) UpdateAlbum(ctx context.Context, albumID, ownerID int64, arg UpdateAlbumParams) (*models.Album, error) {
	query := `
		WITH updated AS (
			UPDATE albums SET
				name = COALESCE($3, name),
				description = COALESCE($4, description),
				cover_photo = COALESCE($5, cover_photo),
				updated_at = now()
			WHERE id = $1 AND owner_id = $2
			RETURNING *
		)
		SELECT ` + albumColumns + ` FROM updated a`

	album, err := scanAlbum(q.db.QueryRow(ctx, query, albumID, ownerID, arg.Name, arg.Description, arg.CoverPhoto))
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

// DeleteAlbum usuwa album i zeruje odwołania w jego zdjęciach. Zdjęcia
// nigdy nie są usuwane kaskadowo razem z albumem.
// Returns how many photos became uncategorized.
func (s *Store) DeleteAlbum(ctx context.Context, albumID, ownerID int64) (int64, error) {
	var orphaned int64

	err := s.ExecTx(ctx, func(q *Queries) error {
		tag, err := q.db.Exec(ctx,
			`UPDATE photos SET album_id = NULL, updated_at = now() WHERE album_id = $1 AND owner_id = $2`,
			albumID, ownerID)
		if err != nil {
			return err
		}
		orphaned = tag.RowsAffected()

		delTag, err := q.db.Exec(ctx, `DELETE FROM albums WHERE id = $1 AND owner_id = $2`, albumID, ownerID)
		if err != nil {
			return err
		}
		if delTag.RowsAffected() == 0 {
			return ErrAlbumNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orphaned, nil
}
