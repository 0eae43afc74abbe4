package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"serwer-zdjec/internal/models"
)

var (
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrPhotoLimitReached = errors.New("photo limit reached")
	ErrAlbumNotFound     = errors.New("album not found or not owned by user")
)

const photoColumns = `
	id,
	owner_id,
	album_id,
	image_url,
	image_url_thumb,
	image_url_medium,
	title,
	description,
	location,
	camera,
	lens,
	settings,
	taken_at,
	created_at,
	updated_at
`

func scanPhoto(row pgx.Row) (*models.Photo, error) {
	var p models.Photo
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.AlbumID,
		&p.ImageURL,
		&p.ImageURLThumb,
		&p.ImageURLMedium,
		&p.Title,
		&p.Description,
		&p.Location,
		&p.Camera,
		&p.Lens,
		&p.Settings,
		&p.TakenAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

type UpsertPhotoParams struct {
	OwnerID        int64
	AlbumID        *int64
	ImageURL       string
	ImageURLThumb  *string
	ImageURLMedium *string
	Title          *string
	Description    *string
	Location       *string
	Camera         *string
	Lens           *string
	Settings       *string
	TakenAt        *time.Time
}

// UpsertPhoto wstawia lub aktualizuje wiersz katalogu dla pary
// (owner_id, image_url). Limit liczby zdjęć obowiązuje wyłącznie przy
// wstawieniu nowego wiersza i jest sprawdzany w tej samej transakcji,
// żeby domknąć okno wyścigu z pre-checkiem kwoty.
// Returns the row and whether it was newly created.
func (s *Store) UpsertPhoto(ctx context.Context, arg UpsertPhotoParams, maxPhotos int) (*models.Photo, bool, error) {
	var photo *models.Photo
	var created bool

	err := s.ExecTx(ctx, func(q *Queries) error {
		existing, err := q.GetPhotoByOwnerAndURL(ctx, arg.OwnerID, arg.ImageURL)
		if err != nil {
			return err
		}

		if existing != nil {
			photo, err = q.updatePhotoByURL(ctx, arg)
			return err
		}

		count, err := q.CountUserPhotos(ctx, arg.OwnerID)
		if err != nil {
			return err
		}
		if count >= maxPhotos {
			return ErrPhotoLimitReached
		}

		photo, err = q.insertPhoto(ctx, arg)
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return photo, created, nil
}

func (q *Queries) insertPhoto(ctx context.Context, arg UpsertPhotoParams) (*models.Photo, error) {
	query := `
		INSERT INTO photos (owner_id, album_id, image_url, image_url_thumb, image_url_medium,
		                    title, description, location, camera, lens, settings, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + photoColumns

	return scanPhoto(q.db.QueryRow(ctx, query,
		arg.OwnerID, arg.AlbumID, arg.ImageURL, arg.ImageURLThumb, arg.ImageURLMedium,
		arg.Title, arg.Description, arg.Location, arg.Camera, arg.Lens, arg.Settings, arg.TakenAt,
	))
}

func (q *Queries) updatePhotoByURL(ctx context.Context, arg UpsertPhotoParams) (*models.Photo, error) {
	query := `
		UPDATE photos SET
			album_id = $3,
			image_url_thumb = COALESCE($4, image_url_thumb),
			image_url_medium = COALESCE($5, image_url_medium),
			title = COALESCE($6, title),
			description = COALESCE($7, description),
			location = COALESCE($8, location),
			camera = COALESCE($9, camera),
			lens = COALESCE($10, lens),
			settings = COALESCE($11, settings),
			taken_at = COALESCE($12, taken_at),
			updated_at = now()
		WHERE owner_id = $1 AND image_url = $2
		RETURNING ` + photoColumns

	return scanPhoto(q.db.QueryRow(ctx, query,
		arg.OwnerID, arg.ImageURL, arg.AlbumID, arg.ImageURLThumb, arg.ImageURLMedium,
		arg.Title, arg.Description, arg.Location, arg.Camera, arg.Lens, arg.Settings, arg.TakenAt,
	))
}

func (q *Queries) GetPhotoByOwnerAndURL(ctx context.Context, ownerID int64, imageURL string) (*models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE owner_id = $1 AND image_url = $2`
	return scanPhoto(q.db.QueryRow(ctx, query, ownerID, imageURL))
}

func (q *Queries) GetPhotoByID(ctx context.Context, id int64) (*models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`
	return scanPhoto(q.db.QueryRow(ctx, query, id))
}

func (q *Queries) CountUserPhotos(ctx context.Context, ownerID int64) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM photos WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}

// ListUserPhotos zwraca stronę zdjęć użytkownika od najnowszych.
// limit <= 0 oznacza brak stronicowania.
func (q *Queries) ListUserPhotos(ctx context.Context, ownerID int64, limit, offset int) ([]models.Photo, error) {
	query := `SELECT ` + photoColumns + `
		FROM photos
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = q.db.Query(ctx, query+` LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	} else {
		rows, err = q.db.Query(ctx, query, ownerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

type UpdatePhotoParams struct {
	Title       *string
	Description *string
	Location    *string
	Camera      *string
	Lens        *string
	Settings    *string
	TakenAt     *time.Time
	AlbumID     *int64
	ClearAlbum  bool
}

// UpdatePhotoMetadata applies a partial metadata patch. Album handling:
// ClearAlbum removes the association, a non-nil AlbumID moves the photo,
// otherwise the association stays as it was.
func (q *Queries) UpdatePhotoMetadata(ctx context.Context, photoID int64, arg UpdatePhotoParams) (*models.Photo, error) {
	query := `
		UPDATE photos SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			location = COALESCE($4, location),
			camera = COALESCE($5, camera),
			lens = COALESCE($6, lens),
			settings = COALESCE($7, settings),
			taken_at = COALESCE($8, taken_at),
			album_id = CASE WHEN $9 THEN NULL ELSE COALESCE($10, album_id) END,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + photoColumns

	photo, err := scanPhoto(q.db.QueryRow(ctx, query, photoID,
		arg.Title, arg.Description, arg.Location, arg.Camera, arg.Lens, arg.Settings, arg.TakenAt,
		arg.ClearAlbum, arg.AlbumID,
	))
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	return photo, nil
}

func (q *Queries) DeletePhoto(ctx context.Context, photoID int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM photos WHERE id = $1`, photoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

// PhotoExistsByImageURL is used by the orphan sweep: a blob on disk without
// a matching catalog row is a leftover from a failed upload.
func (q *Queries) PhotoExistsByImageURL(ctx context.Context, imageURL string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM photos WHERE image_url = $1)`, imageURL).Scan(&exists)
	return exists, err
}
