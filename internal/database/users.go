package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"serwer-zdjec/internal/models"
)

var ErrUsernameTaken = errors.New("username or email is already taken")

const userColumns = `
	id,
	username,
	email,
	password_hash,
	display_name,
	bio,
	avatar_url,
	website,
	location,
	favorite_camera,
	favorite_lens,
	favorite_photographer,
	is_active,
	user_tier,
	storage_used_bytes,
	created_at,
	updated_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Bio,
		&user.AvatarURL,
		&user.Website,
		&user.Location,
		&user.FavoriteCamera,
		&user.FavoriteLens,
		&user.FavoritePhotographer,
		&user.IsActive,
		&user.Tier,
		&user.StorageUsedBytes,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (q *Queries) CreateUser(ctx context.Context, username string, email *string, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(q.db.QueryRow(ctx, query, username, email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(q.db.QueryRow(ctx, query, username))
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.db.QueryRow(ctx, query, id))
}

type UpdateUserProfileParams struct {
	DisplayName          *string
	Bio                  *string
	Website              *string
	Location             *string
	FavoriteCamera       *string
	FavoriteLens         *string
	FavoritePhotographer *string
}

// UpdateUserProfile nadpisuje tylko pola przekazane w żądaniu;
// NULL w parametrze zostawia dotychczasową wartość.
func (q *Queries) UpdateUserProfile(ctx context.Context, userID int64, arg UpdateUserProfileParams) (*models.User, error) {
	query := `
		UPDATE users SET
			display_name = COALESCE($2, display_name),
			bio = COALESCE($3, bio),
			website = COALESCE($4, website),
			location = COALESCE($5, location),
			favorite_camera = COALESCE($6, favorite_camera),
			favorite_lens = COALESCE($7, favorite_lens),
			favorite_photographer = COALESCE($8, favorite_photographer),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(q.db.QueryRow(ctx, query, userID,
		arg.DisplayName,
		arg.Bio,
		arg.Website,
		arg.Location,
		arg.FavoriteCamera,
		arg.FavoriteLens,
		arg.FavoritePhotographer,
	))
}

func (q *Queries) SetAvatarURL(ctx context.Context, userID int64, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1`
	_, err := q.db.Exec(ctx, query, userID, avatarURL)
	return err
}

// AddStorageUsed atomically shifts the accounted usage by delta (negative
// to release) and floors at zero. Returns the value after the change.
// Only the quota ledger calls this.
func (q *Queries) AddStorageUsed(ctx context.Context, userID int64, delta int64) (int64, error) {
	query := `
		UPDATE users
		SET storage_used_bytes = GREATEST(storage_used_bytes + $2, 0),
		    updated_at = now()
		WHERE id = $1
		RETURNING storage_used_bytes
	`
	var used int64
	if err := q.db.QueryRow(ctx, query, userID, delta).Scan(&used); err != nil {
		return 0, err
	}
	return used, nil
}
