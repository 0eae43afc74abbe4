package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"serwer-zdjec/internal/models"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrDuplicateOrderRef   = errors.New("order reference already exists")
	ErrOrderPostcardAbsent = errors.New("ordered postcard does not exist")
)

const orderColumns = `
	id,
	reference,
	postcard_id,
	quantity,
	recipient_name,
	shipping_address,
	contact_email,
	status,
	created_at
`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.Reference,
		&o.PostcardID,
		&o.Quantity,
		&o.RecipientName,
		&o.ShippingAddress,
		&o.ContactEmail,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

type CreateOrderParams struct {
	Reference       string
	PostcardID      int64
	Quantity        int
	RecipientName   string
	ShippingAddress string
	ContactEmail    *string
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (*models.Order, error) {
	query := `
		INSERT INTO orders (reference, postcard_id, quantity, recipient_name, shipping_address, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + orderColumns

	order, err := scanOrder(q.db.QueryRow(ctx, query,
		arg.Reference, arg.PostcardID, arg.Quantity, arg.RecipientName, arg.ShippingAddress, arg.ContactEmail,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, ErrDuplicateOrderRef
			case "23503":
				return nil, ErrOrderPostcardAbsent
			}
		}
		return nil, err
	}
	return order, nil
}

func (q *Queries) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(q.db.QueryRow(ctx, query, id))
}

func (q *Queries) ListOrders(ctx context.Context) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
