package repository

import (
	"context"
	"errors"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DeliveryRepository defines the persistence interface for relay outcomes.
type DeliveryRepository interface {
	Record(ctx context.Context, d *model.Delivery) error
	Get(ctx context.Context, id string) (*model.Delivery, error)
}

// PgDeliveryRepository is the PostgreSQL implementation of DeliveryRepository.
type PgDeliveryRepository struct {
	pool *pgxpool.Pool
}

// NewPgDeliveryRepository creates a PgDeliveryRepository backed by the given pool.
func NewPgDeliveryRepository(pool *pgxpool.Pool) *PgDeliveryRepository {
	return &PgDeliveryRepository{pool: pool}
}

var _ DeliveryRepository = (*PgDeliveryRepository)(nil)

// Record inserts a contact_deliveries row and populates d.CreatedAt from the
// RETURNING clause. d.ID must already be set.
func (r *PgDeliveryRepository) Record(ctx context.Context, d *model.Delivery) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_deliveries (id, status, failure)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING created_at`,
		d.ID, d.Status, d.Failure,
	).Scan(&d.CreatedAt)
}

// Get returns the delivery with the given id or ErrNotFound.
func (r *PgDeliveryRepository) Get(ctx context.Context, id string) (*model.Delivery, error) {
	var d model.Delivery
	err := r.pool.QueryRow(ctx,
		`SELECT id, status, COALESCE(failure, ''), created_at
		 FROM contact_deliveries WHERE id = $1`, id,
	).Scan(&d.ID, &d.Status, &d.Failure, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// NopDeliveryRepository discards records. It is used when no database is configured.
type NopDeliveryRepository struct{}

var _ DeliveryRepository = NopDeliveryRepository{}

func (NopDeliveryRepository) Record(context.Context, *model.Delivery) error { return nil }

func (NopDeliveryRepository) Get(context.Context, string) (*model.Delivery, error) {
	return nil, ErrNotFound
}
