package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists reviews.
type Repository interface {
	Create(ctx context.Context, rev Review) error
	ListByProvider(ctx context.Context, providerID string) ([]Review, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed review repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reviewColumns = `id, provider_id, name, rating, comment, created_at`

// Create inserts a review row.
func (r *PostgresRepository) Create(ctx context.Context, rev Review) error {
	reviewID, err := uuid.Parse(rev.ID)
	if err != nil {
		return err
	}
	providerID, err := uuid.Parse(rev.ProviderID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO reviews (`+reviewColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		reviewID, providerID, rev.Name, rev.Rating, rev.Comment, rev.CreatedAt.UTC())
	return err
}

// ListByProvider returns a listing's reviews, newest first.
func (r *PostgresRepository) ListByProvider(ctx context.Context, providerID string) ([]Review, error) {
	id, err := uuid.Parse(providerID)
	if err != nil {
		return []Review{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews
        WHERE provider_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var (
			reviewID  uuid.UUID
			provID    uuid.UUID
			createdAt time.Time
			rev       Review
		)
		if err := rows.Scan(&reviewID, &provID, &rev.Name, &rev.Rating, &rev.Comment, &createdAt); err != nil {
			return nil, err
		}
		rev.ID = reviewID.String()
		rev.ProviderID = provID.String()
		rev.CreatedAt = createdAt.UTC()
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
