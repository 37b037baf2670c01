package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no provider matches the given identifier.
var ErrNotFound = errors.New("provider not found")

// Repository persists provider listings.
type Repository interface {
	Create(ctx context.Context, p Provider) error
	Get(ctx context.Context, id string) (Provider, error)
	List(ctx context.Context, f Filter) ([]Provider, error)
	ApplyReview(ctx context.Context, id string, rating int) (Provider, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed provider repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const providerColumns = `id, name, trade, email, phone, city, description, hourly_rate, rating, review_count, badges, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProvider(row rowScanner) (Provider, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		p         Provider
	)
	err := row.Scan(&id, &p.Name, &p.Trade, &p.Email, &p.Phone, &p.City, &p.Description,
		&p.HourlyRate, &p.Rating, &p.ReviewCount, &p.Badges, &createdAt)
	if err != nil {
		return Provider{}, err
	}
	p.ID = id.String()
	p.CreatedAt = createdAt.UTC()
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return p, nil
}

// Create inserts a provider listing.
func (r *PostgresRepository) Create(ctx context.Context, p Provider) error {
	providerID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO providers (`+providerColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		providerID, p.Name, p.Trade, p.Email, p.Phone, p.City, p.Description,
		p.HourlyRate, p.Rating, p.ReviewCount, p.Badges, p.CreatedAt.UTC())
	return err
}

// Get fetches a provider by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Provider, error) {
	providerID, err := uuid.Parse(id)
	if err != nil {
		return Provider{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = $1`, providerID)
	p, err := scanProvider(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Provider{}, ErrNotFound
	}
	return p, err
}

// List returns providers matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers`
	var (
		conds []string
		args  []any
	)
	if f.Trade != "" {
		args = append(args, f.Trade)
		conds = append(conds, fmt.Sprintf("trade = $%d", len(args)))
	}
	if f.City != "" {
		args = append(args, f.City)
		conds = append(conds, fmt.Sprintf("city = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// ApplyReview folds one rating into the provider's rolling average and
// bumps the review count in a single statement, returning the updated row.
func (r *PostgresRepository) ApplyReview(ctx context.Context, id string, rating int) (Provider, error) {
	providerID, err := uuid.Parse(id)
	if err != nil {
		return Provider{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE providers
        SET rating = ((rating * review_count) + $2) / (review_count + 1),
            review_count = review_count + 1
        WHERE id = $1
        RETURNING `+providerColumns, providerID, rating)
	p, err := scanProvider(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Provider{}, ErrNotFound
	}
	return p, err
}
