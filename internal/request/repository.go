package request

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists service requests.
type Repository interface {
	Create(ctx context.Context, req ServiceRequest) error
	List(ctx context.Context, f Filter) ([]ServiceRequest, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed request repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const requestColumns = `id, name, email, phone, trade, city, title, details, budget, created_at`

// Create inserts a service request.
func (r *PostgresRepository) Create(ctx context.Context, req ServiceRequest) error {
	requestID, err := uuid.Parse(req.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO service_requests (`+requestColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		requestID, req.Name, req.Email, req.Phone, req.Trade, req.City,
		req.Title, req.Details, req.Budget, req.CreatedAt.UTC())
	return err
}

// List returns service requests matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests`
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

	requests := []ServiceRequest{}
	for rows.Next() {
		var (
			id        uuid.UUID
			createdAt time.Time
			req       ServiceRequest
		)
		if err := rows.Scan(&id, &req.Name, &req.Email, &req.Phone, &req.Trade, &req.City,
			&req.Title, &req.Details, &req.Budget, &createdAt); err != nil {
			return nil, err
		}
		req.ID = id.String()
		req.CreatedAt = createdAt.UTC()
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
