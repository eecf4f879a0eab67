package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/safar-uz/safar-api/app/observability/metrics"
	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository defines the persistence contract for places.
type Repository interface {
	List(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Place, error)
	Create(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error)
	Update(ctx context.Context, id uuid.UUID, req types.CreatePlaceRequest) (*types.Place, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const placeColumns = `id, name, description, category, price_usd, rating, tags, latitude, longitude, image_url, created_at, updated_at`

type PostgresRepository struct {
	db     api.DB
	logger *slog.Logger
}

func NewPostgresRepository(db api.DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "places")),
	}
}

func (r *PostgresRepository) List(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places`
	var conds []string
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price_usd >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price_usd <= $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
		conds = append(conds, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("listing places: %w", err)
	}
	defer rows.Close()

	var out []types.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*types.Place, error) {
	row := r.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id)
	p, err := scanPlace(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching place: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error) {
	lat, lng := coordArgs(req.Coordinates)
	row := r.db.QueryRow(ctx, `
		INSERT INTO places (name, description, category, price_usd, rating, tags, latitude, longitude, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+placeColumns,
		req.Name, req.Description, req.Category, req.PriceUSD, req.Rating, tagsOrEmpty(req.Tags), lat, lng, req.ImageURL,
	)
	p, err := scanPlace(row)
	if err != nil {
		return nil, fmt.Errorf("creating place: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, req types.CreatePlaceRequest) (*types.Place, error) {
	lat, lng := coordArgs(req.Coordinates)
	row := r.db.QueryRow(ctx, `
		UPDATE places
		SET name = $2, description = $3, category = $4, price_usd = $5, rating = $6,
		    tags = $7, latitude = $8, longitude = $9, image_url = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING `+placeColumns,
		id, req.Name, req.Description, req.Category, req.PriceUSD, req.Rating, tagsOrEmpty(req.Tags), lat, lng, req.ImageURL,
	)
	p, err := scanPlace(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating place: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func scanPlace(row pgx.Row) (*types.Place, error) {
	var p types.Place
	var lat, lng *float64
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceUSD, &p.Rating,
		&p.Tags, &lat, &lng, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		p.Coordinates = &types.Coordinates{Lat: *lat, Lng: *lng}
	}
	return &p, nil
}

func coordArgs(c *types.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lng
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
