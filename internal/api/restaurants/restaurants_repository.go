package restaurants

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository defines the persistence contract for restaurants.
type Repository interface {
	List(ctx context.Context, filter types.RestaurantFilter) ([]types.Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Restaurant, error)
	Create(ctx context.Context, req types.CreateRestaurantRequest) (*types.Restaurant, error)
	Update(ctx context.Context, id uuid.UUID, req types.CreateRestaurantRequest) (*types.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const restaurantColumns = `id, name, description, cuisine, price_range, average_check_usd, rating, features, specialties, latitude, longitude, image_url, created_at, updated_at`

type PostgresRepository struct {
	db     api.DB
	logger *slog.Logger
}

func NewPostgresRepository(db api.DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "restaurants")),
	}
}

func (r *PostgresRepository) List(ctx context.Context, filter types.RestaurantFilter) ([]types.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants`
	var conds []string
	var args []any

	if filter.Cuisine != "" {
		args = append(args, strings.ToLower(filter.Cuisine))
		conds = append(conds, fmt.Sprintf("LOWER(cuisine) = $%d", len(args)))
	}
	if filter.PriceRange != "" {
		args = append(args, filter.PriceRange)
		conds = append(conds, fmt.Sprintf("price_range = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
		conds = append(conds, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d OR LOWER(cuisine) LIKE $%d)", len(args), len(args), len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rating DESC, name"

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

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing restaurants: %w", err)
	}
	defer rows.Close()

	var out []types.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rest)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*types.Restaurant, error) {
	row := r.db.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	rest, err := scanRestaurant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching restaurant: %w", err)
	}
	return rest, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req types.CreateRestaurantRequest) (*types.Restaurant, error) {
	lat, lng := coordArgs(req.Coordinates)
	priceRange := req.PriceRange
	if priceRange == "" {
		priceRange = "$$"
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO restaurants (name, description, cuisine, price_range, average_check_usd, rating, features, specialties, latitude, longitude, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+restaurantColumns,
		req.Name, req.Description, req.Cuisine, priceRange, req.AverageCheckUSD, req.Rating,
		sliceOrEmpty(req.Features), sliceOrEmpty(req.Specialties), lat, lng, req.ImageURL,
	)
	rest, err := scanRestaurant(row)
	if err != nil {
		return nil, fmt.Errorf("creating restaurant: %w", err)
	}
	return rest, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, req types.CreateRestaurantRequest) (*types.Restaurant, error) {
	lat, lng := coordArgs(req.Coordinates)
	row := r.db.QueryRow(ctx, `
		UPDATE restaurants
		SET name = $2, description = $3, cuisine = $4, price_range = $5, average_check_usd = $6,
		    rating = $7, features = $8, specialties = $9, latitude = $10, longitude = $11,
		    image_url = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING `+restaurantColumns,
		id, req.Name, req.Description, req.Cuisine, req.PriceRange, req.AverageCheckUSD, req.Rating,
		sliceOrEmpty(req.Features), sliceOrEmpty(req.Specialties), lat, lng, req.ImageURL,
	)
	rest, err := scanRestaurant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating restaurant: %w", err)
	}
	return rest, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func scanRestaurant(row pgx.Row) (*types.Restaurant, error) {
	var rest types.Restaurant
	var lat, lng *float64
	err := row.Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Cuisine, &rest.PriceRange,
		&rest.AverageCheckUSD, &rest.Rating, &rest.Features, &rest.Specialties, &lat, &lng,
		&rest.ImageURL, &rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		rest.Coordinates = &types.Coordinates{Lat: *lat, Lng: *lng}
	}
	return &rest, nil
}

func coordArgs(c *types.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lng
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
