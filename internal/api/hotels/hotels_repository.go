package hotels

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

// Repository defines the persistence contract for hotels.
type Repository interface {
	List(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Hotel, error)
	Create(ctx context.Context, req types.CreateHotelRequest) (*types.Hotel, error)
	Update(ctx context.Context, id uuid.UUID, req types.CreateHotelRequest) (*types.Hotel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const hotelColumns = `id, name, description, stars, price_per_night, rating, amenities, breakfast_included, check_in, check_out, latitude, longitude, image_url, created_at, updated_at`

type PostgresRepository struct {
	db     api.DB
	logger *slog.Logger
}

func NewPostgresRepository(db api.DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "hotels")),
	}
}

func (r *PostgresRepository) List(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels`
	var conds []string
	var args []any

	if filter.Stars != nil {
		args = append(args, *filter.Stars)
		conds = append(conds, fmt.Sprintf("stars = $%d", len(args)))
	}
	if filter.MinStars != nil {
		args = append(args, *filter.MinStars)
		conds = append(conds, fmt.Sprintf("stars >= $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price_per_night >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price_per_night <= $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
		conds = append(conds, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d)", len(args), len(args)))
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
		return nil, fmt.Errorf("listing hotels: %w", err)
	}
	defer rows.Close()

	var out []types.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*types.Hotel, error) {
	row := r.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1`, id)
	h, err := scanHotel(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching hotel: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req types.CreateHotelRequest) (*types.Hotel, error) {
	lat, lng := coordArgs(req.Coordinates)
	row := r.db.QueryRow(ctx, `
		INSERT INTO hotels (name, description, stars, price_per_night, rating, amenities, breakfast_included, check_in, check_out, latitude, longitude, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+hotelColumns,
		req.Name, req.Description, req.Stars, req.PricePerNight, req.Rating,
		sliceOrEmpty(req.Amenities), req.BreakfastIncluded, timeOrDefault(req.CheckIn, "14:00"),
		timeOrDefault(req.CheckOut, "12:00"), lat, lng, req.ImageURL,
	)
	h, err := scanHotel(row)
	if err != nil {
		return nil, fmt.Errorf("creating hotel: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, req types.CreateHotelRequest) (*types.Hotel, error) {
	lat, lng := coordArgs(req.Coordinates)
	row := r.db.QueryRow(ctx, `
		UPDATE hotels
		SET name = $2, description = $3, stars = $4, price_per_night = $5, rating = $6,
		    amenities = $7, breakfast_included = $8, check_in = $9, check_out = $10,
		    latitude = $11, longitude = $12, image_url = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING `+hotelColumns,
		id, req.Name, req.Description, req.Stars, req.PricePerNight, req.Rating,
		sliceOrEmpty(req.Amenities), req.BreakfastIncluded, timeOrDefault(req.CheckIn, "14:00"),
		timeOrDefault(req.CheckOut, "12:00"), lat, lng, req.ImageURL,
	)
	h, err := scanHotel(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating hotel: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM hotels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting hotel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func scanHotel(row pgx.Row) (*types.Hotel, error) {
	var h types.Hotel
	var lat, lng *float64
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Stars, &h.PricePerNight, &h.Rating,
		&h.Amenities, &h.BreakfastIncluded, &h.CheckIn, &h.CheckOut, &lat, &lng, &h.ImageURL,
		&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		h.Coordinates = &types.Coordinates{Lat: *lat, Lng: *lng}
	}
	return &h, nil
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

func timeOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
