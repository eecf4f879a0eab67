package itineraries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository defines the persistence contract for saved itineraries. All
// operations are scoped to the owning user.
type Repository interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]types.Itinerary, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error)
	Create(ctx context.Context, userID uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error)
	Update(ctx context.Context, userID, id uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

const itineraryColumns = `id, user_id, name, city, duration_days, budget_usd, style, days, is_public, created_at, updated_at`

type PostgresRepository struct {
	db     api.DB
	logger *slog.Logger
}

func NewPostgresRepository(db api.DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "itineraries")),
	}
}

func (r *PostgresRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]types.Itinerary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+itineraryColumns+` FROM itineraries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing itineraries: %w", err)
	}
	defer rows.Close()

	var out []types.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+itineraryColumns+` FROM itineraries
		WHERE id = $1 AND (user_id = $2 OR is_public)`,
		id, userID,
	)
	it, err := scanItinerary(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching itinerary: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) Create(ctx context.Context, userID uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error) {
	days, err := marshalDays(req.Days)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO itineraries (user_id, name, city, duration_days, budget_usd, style, days, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+itineraryColumns,
		userID, req.Name, cityOrDefault(req.City), req.DurationDays, req.BudgetUSD,
		styleOrDefault(req.Style), days, req.IsPublic,
	)
	it, err := scanItinerary(row)
	if err != nil {
		return nil, fmt.Errorf("creating itinerary: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error) {
	days, err := marshalDays(req.Days)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
		UPDATE itineraries
		SET name = $3, city = $4, duration_days = $5, budget_usd = $6, style = $7,
		    days = $8, is_public = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+itineraryColumns,
		id, userID, req.Name, cityOrDefault(req.City), req.DurationDays, req.BudgetUSD,
		styleOrDefault(req.Style), days, req.IsPublic,
	)
	it, err := scanItinerary(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating itinerary: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM itineraries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func scanItinerary(row pgx.Row) (*types.Itinerary, error) {
	var it types.Itinerary
	var days []byte
	err := row.Scan(&it.ID, &it.UserID, &it.Name, &it.City, &it.DurationDays, &it.BudgetUSD,
		&it.Style, &days, &it.IsPublic, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(days) > 0 {
		if err := json.Unmarshal(days, &it.Days); err != nil {
			return nil, fmt.Errorf("decoding itinerary days: %w", err)
		}
	}
	return &it, nil
}

func marshalDays(days []types.DayPlan) ([]byte, error) {
	if days == nil {
		days = []types.DayPlan{}
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encoding itinerary days: %w", err)
	}
	return raw, nil
}

func cityOrDefault(city string) string {
	if city == "" {
		return "Samarkand"
	}
	return city
}

func styleOrDefault(style string) string {
	if style == "" {
		return "balanced"
	}
	return style
}
