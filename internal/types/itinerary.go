package types

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is a user-owned saved trip plan. Days carries the full DayPlan
// payload and is stored as JSONB.
type Itinerary struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	DurationDays int       `json:"duration_days"`
	BudgetUSD    float64   `json:"budget_usd"`
	Style        string    `json:"style"`
	Days         []DayPlan `json:"days"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateItineraryRequest is the JSON body for saving an itinerary.
type CreateItineraryRequest struct {
	Name         string    `json:"name" validate:"required"`
	City         string    `json:"city"`
	DurationDays int       `json:"duration_days" validate:"min=1,max=14"`
	BudgetUSD    float64   `json:"budget_usd" validate:"min=0"`
	Style        string    `json:"style" validate:"omitempty,oneof=budget balanced comfort"`
	Days         []DayPlan `json:"days"`
	IsPublic     bool      `json:"is_public"`
}
