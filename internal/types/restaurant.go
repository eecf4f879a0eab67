package types

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a stored dining record.
type Restaurant struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Cuisine         string       `json:"cuisine"`
	PriceRange      string       `json:"price_range"`
	AverageCheckUSD float64      `json:"average_check_usd"`
	Rating          float64      `json:"rating"`
	Features        []string     `json:"features"`
	Specialties     []string     `json:"specialties"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	ImageURL        string       `json:"image_url,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// CreateRestaurantRequest is the JSON body for creating or replacing a restaurant.
type CreateRestaurantRequest struct {
	Name            string       `json:"name" validate:"required"`
	Description     string       `json:"description"`
	Cuisine         string       `json:"cuisine"`
	PriceRange      string       `json:"price_range" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	AverageCheckUSD float64      `json:"average_check_usd" validate:"min=0"`
	Rating          float64      `json:"rating" validate:"min=0,max=5"`
	Features        []string     `json:"features"`
	Specialties     []string     `json:"specialties"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	ImageURL        string       `json:"image_url"`
}

// RestaurantFilter narrows restaurant listings.
type RestaurantFilter struct {
	Cuisine    string
	PriceRange string
	Query      string
	Limit      int
	Offset     int
}
