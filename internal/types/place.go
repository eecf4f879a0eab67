package types

import (
	"time"

	"github.com/google/uuid"
)

// Place is a stored point of interest managed through the CRUD API,
// independent of the embedded reference dataset.
type Place struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	PriceUSD    float64      `json:"price_usd"`
	Rating      float64      `json:"rating"`
	Tags        []string     `json:"tags"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CreatePlaceRequest is the JSON body for creating or replacing a place.
type CreatePlaceRequest struct {
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	PriceUSD    float64      `json:"price_usd" validate:"min=0"`
	Rating      float64      `json:"rating" validate:"min=0,max=5"`
	Tags        []string     `json:"tags"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	ImageURL    string       `json:"image_url"`
}

// PlaceFilter narrows place listings.
type PlaceFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Query    string
	Limit    int
	Offset   int
}
