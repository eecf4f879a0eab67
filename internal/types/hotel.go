package types

import (
	"time"

	"github.com/google/uuid"
)

// Hotel is a stored accommodation record.
type Hotel struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Stars             int          `json:"stars"`
	PricePerNight     float64      `json:"price_per_night"`
	Rating            float64      `json:"rating"`
	Amenities         []string     `json:"amenities"`
	BreakfastIncluded bool         `json:"breakfast_included"`
	CheckIn           string       `json:"check_in"`
	CheckOut          string       `json:"check_out"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	ImageURL          string       `json:"image_url,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// CreateHotelRequest is the JSON body for creating or replacing a hotel.
type CreateHotelRequest struct {
	Name              string       `json:"name" validate:"required"`
	Description       string       `json:"description"`
	Stars             int          `json:"stars" validate:"min=0,max=5"`
	PricePerNight     float64      `json:"price_per_night" validate:"min=0"`
	Rating            float64      `json:"rating" validate:"min=0,max=5"`
	Amenities         []string     `json:"amenities"`
	BreakfastIncluded bool         `json:"breakfast_included"`
	CheckIn           string       `json:"check_in"`
	CheckOut          string       `json:"check_out"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	ImageURL          string       `json:"image_url"`
}

// HotelFilter narrows hotel listings.
type HotelFilter struct {
	MinStars *int
	Stars    *int
	MinPrice *float64
	MaxPrice *float64
	Query    string
	Limit    int
	Offset   int
}
