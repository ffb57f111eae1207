package dto

import "time"

// BulkPriceChangeRequest applies a price change over a date range for one
// property or an explicit list (never both).
type BulkPriceChangeRequest struct {
	PropertyID  *uint  `json:"property"`
	PropertyIDs []uint `json:"properties"`

	StartDate string `json:"start_date" binding:"required,dateformat"`
	EndDate   string `json:"end_date" binding:"required,dateformat"`

	BasePrice float64 `json:"base_price" binding:"required,gte=0"`
	MinNights int     `json:"min_nights" binding:"required,min=1"`

	Weekdays []string `json:"weekdays" binding:"omitempty,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`

	BookingPct float64 `json:"booking_pct" binding:"gte=0,lte=100"`
	AirbnbPct  float64 `json:"airbnb_pct" binding:"gte=0,lte=100"`
	ExperiaPct float64 `json:"experia_pct" binding:"gte=0,lte=100"`
}

// SingleRateUpdateRequest upserts one rate cell.
type SingleRateUpdateRequest struct {
	PropertyID uint    `json:"property" binding:"required"`
	Date       string  `json:"date" binding:"required,dateformat"`
	BasePrice  float64 `json:"base_price" binding:"required,gt=0"`
	MinNights  int     `json:"min_nights" binding:"required,min=1"`
}

// RateItem is one calendar cell in the month view.
type RateItem struct {
	Date      string  `json:"date"`
	MinNights int     `json:"minNights"`
	BasePrice float64 `json:"basePrice"`
	Airbnb    float64 `json:"airbnb"`
	Booking   float64 `json:"booking"`
	Expedia   float64 `json:"expedia"`
	IsBooked  bool    `json:"is_booked"`
	BookingID *uint   `json:"booking_id"`
}

// PropertyCalendar groups a month of rate cells per property.
type PropertyCalendar struct {
	PropertyID   uint       `json:"property_id"`
	PropertyName string     `json:"property_name"`
	PropertyType uint       `json:"property_type"`
	StructureID  uint       `json:"structure"`
	Rates        []RateItem `json:"rates"`
}

type RateDetailResponse struct {
	ID           uint      `json:"id"`
	PropertyID   uint      `json:"property_id"`
	PropertyName string    `json:"property_name"`
	Date         string    `json:"date"`
	BasePrice    float64   `json:"base_price"`
	MinNights    int       `json:"min_nights"`
	Booking      float64   `json:"booking"`
	Airbnb       float64   `json:"airbnb"`
	Experia      float64   `json:"experia"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BulkPriceChangeResult summarizes an applied bulk change.
type BulkPriceChangeResult struct {
	Message         string `json:"message"`
	PropertiesCount int    `json:"properties_count"`
	DateRange       string `json:"date_range"`
}
