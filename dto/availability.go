package dto

import "time"

// BlockedPeriodRequest is the body for blocked period create and update.
type BlockedPeriodRequest struct {
	PropertyID     uint   `json:"property" binding:"required"`
	PropertyTypeID *uint  `json:"property_type"`
	StartDate      string `json:"start_date" binding:"required,dateformat"`
	EndDate        string `json:"end_date" binding:"required,dateformat"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
}

type BlockedPeriodResponse struct {
	ID             uint      `json:"id"`
	StructureID    uint      `json:"structure"`
	PropertyTypeID *uint     `json:"property_type"`
	PropertyID     uint      `json:"property"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Reason         string    `json:"reason,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedByID    *uint     `json:"created_by"`
	UpdatedByID    *uint     `json:"updated_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
