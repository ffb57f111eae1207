package models

import "time"

// Rate is one property's price/availability cell for one calendar date.
// (property_id, date) is unique; cells are created lazily and never
// deleted when a booking goes away, only unbooked.
type Rate struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"propertyId" gorm:"uniqueIndex:idx_rates_property_date;index"`
	Property   Property  `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Date       time.Time `json:"date" gorm:"type:date;uniqueIndex:idx_rates_property_date"`

	BasePrice float64 `json:"basePrice"`
	MinNights int     `json:"minNights" gorm:"default:1"`

	// Per-channel prices
	Booking float64 `json:"booking"`
	Airbnb  float64 `json:"airbnb"`
	Experia float64 `json:"experia"`

	BookingRefID *uint    `json:"bookingRefId" gorm:"index"`
	BookingRef   *Booking `json:"-" gorm:"foreignKey:BookingRefID"`
	IsBooked     bool     `json:"isBooked" gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Rate) TableName() string {
	return "property_rates"
}
