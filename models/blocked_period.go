package models

import "time"

// BlockedPeriod is an owner-declared date range during which a property
// cannot be booked, independent of actual bookings.
type BlockedPeriod struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StructureID    uint      `json:"structureId" gorm:"index"`
	Structure      Structure `json:"-" gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`
	PropertyTypeID *uint     `json:"propertyTypeId"` // informational only
	PropertyID     uint      `json:"propertyId" gorm:"index:idx_blocked_property_dates"`
	Property       Property  `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`

	StartDate time.Time `json:"startDate" gorm:"type:date;index:idx_blocked_property_dates"`
	EndDate   time.Time `json:"endDate" gorm:"type:date;index:idx_blocked_property_dates"`

	Reason string `json:"reason"`
	Notes  string `json:"notes"`

	CreatedByID *uint `json:"createdById"`
	UpdatedByID *uint `json:"updatedById"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
