package models

import (
	"fmt"
	"time"
)

type PropertyType struct {
	ID                     uint      `json:"id" gorm:"primaryKey"`
	StructureID            uint      `json:"structureId" gorm:"index"`
	Structure              Structure `json:"-" gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`
	Name                   string    `json:"name"`
	InternalPropertyTypeID string    `json:"internalPropertyTypeId"`
	ImageURL               string    `json:"imageUrl"`
	PropertySizeSqm        float64   `json:"propertySizeSqm"`
	MaxGuests              int       `json:"maxGuests"`
	NumBeds                int       `json:"numBeds"`
	NumSofaBeds            int       `json:"numSofaBeds"`
	NumBedrooms            int       `json:"numBedrooms"`
	NumBathrooms           int       `json:"numBathrooms"`
	Amenities              string    `json:"amenities"` // comma-separated
	Status                 int       `json:"status" gorm:"default:1"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Property struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	StructureID        uint          `json:"structureId" gorm:"index"`
	Structure          Structure     `json:"-" gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`
	PropertyTypeID     uint          `json:"propertyTypeId" gorm:"index"`
	PropertyType       *PropertyType `json:"propertyType,omitempty" gorm:"foreignKey:PropertyTypeID;constraint:OnDelete:CASCADE"`
	Name               string        `json:"name"`
	InternalPropertyID string        `json:"internalPropertyId"`
	FloorNumber        int           `json:"floorNumber"`
	Amenities          string        `json:"amenities"` // comma-separated
	Status             int           `json:"status" gorm:"default:1"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Property) ValidateStatus() error {
	if p.Status < 1 || p.Status > 2 {
		return fmt.Errorf("invalid status: %d, must be 1 (unmapped) or 2 (mapped)", p.Status)
	}
	return nil
}
