package models

import "time"

type Structure struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Status    string    `json:"status" gorm:"default:active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	PropertyTypes []PropertyType `json:"propertyTypes,omitempty" gorm:"foreignKey:StructureID"`
	Properties    []Property     `json:"properties,omitempty" gorm:"foreignKey:StructureID"`
}
