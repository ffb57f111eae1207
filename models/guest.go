package models

import (
	"encoding/json"
	"time"
)

type Guest struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	BookingID uint     `json:"bookingId" gorm:"index"`
	Booking   *Booking `json:"-" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`

	FullName    string `json:"fullName"`
	IsMainGuest bool   `json:"isMainGuest" gorm:"default:false"`

	Email string `json:"email"`
	Phone string `json:"phone"`

	DateOfBirth    *time.Time `json:"dateOfBirth" gorm:"type:date"`
	CountryOfBirth string     `json:"countryOfBirth"`
	City           string     `json:"city"`
	Region         string     `json:"region"`
	Gender         string     `json:"gender"`

	DocumentType           string     `json:"documentType"`
	IDNumber               string     `json:"idNumber"`
	DocumentIssueDate      *time.Time `json:"documentIssueDate" gorm:"type:date"`
	DocumentExpiryDate     *time.Time `json:"documentExpiryDate" gorm:"type:date"`
	DocumentIssuingCountry string     `json:"documentIssuingCountry"`

	Nationality string `json:"nationality"`
	Address     string `json:"address"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`

	LanguagePreference string          `json:"languagePreference"`
	SpecialRequests    string          `json:"specialRequests"`
	GuestNotes         string          `json:"guestNotes"`
	ExtraData          json.RawMessage `json:"extraData" gorm:"type:json"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
