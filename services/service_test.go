package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pms/dto"
	"pms/errors"
	"pms/models"
	"pms/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Structure{},
		&models.PropertyType{},
		&models.Property{},
		&models.Booking{},
		&models.Guest{},
		&models.Rate{},
		&models.BlockedPeriod{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %s: %v", value, err)
	}
	return d
}

// seedProperty creates a structure, a property type and one property.
func seedProperty(t *testing.T, db *gorm.DB, name string) models.Property {
	t.Helper()
	structure := models.Structure{Name: "Casa Bella"}
	if err := db.Create(&structure).Error; err != nil {
		t.Fatalf("seed structure: %v", err)
	}
	pt := models.PropertyType{StructureID: structure.ID, Name: "Double room"}
	if err := db.Create(&pt).Error; err != nil {
		t.Fatalf("seed property type: %v", err)
	}
	property := models.Property{StructureID: structure.ID, PropertyTypeID: pt.ID, Name: name}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return property
}

// seedSibling creates a second property under the same structure and type.
func seedSibling(t *testing.T, db *gorm.DB, base models.Property, name string) models.Property {
	t.Helper()
	property := models.Property{
		StructureID:    base.StructureID,
		PropertyTypeID: base.PropertyTypeID,
		Name:           name,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("seed sibling property: %v", err)
	}
	return property
}

func newBookingRequest(propertyID uint, checkIn, checkOut string, basePrice float64) dto.BookingRequest {
	return dto.BookingRequest{
		PropertyID:   propertyID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		AdultsCount:  2,
		BasePrice:    basePrice,
		TotalPrice:   basePrice,
		Guests: []dto.GuestPayload{
			{FullName: "Anna Rossi", IsMainGuest: true},
			{FullName: "Marco Rossi"},
		},
	}
}

func newBookingService(db *gorm.DB) *BookingService {
	return NewBookingService(BookingServiceOptions{DB: db})
}

func newRateService(db *gorm.DB) *RateService {
	return NewRateService(RateServiceOptions{DB: db})
}

func newAvailabilityService(db *gorm.DB) *AvailabilityService {
	return NewAvailabilityService(AvailabilityServiceOptions{DB: db})
}

func loadRates(t *testing.T, db *gorm.DB, propertyID uint) []models.Rate {
	t.Helper()
	var rates []models.Rate
	if err := db.Where("property_id = ?", propertyID).Order("date").Find(&rates).Error; err != nil {
		t.Fatalf("load rates: %v", err)
	}
	return rates
}

func assertCode(t *testing.T, err error, want errors.ErrorCode) {
	t.Helper()
	appErr := errors.GetAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError %s, got %v", want, err)
	}
	if appErr.Code != want {
		t.Fatalf("error code = %s, want %s", appErr.Code, want)
	}
}
