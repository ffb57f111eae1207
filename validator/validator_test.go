package validator

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

func setupDB(t *testing.T) *gorm.DB {
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

func seedProperty(t *testing.T, db *gorm.DB) models.Property {
	t.Helper()
	structure := models.Structure{Name: "Casa Bella"}
	if err := db.Create(&structure).Error; err != nil {
		t.Fatalf("seed structure: %v", err)
	}
	pt := models.PropertyType{StructureID: structure.ID, Name: "Double room"}
	if err := db.Create(&pt).Error; err != nil {
		t.Fatalf("seed property type: %v", err)
	}
	property := models.Property{StructureID: structure.ID, PropertyTypeID: pt.ID, Name: "Room 101"}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return property
}

func seedBooking(t *testing.T, db *gorm.DB, propertyID uint, checkIn, checkOut string) models.Booking {
	t.Helper()
	booking := models.Booking{
		PropertyID:   propertyID,
		CheckInDate:  mustDate(t, checkIn),
		CheckOutDate: mustDate(t, checkOut),
		LengthOfStay: utils.DaysBetween(mustDate(t, checkIn), mustDate(t, checkOut)),
		AdultsCount:  2,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
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

func TestValidateBookingDatesRejectsInvertedRange(t *testing.T) {
	db := setupDB(t)
	property := seedProperty(t, db)

	err := ValidateBookingDates(db, property.ID, mustDate(t, "2026-03-05"), mustDate(t, "2026-03-05"), 0)
	assertCode(t, err, errors.ErrCodeInvalidDateRange)

	err = ValidateBookingDates(db, property.ID, mustDate(t, "2026-03-05"), mustDate(t, "2026-03-01"), 0)
	assertCode(t, err, errors.ErrCodeInvalidDateRange)
}

func TestValidateBookingDatesRejectsOverlap(t *testing.T) {
	db := setupDB(t)
	property := seedProperty(t, db)
	seedBooking(t, db, property.ID, "2026-03-01", "2026-03-05")

	err := ValidateBookingDates(db, property.ID, mustDate(t, "2026-03-03"), mustDate(t, "2026-03-07"), 0)
	assertCode(t, err, errors.ErrCodeDoubleBooking)
}

func TestValidateBookingDatesAllowsBackToBack(t *testing.T) {
	db := setupDB(t)
	property := seedProperty(t, db)
	seedBooking(t, db, property.ID, "2026-03-01", "2026-03-05")

	if err := ValidateBookingDates(db, property.ID, mustDate(t, "2026-03-05"), mustDate(t, "2026-03-08"), 0); err != nil {
		t.Fatalf("back-to-back booking rejected: %v", err)
	}
}

func TestValidateBookingDatesSkipsSelfOnUpdate(t *testing.T) {
	db := setupDB(t)
	property := seedProperty(t, db)
	booking := seedBooking(t, db, property.ID, "2026-03-01", "2026-03-05")

	if err := ValidateBookingDates(db, property.ID, mustDate(t, "2026-03-02"), mustDate(t, "2026-03-06"), booking.ID); err != nil {
		t.Fatalf("update conflicting with itself: %v", err)
	}
}

func TestValidateBookingDatesRejectsBlockedDates(t *testing.T) {
	db := setupDB(t)
	property := seedProperty(t, db)
	block := models.BlockedPeriod{
		StructureID: property.StructureID,
		PropertyID:  property.ID,
		StartDate:   mustDate(t, "2026-03-10"),
		EndDate:     mustDate(t, "2026-03-15"),
		Reason:      "maintenance",
	}
	if err := db.Create(&block).Error; err != nil {
		t.Fatalf("seed block: %v", err)
	}

	err := ValidateBookingDates(db, property.ID, mustDate(t, "2026-03-12"), mustDate(t, "2026-03-14"), 0)
	assertCode(t, err, errors.ErrCodeDatesBlocked)

	// A stay ending exactly where the block starts is fine.
	if err := ValidateBookingDates(db, property.ID, mustDate(t, "2026-03-08"), mustDate(t, "2026-03-10"), 0); err != nil {
		t.Fatalf("stay ending at block start rejected: %v", err)
	}
}

func TestValidateGuests(t *testing.T) {
	if err := ValidateGuests(nil); err != nil {
		t.Fatalf("empty guest list rejected: %v", err)
	}

	err := ValidateGuests([]dto.GuestPayload{{FullName: "Anna Rossi"}})
	assertCode(t, err, errors.ErrCodeNoPrimaryGuest)

	err = ValidateGuests([]dto.GuestPayload{
		{FullName: "Anna Rossi", IsMainGuest: true},
		{FullName: "Marco Rossi", IsMainGuest: true},
	})
	assertCode(t, err, errors.ErrCodeMultiplePrimaryGuests)

	if err := ValidateGuests([]dto.GuestPayload{
		{FullName: "Anna Rossi", IsMainGuest: true},
		{FullName: "Marco Rossi"},
	}); err != nil {
		t.Fatalf("valid guest list rejected: %v", err)
	}
}

func TestValidateBlockedPeriod(t *testing.T) {
	db := setupDB(t)
	property := seedProperty(t, db)

	err := ValidateBlockedPeriod(db, property.ID, mustDate(t, "2026-04-10"), mustDate(t, "2026-04-10"), 0)
	assertCode(t, err, errors.ErrCodeInvalidDateRange)

	block := models.BlockedPeriod{
		StructureID: property.StructureID,
		PropertyID:  property.ID,
		StartDate:   mustDate(t, "2026-04-01"),
		EndDate:     mustDate(t, "2026-04-05"),
	}
	if err := db.Create(&block).Error; err != nil {
		t.Fatalf("seed block: %v", err)
	}

	err = ValidateBlockedPeriod(db, property.ID, mustDate(t, "2026-04-03"), mustDate(t, "2026-04-08"), 0)
	assertCode(t, err, errors.ErrCodeOverlappingBlock)

	// Updating the block itself against its own range passes.
	if err := ValidateBlockedPeriod(db, property.ID, mustDate(t, "2026-04-02"), mustDate(t, "2026-04-06"), block.ID); err != nil {
		t.Fatalf("block update conflicting with itself: %v", err)
	}

	seedBooking(t, db, property.ID, "2026-04-10", "2026-04-15")
	err = ValidateBlockedPeriod(db, property.ID, mustDate(t, "2026-04-12"), mustDate(t, "2026-04-20"), 0)
	assertCode(t, err, errors.ErrCodeActiveBookingConflict)
}
