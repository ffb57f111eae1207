package validator

import (
	"time"

	"gorm.io/gorm"

	"pms/dto"
	"pms/errors"
	"pms/models"
	"pms/utils"
)

// ValidateBookingDates gates every booking create/update. excludeID is the
// booking being updated (0 on create) and is skipped in the overlap checks
// so a booking never conflicts with itself.
func ValidateBookingDates(db *gorm.DB, propertyID uint, checkIn, checkOut time.Time, excludeID uint) error {
	if !checkOut.After(checkIn) {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange,
			"Check-out date must be after check-in date", nil)
	}

	var bookings []models.Booking
	query := db.Select("id", "check_in_date", "check_out_date").
		Where("property_id = ?", propertyID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&bookings).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to check existing bookings", err)
	}
	for _, b := range bookings {
		if utils.Overlaps(checkIn, checkOut, b.CheckInDate, b.CheckOutDate) {
			return errors.NewAppError(errors.ErrCodeDoubleBooking,
				"This property is already booked for the selected dates", nil)
		}
	}

	var blocks []models.BlockedPeriod
	if err := db.Select("id", "start_date", "end_date").
		Where("property_id = ?", propertyID).
		Find(&blocks).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to check blocked periods", err)
	}
	for _, blk := range blocks {
		if utils.Overlaps(checkIn, checkOut, blk.StartDate, blk.EndDate) {
			return errors.NewAppError(errors.ErrCodeDatesBlocked,
				"This property is blocked for the selected dates", nil)
		}
	}

	return nil
}

// ValidateGuests enforces the primary-guest rule: a non-empty guest list
// must contain exactly one main guest.
func ValidateGuests(guests []dto.GuestPayload) error {
	if len(guests) == 0 {
		return nil
	}
	primary := 0
	for _, g := range guests {
		if g.IsMainGuest {
			primary++
		}
	}
	if primary == 0 {
		return errors.NewAppError(errors.ErrCodeNoPrimaryGuest,
			"At least one main guest is required", nil)
	}
	if primary > 1 {
		return errors.NewAppError(errors.ErrCodeMultiplePrimaryGuests,
			"Only one main guest is allowed", nil)
	}
	return nil
}

// ValidateBooking runs the full create/update gate: date sanity, double
// booking, blocked dates, guest flags.
func ValidateBooking(db *gorm.DB, propertyID uint, checkIn, checkOut time.Time, guests []dto.GuestPayload, excludeID uint) error {
	if err := ValidateBookingDates(db, propertyID, checkIn, checkOut, excludeID); err != nil {
		return err
	}
	return ValidateGuests(guests)
}

// ValidateBlockedPeriod gates blocked period create/update: the candidate
// range must be sane, must not overlap another block on the same property
// (excluding itself on update) and must not overlap any existing booking.
func ValidateBlockedPeriod(db *gorm.DB, propertyID uint, start, end time.Time, excludeID uint) error {
	if !start.Before(end) {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange,
			"End date must be after start date", nil)
	}

	var blocks []models.BlockedPeriod
	query := db.Select("id", "start_date", "end_date").
		Where("property_id = ?", propertyID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&blocks).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to check blocked periods", err)
	}
	for _, blk := range blocks {
		if utils.Overlaps(start, end, blk.StartDate, blk.EndDate) {
			return errors.NewAppError(errors.ErrCodeOverlappingBlock,
				"These dates are already blocked for this property", nil)
		}
	}

	var bookings []models.Booking
	if err := db.Select("id", "check_in_date", "check_out_date").
		Where("property_id = ?", propertyID).
		Find(&bookings).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to check existing bookings", err)
	}
	for _, b := range bookings {
		if utils.Overlaps(start, end, b.CheckInDate, b.CheckOutDate) {
			return errors.NewAppError(errors.ErrCodeActiveBookingConflict,
				"Cannot block these dates because the property has active bookings", nil)
		}
	}

	return nil
}
