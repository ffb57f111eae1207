package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pms/models"
	"pms/utils"
)

// SyncRatesForBooking pushes a booking's price and occupancy onto every
// rate cell in [check_in, check_out). Cells are created when missing and
// updated idempotently, one date at a time, inside the caller's
// transaction.
func SyncRatesForBooking(tx *gorm.DB, booking *models.Booking) error {
	for _, day := range utils.DatesBetween(booking.CheckInDate, booking.CheckOutDate) {
		if err := upsertBookedRateCell(tx, booking, day); err != nil {
			return err
		}
	}
	return nil
}

func upsertBookedRateCell(tx *gorm.DB, booking *models.Booking, day time.Time) error {
	bookedFields := map[string]interface{}{
		"base_price":     booking.BasePrice,
		"is_booked":      true,
		"booking_ref_id": booking.ID,
	}

	var rate models.Rate
	err := tx.Where("property_id = ? AND date = ?", booking.PropertyID, day).First(&rate).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rate = models.Rate{
			PropertyID:   booking.PropertyID,
			Date:         day,
			BasePrice:    booking.BasePrice,
			MinNights:    1,
			BookingRefID: &booking.ID,
			IsBooked:     true,
		}
		if err := tx.Create(&rate).Error; err != nil {
			// A concurrent writer may have created the cell between the
			// lookup and the insert; fall back to an update.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Model(&models.Rate{}).
					Where("property_id = ? AND date = ?", booking.PropertyID, day).
					Updates(bookedFields).Error
			}
			return err
		}
		return nil
	case err != nil:
		return err
	default:
		return tx.Model(&rate).Updates(bookedFields).Error
	}
}

// ReleaseRatesForBooking unlinks every rate cell occupied by the booking.
// Cells are kept (pricing history survives), only unbooked. Mandatory
// post-condition of every booking deletion.
func ReleaseRatesForBooking(tx *gorm.DB, bookingID uint) error {
	return tx.Model(&models.Rate{}).
		Where("booking_ref_id = ?", bookingID).
		Updates(map[string]interface{}{
			"booking_ref_id": nil,
			"is_booked":      false,
		}).Error
}
