package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"pms/dto"
	apperrors "pms/errors"
	"pms/models"
	"pms/services/logger"
	"pms/utils"
	"pms/validator"
)

// BookingService owns the booking ledger: every create, update, split and
// delete goes through here so the rate synchronization and the overlap
// checks share one transaction boundary.
type BookingService struct {
	db  *gorm.DB
	log logger.Logger
}

type BookingServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &BookingService{db: opts.DB, log: l}
}

// lockProperty serializes concurrent booking mutations on the same
// property for the rest of the transaction. Advisory locks only exist on
// postgres; other dialects (sqlite in tests) skip it.
func lockProperty(tx *gorm.DB, propertyID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(propertyID)).Error
}

func findProperty(tx *gorm.DB, propertyID uint) (*models.Property, error) {
	var property models.Property
	if err := tx.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodePropertyNotFound, "Property not found", nil)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load property", err)
	}
	return &property, nil
}

// Create validates and persists a new booking, then books its rate cells.
func (s *BookingService) Create(req dto.BookingRequest) (*models.Booking, error) {
	checkIn, checkOut, err := parseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockProperty(tx, req.PropertyID); err != nil {
			return err
		}
		property, err := findProperty(tx, req.PropertyID)
		if err != nil {
			return err
		}
		if err := validator.ValidateBooking(tx, req.PropertyID, checkIn, checkOut, req.Guests, 0); err != nil {
			return err
		}

		booking = models.Booking{
			PropertyID:   property.ID,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
		}
		applyBookingRequest(&booking, req)
		denormalizeBookingRefs(&booking, property)

		if err := tx.Create(&booking).Error; err != nil {
			return translateBookingWriteError(err)
		}

		for _, payload := range req.Guests {
			guest, err := guestFromPayload(payload, booking.ID)
			if err != nil {
				return err
			}
			if err := tx.Create(guest).Error; err != nil {
				return err
			}
		}

		return SyncRatesForBooking(tx, &booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking %d created on property %d (%s -> %s)",
		booking.ID, booking.PropertyID, utils.FormatDate(checkIn), utils.FormatDate(checkOut))
	return s.GetByID(booking.ID)
}

// Update validates and persists changes to an existing booking. When the
// property, the dates or the base price changed, the whole new date range
// is resynchronized (old cells are released first on property/date moves).
func (s *BookingService) Update(id uint, req dto.BookingRequest) (*models.Booking, error) {
	checkIn, checkOut, err := parseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockProperty(tx, req.PropertyID); err != nil {
			return err
		}

		var booking models.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeBookingNotFound, "Booking not found", nil)
			}
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load booking", err)
		}

		property, err := findProperty(tx, req.PropertyID)
		if err != nil {
			return err
		}
		if err := validator.ValidateBooking(tx, req.PropertyID, checkIn, checkOut, req.Guests, booking.ID); err != nil {
			return err
		}

		rangeMoved := booking.PropertyID != req.PropertyID ||
			!booking.CheckInDate.Equal(checkIn) ||
			!booking.CheckOutDate.Equal(checkOut)
		priceChanged := booking.BasePrice != req.BasePrice

		booking.PropertyID = property.ID
		booking.CheckInDate = checkIn
		booking.CheckOutDate = checkOut
		applyBookingRequest(&booking, req)
		denormalizeBookingRefs(&booking, property)

		if err := tx.Save(&booking).Error; err != nil {
			return translateBookingWriteError(err)
		}

		if req.Guests != nil {
			if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.Guest{}).Error; err != nil {
				return err
			}
			for _, payload := range req.Guests {
				guest, err := guestFromPayload(payload, booking.ID)
				if err != nil {
					return err
				}
				if err := tx.Create(guest).Error; err != nil {
					return err
				}
			}
		}

		if rangeMoved {
			if err := ReleaseRatesForBooking(tx, booking.ID); err != nil {
				return err
			}
		}
		if rangeMoved || priceChanged {
			return SyncRatesForBooking(tx, &booking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking %d updated", id)
	return s.GetByID(id)
}

// Delete removes a booking after releasing the rate cells it occupies.
// Rate rows are never deleted, only unbooked.
func (s *BookingService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeBookingNotFound, "Booking not found", nil)
			}
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load booking", err)
		}
		if err := ReleaseRatesForBooking(tx, booking.ID); err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.Guest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})
	if err != nil {
		return err
	}
	s.log.Info("booking %d deleted, rate cells released", id)
	return nil
}

// Split divides a booking into two contiguous bookings at splitDate. The
// tail segment goes to newPropertyID when given, otherwise it stays on the
// original property. All-or-nothing: the overlap check runs before any
// write and every write happens in one transaction.
func (s *BookingService) Split(id uint, splitDate time.Time, newPropertyID *uint) (*models.Booking, *models.Booking, error) {
	var originalID, createdID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Preload("Guests").First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeBookingNotFound, "Booking not found", nil)
			}
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load booking", err)
		}

		if !booking.CheckInDate.Before(splitDate) || !splitDate.Before(booking.CheckOutDate) {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidSplitDate,
				"Split date must be within the original date range", nil)
		}

		targetPropertyID := booking.PropertyID
		if newPropertyID != nil {
			targetPropertyID = *newPropertyID
		}
		if err := lockProperty(tx, targetPropertyID); err != nil {
			return err
		}
		targetProperty, err := findProperty(tx, targetPropertyID)
		if err != nil {
			return err
		}

		originalCheckout := booking.CheckOutDate

		// Read-only conflict check on the tail segment's new home, before
		// any write.
		var others []models.Booking
		if err := tx.Select("id", "check_in_date", "check_out_date").
			Where("property_id = ? AND id <> ?", targetPropertyID, booking.ID).
			Find(&others).Error; err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to check existing bookings", err)
		}
		for _, other := range others {
			if utils.Overlaps(splitDate, originalCheckout, other.CheckInDate, other.CheckOutDate) {
				return apperrors.NewAppError(apperrors.ErrCodeDoubleBooking,
					"This property is already booked for the selected dates", nil)
			}
		}

		// Shrink the original to [check_in, split).
		booking.CheckOutDate = splitDate
		booking.LengthOfStay = utils.DaysBetween(booking.CheckInDate, splitDate)
		if err := tx.Save(&booking).Error; err != nil {
			return translateBookingWriteError(err)
		}

		// The tail segment copies everything but identity and dates.
		tail := booking
		tail.ID = 0
		tail.UID = uuid.Nil
		tail.PropertyID = targetProperty.ID
		tail.CheckInDate = splitDate
		tail.CheckOutDate = originalCheckout
		tail.LengthOfStay = utils.DaysBetween(splitDate, originalCheckout)
		tail.CreatedAt = time.Time{}
		tail.UpdatedAt = time.Time{}
		tail.Guests = nil
		denormalizeBookingRefs(&tail, targetProperty)
		if err := tx.Create(&tail).Error; err != nil {
			return translateBookingWriteError(err)
		}

		// Guests are duplicated, not moved: both fragments keep a full
		// guest list of their own.
		for _, guest := range booking.Guests {
			copied := guest
			copied.ID = 0
			copied.BookingID = tail.ID
			copied.CreatedAt = time.Time{}
			copied.UpdatedAt = time.Time{}
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}
		}

		// When the tail moves to another property, the original
		// property's cells for the tail nights would keep pointing at
		// the shrunk booking. Release everything and resync the head;
		// on the same property the tail sync overwrites those cells.
		if tail.PropertyID != booking.PropertyID {
			if err := ReleaseRatesForBooking(tx, booking.ID); err != nil {
				return err
			}
		}
		if err := SyncRatesForBooking(tx, &booking); err != nil {
			return err
		}
		if err := SyncRatesForBooking(tx, &tail); err != nil {
			return err
		}

		originalID, createdID = booking.ID, tail.ID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	original, err := s.GetByID(originalID)
	if err != nil {
		return nil, nil, err
	}
	created, err := s.GetByID(createdID)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("booking %d split at %s into booking %d", originalID, utils.FormatDate(splitDate), createdID)
	return original, created, nil
}

// GetByID loads a booking with its property and guests.
func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Guests").Preload("Property").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeBookingNotFound, "Booking not found", nil)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load booking", err)
	}
	return &booking, nil
}

// GetByUID loads a booking by its public guest-facing token.
func (s *BookingService) GetByUID(uid uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Guests").Preload("Property").Where("uid = ?", uid).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeBookingNotFound, "Booking not found", nil)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load booking", err)
	}
	return &booking, nil
}

func parseStayDates(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDate(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid check-in date format, use YYYY-MM-DD", err)
	}
	checkOut, err := utils.ParseDate(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid check-out date format, use YYYY-MM-DD", err)
	}
	return checkIn, checkOut, nil
}

// applyBookingRequest copies the caller-settable fields. Derived fields
// (length of stay, structure/property type refs) are computed afterwards,
// never taken from input.
func applyBookingRequest(booking *models.Booking, req dto.BookingRequest) {
	booking.AdultsCount = req.AdultsCount
	booking.ChildrenCount = req.ChildrenCount
	booking.SpecialRequests = req.SpecialRequests
	booking.BasePrice = req.BasePrice
	booking.CleaningFee = req.CleaningFee
	booking.OtherExtraFees = req.OtherExtraFees
	booking.CityTax = req.CityTax
	booking.Subtotal = req.Subtotal
	booking.TotalPrice = req.TotalPrice
	if req.PaymentMethod != "" {
		booking.PaymentMethod = req.PaymentMethod
	}
	if req.PaymentStatus != "" {
		booking.PaymentStatus = req.PaymentStatus
	}
	booking.Platforms = pq.StringArray(req.Platforms)
	booking.PlatformReservationID = req.PlatformReservationID
	booking.DueAtProperty = req.DueAtProperty
	booking.ExternalReference = req.ExternalReference
	booking.InvoiceInfo = req.InvoiceInfo
}

func denormalizeBookingRefs(booking *models.Booking, property *models.Property) {
	booking.StructureID = property.StructureID
	propertyTypeID := property.PropertyTypeID
	booking.PropertyTypeID = &propertyTypeID
	booking.LengthOfStay = utils.DaysBetween(booking.CheckInDate, booking.CheckOutDate)
}

// translateBookingWriteError re-surfaces a storage-level duplicate caused
// by a race as the validation error the caller would have gotten if the
// conflicting write had landed first.
func translateBookingWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewAppError(apperrors.ErrCodeDoubleBooking,
			"This property is already booked for the selected dates", err)
	}
	return err
}

func guestFromPayload(payload dto.GuestPayload, bookingID uint) (*models.Guest, error) {
	guest := &models.Guest{
		BookingID:              bookingID,
		FullName:               payload.FullName,
		IsMainGuest:            payload.IsMainGuest,
		Email:                  payload.Email,
		Phone:                  payload.Phone,
		CountryOfBirth:         payload.CountryOfBirth,
		City:                   payload.City,
		Region:                 payload.Region,
		Gender:                 payload.Gender,
		DocumentType:           payload.DocumentType,
		IDNumber:               payload.IDNumber,
		DocumentIssuingCountry: payload.DocumentIssuingCountry,
		Nationality:            payload.Nationality,
		Address:                payload.Address,
		ZipCode:                payload.ZipCode,
		Country:                payload.Country,
		LanguagePreference:     payload.LanguagePreference,
		SpecialRequests:        payload.SpecialRequests,
		GuestNotes:             payload.GuestNotes,
		ExtraData:              payload.ExtraData,
	}

	for _, field := range []struct {
		raw  string
		dest **time.Time
	}{
		{payload.DateOfBirth, &guest.DateOfBirth},
		{payload.DocumentIssueDate, &guest.DocumentIssueDate},
		{payload.DocumentExpiryDate, &guest.DocumentExpiryDate},
	} {
		if field.raw == "" {
			continue
		}
		parsed, err := utils.ParseDate(field.raw)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid guest date format, use YYYY-MM-DD", err)
		}
		*field.dest = &parsed
	}

	return guest, nil
}
