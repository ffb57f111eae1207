package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"pms/constants"
	"pms/dto"
	apperrors "pms/errors"
	"pms/models"
	"pms/services/logger"
	"pms/utils"
)

// RateService owns the rate calendar: the month view, bulk price changes
// and the simplified single-cell update.
type RateService struct {
	db  *gorm.DB
	log logger.Logger
}

type RateServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewRateService(opts RateServiceOptions) *RateService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &RateService{db: opts.DB, log: l}
}

// Calendar returns every property's rate cells for the given month,
// grouped per property and ordered by date.
func (s *RateService) Calendar(year int, month time.Month) ([]dto.PropertyCalendar, error) {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)

	var rates []models.Rate
	if err := s.db.Preload("Property").
		Where("date >= ? AND date <= ?", firstDay, lastDay).
		Order("property_id, date").
		Find(&rates).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load rates", err)
	}

	byProperty := make(map[uint]*dto.PropertyCalendar)
	var ordered []uint
	for _, rate := range rates {
		entry, ok := byProperty[rate.PropertyID]
		if !ok {
			entry = &dto.PropertyCalendar{
				PropertyID:   rate.PropertyID,
				PropertyName: rate.Property.Name,
				PropertyType: rate.Property.PropertyTypeID,
				StructureID:  rate.Property.StructureID,
			}
			byProperty[rate.PropertyID] = entry
			ordered = append(ordered, rate.PropertyID)
		}
		entry.Rates = append(entry.Rates, dto.RateItem{
			Date:      utils.FormatDate(rate.Date),
			MinNights: rate.MinNights,
			BasePrice: rate.BasePrice,
			Airbnb:    rate.Airbnb,
			Booking:   rate.Booking,
			Expedia:   rate.Experia,
			IsBooked:  rate.IsBooked,
			BookingID: rate.BookingRefID,
		})
	}

	result := make([]dto.PropertyCalendar, 0, len(ordered))
	for _, id := range ordered {
		result = append(result, *byProperty[id])
	}
	return result, nil
}

// BulkPriceChange upserts a rate cell for every date in [start, end]
// matching the weekday filter, for every selected property. Only price
// fields are written: existing is_booked/booking_ref values survive.
func (s *RateService) BulkPriceChange(req dto.BulkPriceChangeRequest) (*dto.BulkPriceChangeResult, error) {
	propertyIDs, err := resolveBulkProperties(req)
	if err != nil {
		return nil, err
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid start_date format, use YYYY-MM-DD", err)
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid end_date format, use YYYY-MM-DD", err)
	}
	if end.Before(start) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidDateRange, "end_date must be on or after start_date", nil)
	}

	selectedWeekdays := make(map[int]bool, len(req.Weekdays))
	for _, name := range req.Weekdays {
		idx, ok := constants.WeekdayIndex[name]
		if !ok {
			return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Unknown weekday: "+name, nil)
		}
		selectedWeekdays[idx] = true
	}

	priceFields := map[string]interface{}{
		"base_price": req.BasePrice,
		"min_nights": req.MinNights,
		"booking":    roundPrice(req.BasePrice * (1 + req.BookingPct/100)),
		"airbnb":     roundPrice(req.BasePrice * (1 + req.AirbnbPct/100)),
		"experia":    roundPrice(req.BasePrice * (1 + req.ExperiaPct/100)),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, propertyID := range propertyIDs {
			if _, err := findProperty(tx, propertyID); err != nil {
				return err
			}
			for _, day := range utils.DatesBetweenInclusive(start, end) {
				if len(selectedWeekdays) > 0 && !selectedWeekdays[utils.MondayWeekday(day)] {
					continue
				}
				if err := upsertRatePrices(tx, propertyID, day, priceFields); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bulk price change applied to %d properties (%s -> %s)",
		len(propertyIDs), req.StartDate, req.EndDate)
	return &dto.BulkPriceChangeResult{
		Message:         fmt.Sprintf("Successfully updated rates for %d properties", len(propertyIDs)),
		PropertiesCount: len(propertyIDs),
		DateRange:       fmt.Sprintf("%s to %s", req.StartDate, req.EndDate),
	}, nil
}

// UpdateSingle upserts one cell's base price and minimum nights. When the
// cell is booked, the new price is pushed onto the linked booking with a
// direct column update so the rate synchronization does not re-trigger.
func (s *RateService) UpdateSingle(req dto.SingleRateUpdateRequest) (*models.Rate, bool, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, false, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid date format, use YYYY-MM-DD", err)
	}

	var rate models.Rate
	var created bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findProperty(tx, req.PropertyID); err != nil {
			return err
		}

		err := tx.Where("property_id = ? AND date = ?", req.PropertyID, date).First(&rate).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rate = models.Rate{
				PropertyID: req.PropertyID,
				Date:       date,
				BasePrice:  req.BasePrice,
				MinNights:  req.MinNights,
			}
			created = true
			return tx.Create(&rate).Error
		case err != nil:
			return err
		}

		if err := tx.Model(&rate).Updates(map[string]interface{}{
			"base_price": req.BasePrice,
			"min_nights": req.MinNights,
		}).Error; err != nil {
			return err
		}

		if rate.IsBooked && rate.BookingRefID != nil {
			return tx.Model(&models.Booking{}).
				Where("id = ?", *rate.BookingRefID).
				Update("base_price", req.BasePrice).Error
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &rate, created, nil
}

// GetByID loads one rate cell with its property.
func (s *RateService) GetByID(id uint) (*models.Rate, error) {
	var rate models.Rate
	if err := s.db.Preload("Property").First(&rate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Rate not found", nil)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load rate", err)
	}
	return &rate, nil
}

func resolveBulkProperties(req dto.BulkPriceChangeRequest) ([]uint, error) {
	single := req.PropertyID != nil
	multiple := len(req.PropertyIDs) > 0

	if !single && !multiple {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation,
			"Either 'property' or 'properties' must be provided", nil)
	}
	if single && multiple {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation,
			"Cannot provide both 'property' and 'properties'. Use 'properties' only", nil)
	}
	if single {
		return []uint{*req.PropertyID}, nil
	}

	seen := make(map[uint]bool, len(req.PropertyIDs))
	for _, id := range req.PropertyIDs {
		if seen[id] {
			return nil, apperrors.NewAppError(apperrors.ErrCodeValidation,
				"Duplicate properties are not allowed", nil)
		}
		seen[id] = true
	}
	return req.PropertyIDs, nil
}

// upsertRatePrices writes price fields only; occupancy fields on existing
// cells are left alone.
func upsertRatePrices(tx *gorm.DB, propertyID uint, day time.Time, priceFields map[string]interface{}) error {
	var rate models.Rate
	err := tx.Where("property_id = ? AND date = ?", propertyID, day).First(&rate).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rate = models.Rate{
			PropertyID: propertyID,
			Date:       day,
			BasePrice:  priceFields["base_price"].(float64),
			MinNights:  priceFields["min_nights"].(int),
			Booking:    priceFields["booking"].(float64),
			Airbnb:     priceFields["airbnb"].(float64),
			Experia:    priceFields["experia"].(float64),
		}
		if err := tx.Create(&rate).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Model(&models.Rate{}).
					Where("property_id = ? AND date = ?", propertyID, day).
					Updates(priceFields).Error
			}
			return err
		}
		return nil
	case err != nil:
		return err
	default:
		return tx.Model(&rate).Updates(priceFields).Error
	}
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
