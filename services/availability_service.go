package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pms/dto"
	apperrors "pms/errors"
	"pms/models"
	"pms/services/logger"
	"pms/utils"
	"pms/validator"
)

// AvailabilityService owns blocked periods: owner-declared date ranges a
// property cannot be booked in. The acting user is passed explicitly for
// the audit fields.
type AvailabilityService struct {
	db  *gorm.DB
	log logger.Logger
}

type AvailabilityServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewAvailabilityService(opts AvailabilityServiceOptions) *AvailabilityService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AvailabilityService{db: opts.DB, log: l}
}

// Create validates and persists a new blocked period.
func (s *AvailabilityService) Create(req dto.BlockedPeriodRequest, actorID uint) (*models.BlockedPeriod, error) {
	start, end, err := parseBlockDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var block models.BlockedPeriod
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockProperty(tx, req.PropertyID); err != nil {
			return err
		}
		property, err := findProperty(tx, req.PropertyID)
		if err != nil {
			return err
		}
		if err := validator.ValidateBlockedPeriod(tx, req.PropertyID, start, end, 0); err != nil {
			return err
		}

		block = models.BlockedPeriod{
			StructureID:    property.StructureID,
			PropertyTypeID: req.PropertyTypeID,
			PropertyID:     property.ID,
			StartDate:      start,
			EndDate:        end,
			Reason:         req.Reason,
			Notes:          req.Notes,
			CreatedByID:    &actorID,
			UpdatedByID:    &actorID,
		}
		return tx.Create(&block).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("blocked period %d created on property %d (%s -> %s)",
		block.ID, block.PropertyID, req.StartDate, req.EndDate)
	return &block, nil
}

// Update validates and persists changes to a blocked period, excluding it
// from its own overlap check.
func (s *AvailabilityService) Update(id uint, req dto.BlockedPeriodRequest, actorID uint) (*models.BlockedPeriod, error) {
	start, end, err := parseBlockDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var block models.BlockedPeriod
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&block, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewAppError(apperrors.ErrCodeBlockNotFound, "Blocked period not found", nil)
			}
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load blocked period", err)
		}
		if err := lockProperty(tx, req.PropertyID); err != nil {
			return err
		}
		property, err := findProperty(tx, req.PropertyID)
		if err != nil {
			return err
		}
		if err := validator.ValidateBlockedPeriod(tx, req.PropertyID, start, end, block.ID); err != nil {
			return err
		}

		block.StructureID = property.StructureID
		block.PropertyTypeID = req.PropertyTypeID
		block.PropertyID = property.ID
		block.StartDate = start
		block.EndDate = end
		block.Reason = req.Reason
		block.Notes = req.Notes
		block.UpdatedByID = &actorID
		return tx.Save(&block).Error
	})
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// Delete removes a blocked period outright; there is no soft delete.
func (s *AvailabilityService) Delete(id uint) error {
	result := s.db.Delete(&models.BlockedPeriod{}, id)
	if result.Error != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to delete blocked period", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeBlockNotFound, "Blocked period not found", nil)
	}
	s.log.Info("blocked period %d deleted", id)
	return nil
}

// GetByID loads one blocked period.
func (s *AvailabilityService) GetByID(id uint) (*models.BlockedPeriod, error) {
	var block models.BlockedPeriod
	if err := s.db.First(&block, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeBlockNotFound, "Blocked period not found", nil)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load blocked period", err)
	}
	return &block, nil
}

// List returns all blocked periods, newest range first.
func (s *AvailabilityService) List() ([]models.BlockedPeriod, error) {
	var blocks []models.BlockedPeriod
	if err := s.db.Order("start_date desc").Find(&blocks).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load blocked periods", err)
	}
	return blocks, nil
}

func parseBlockDates(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid start_date format, use YYYY-MM-DD", err)
	}
	end, err := utils.ParseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid end_date format, use YYYY-MM-DD", err)
	}
	return start, end, nil
}
