package controllers

import (
	"pms/config"
	"pms/errors"
	"pms/response"
	"pms/services"
	"pms/services/logger"
	"pms/services/notification"
	"pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	bookingService      *services.BookingService
	rateService         *services.RateService
	availabilityService *services.AvailabilityService

	redisClient *redis.Client
	notifier    notification.Service
)

// Init wires the controllers to the shared components. Must run before
// routes are registered.
func Init(db *gorm.DB, rdb *redis.Client, m *melody.Melody) {
	l := logger.NewDefaultLogger(logger.InfoLevel)

	bookingService = services.NewBookingService(services.BookingServiceOptions{DB: db, Logger: l})
	rateService = services.NewRateService(services.RateServiceOptions{DB: db, Logger: l})
	availabilityService = services.NewAvailabilityService(services.AvailabilityServiceOptions{DB: db, Logger: l})

	redisClient = rdb
	if m != nil {
		notifier = notification.NewMelodyService(m)
	}
}

// handleServiceError maps an AppError onto the response envelope.
func handleServiceError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		utils.LogError("unexpected error: %v", err)
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodePropertyNotFound,
		errors.ErrCodeBookingNotFound,
		errors.ErrCodeBlockNotFound,
		errors.ErrCodeUserNotFound,
		errors.ErrCodeDBNotFound:
		response.NotFound(c)
	case errors.ErrCodeDoubleBooking,
		errors.ErrCodeDatesBlocked,
		errors.ErrCodeOverlappingBlock,
		errors.ErrCodeActiveBookingConflict,
		errors.ErrCodeInvalidDateRange,
		errors.ErrCodeNoPrimaryGuest,
		errors.ErrCodeMultiplePrimaryGuests,
		errors.ErrCodeInvalidSplitDate,
		errors.ErrCodeValidation,
		errors.ErrCodeRequiredField,
		errors.ErrCodeInvalidFormat:
		response.ValidationError(c, appErr.Message)
	case errors.ErrCodeUserExists, errors.ErrCodeDBDuplicate:
		response.Conflict(c)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
		response.Unauthorized(c)
	default:
		utils.LogError("service error [%s]: %v", appErr.Code, appErr)
		response.ServerError(c)
	}
}

// invalidateBookingCaches drops the booking list and calendar caches
// after any booking or rate mutation.
func invalidateBookingCaches() {
	if redisClient == nil {
		return
	}
	if err := services.DeleteFromRedis(config.Ctx, redisClient, services.BookingListCacheKey); err != nil {
		utils.LogError("error invalidating booking list cache: %v", err)
	}
	if err := services.DeleteByPattern(config.Ctx, redisClient, services.RateCalendarCachePrefix+"*"); err != nil {
		utils.LogError("error invalidating calendar cache: %v", err)
	}
}

func broadcastBookingEvent(event string, bookingID, propertyID uint, checkIn, checkOut string) {
	if notifier == nil {
		return
	}
	msg := notification.BuildBookingEvent(event, bookingID, propertyID, checkIn, checkOut)
	if err := notifier.SendMessage(msg); err != nil {
		utils.LogError("error broadcasting booking event: %v", err)
	}
}

func currentUserID(c *gin.Context) uint {
	v, exists := c.Get("userID")
	if !exists {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}
