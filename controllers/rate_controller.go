package controllers

import (
	"log"
	"strconv"
	"time"

	"pms/config"
	"pms/dto"
	"pms/response"
	"pms/services"

	"github.com/gin-gonic/gin"
)

// GetRatesCalendar returns the month view of every property's rate cells,
// served cache-aside from redis.
func GetRatesCalendar(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		response.BadRequest(c, "year must be numeric")
		return
	}
	monthNum, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || monthNum < 1 || monthNum > 12 {
		response.BadRequest(c, "month must be between 1 and 12")
		return
	}
	month := time.Month(monthNum)

	cacheKey := services.RateCalendarCacheKey(year, month)
	var calendar []dto.PropertyCalendar

	if redisClient != nil {
		if err := services.GetFromRedis(config.Ctx, redisClient, cacheKey, &calendar); err == nil && len(calendar) > 0 {
			response.Success(c, calendar)
			return
		}
	}

	calendar, err = rateService.Calendar(year, month)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if redisClient != nil && len(calendar) > 0 {
		if err := services.SetToRedis(config.Ctx, redisClient, cacheKey, calendar, 15*time.Minute); err != nil {
			log.Printf("error caching rates calendar: %v", err)
		}
	}

	response.Success(c, calendar)
}

// BulkPriceChange applies a price change over a date range, optionally
// restricted to selected weekdays.
func BulkPriceChange(c *gin.Context) {
	var req dto.BulkPriceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := rateService.BulkPriceChange(req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()

	response.Success(c, result)
}

// UpdateSingleRate upserts one rate cell: 201 when the cell was created,
// 200 when an existing one was updated.
func UpdateSingleRate(c *gin.Context) {
	var req dto.SingleRateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	rate, created, err := rateService.UpdateSingle(req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()

	detail, err := rateService.GetByID(rate.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if created {
		response.Created(c, toRateDetailResponse(detail))
		return
	}
	response.Success(c, toRateDetailResponse(detail))
}
