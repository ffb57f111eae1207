package controllers

import (
	"strconv"

	"pms/dto"
	"pms/response"

	"github.com/gin-gonic/gin"
)

// CreateBlockedPeriod blocks a property's dates against new bookings.
func CreateBlockedPeriod(c *gin.Context) {
	var req dto.BlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	block, err := availabilityService.Create(req, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()

	response.Created(c, toBlockedPeriodResponse(block))
}

// GetBlockedPeriods lists every blocked period.
func GetBlockedPeriods(c *gin.Context) {
	blocks, err := availabilityService.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]dto.BlockedPeriodResponse, 0, len(blocks))
	for i := range blocks {
		items = append(items, toBlockedPeriodResponse(&blocks[i]))
	}

	response.Success(c, items)
}

// GetBlockedPeriodDetail returns one blocked period.
func GetBlockedPeriodDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return
	}

	block, err := availabilityService.GetByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, toBlockedPeriodResponse(block))
}

// UpdateBlockedPeriod handles both PUT and PATCH.
func UpdateBlockedPeriod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return
	}

	var req dto.BlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	block, err := availabilityService.Update(uint(id), req, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()

	response.Success(c, toBlockedPeriodResponse(block))
}

// DeleteBlockedPeriod removes a blocked period.
func DeleteBlockedPeriod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return
	}

	if err := availabilityService.Delete(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()

	response.Success(c, gin.H{"deleted": id})
}
