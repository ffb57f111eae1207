package controllers

import (
	"errors"
	"time"

	"pms/config"
	"pms/dto"
	"pms/models"
	"pms/response"
	"pms/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetBookingGuests lists the guests registered on a booking.
func GetBookingGuests(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Guests").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, booking.Guests)
}

// GetGuestDetail returns one guest record.
func GetGuestDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var guest models.Guest
	if err := config.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, guest)
}

// UpdateGuest updates one guest's personal and document data. The main
// guest flag is managed through the booking update, not here.
func UpdateGuest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.GuestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var guest models.Guest
	if err := config.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	guest.FullName = req.FullName
	guest.Email = req.Email
	guest.Phone = req.Phone
	guest.CountryOfBirth = req.CountryOfBirth
	guest.City = req.City
	guest.Region = req.Region
	guest.Gender = req.Gender
	guest.DocumentType = req.DocumentType
	guest.IDNumber = req.IDNumber
	guest.DocumentIssuingCountry = req.DocumentIssuingCountry
	guest.Nationality = req.Nationality
	guest.Address = req.Address
	guest.ZipCode = req.ZipCode
	guest.Country = req.Country
	guest.LanguagePreference = req.LanguagePreference
	guest.SpecialRequests = req.SpecialRequests
	guest.GuestNotes = req.GuestNotes
	guest.ExtraData = req.ExtraData

	dates := []struct {
		raw    string
		target **time.Time
	}{
		{req.DateOfBirth, &guest.DateOfBirth},
		{req.DocumentIssueDate, &guest.DocumentIssueDate},
		{req.DocumentExpiryDate, &guest.DocumentExpiryDate},
	}
	for _, d := range dates {
		if d.raw == "" {
			*d.target = nil
			continue
		}
		parsed, err := utils.ParseDate(d.raw)
		if err != nil {
			response.ValidationError(c, "dates must be YYYY-MM-DD")
			return
		}
		*d.target = &parsed
	}

	if err := config.DB.Save(&guest).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, guest)
}

// DeleteGuest removes one guest from a booking. The last main guest
// cannot be removed.
func DeleteGuest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var guest models.Guest
	if err := config.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if guest.IsMainGuest {
		response.BadRequest(c, "Cannot delete the main guest; reassign it through the booking first")
		return
	}

	if err := config.DB.Delete(&guest).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}
