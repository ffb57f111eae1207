package controllers

import (
	"errors"
	"strconv"

	"pms/config"
	"pms/constants"
	"pms/dto"
	"pms/models"
	"pms/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return 0, false
	}
	return uint(id), true
}

// --- Structures ---

func CreateStructure(c *gin.Context) {
	var req dto.StructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	structure := models.Structure{
		UserID:  currentUserID(c),
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	}
	if req.Status != "" {
		structure.Status = req.Status
	}

	if err := config.DB.Create(&structure).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Created(c, structure)
}

func GetStructures(c *gin.Context) {
	var structures []models.Structure
	if err := config.DB.Preload("PropertyTypes").Preload("Properties").Find(&structures).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, structures)
}

func GetStructureDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var structure models.Structure
	if err := config.DB.Preload("PropertyTypes").Preload("Properties").First(&structure, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, structure)
}

func UpdateStructure(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.StructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var structure models.Structure
	if err := config.DB.First(&structure, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	structure.Name = req.Name
	structure.Address = req.Address
	structure.City = req.City
	structure.Country = req.Country
	if req.Status != "" {
		structure.Status = req.Status
	}

	if err := config.DB.Save(&structure).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, structure)
}

func DeleteStructure(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Structure{}, id)
	if result.Error != nil {
		response.ServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// --- Property types ---

func CreatePropertyType(c *gin.Context) {
	var req dto.PropertyTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	pt := models.PropertyType{
		StructureID:            req.StructureID,
		Name:                   req.Name,
		InternalPropertyTypeID: req.InternalPropertyTypeID,
		ImageURL:               req.ImageURL,
		PropertySizeSqm:        req.PropertySizeSqm,
		MaxGuests:              req.MaxGuests,
		NumBeds:                req.NumBeds,
		NumSofaBeds:            req.NumSofaBeds,
		NumBedrooms:            req.NumBedrooms,
		NumBathrooms:           req.NumBathrooms,
		Amenities:              req.Amenities,
	}
	if req.Status != 0 {
		pt.Status = req.Status
	}

	if err := config.DB.Create(&pt).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Created(c, pt)
}

func GetPropertyTypes(c *gin.Context) {
	var types []models.PropertyType
	query := config.DB
	if structureParam := c.Query("structure"); structureParam != "" {
		query = query.Where("structure_id = ?", structureParam)
	}
	if err := query.Find(&types).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, types)
}

func GetPropertyTypeDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var pt models.PropertyType
	if err := config.DB.First(&pt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, pt)
}

func UpdatePropertyType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.PropertyTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var pt models.PropertyType
	if err := config.DB.First(&pt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	pt.StructureID = req.StructureID
	pt.Name = req.Name
	pt.InternalPropertyTypeID = req.InternalPropertyTypeID
	pt.ImageURL = req.ImageURL
	pt.PropertySizeSqm = req.PropertySizeSqm
	pt.MaxGuests = req.MaxGuests
	pt.NumBeds = req.NumBeds
	pt.NumSofaBeds = req.NumSofaBeds
	pt.NumBedrooms = req.NumBedrooms
	pt.NumBathrooms = req.NumBathrooms
	pt.Amenities = req.Amenities
	if req.Status != 0 {
		pt.Status = req.Status
	}

	if err := config.DB.Save(&pt).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, pt)
}

func DeletePropertyType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.PropertyType{}, id)
	if result.Error != nil {
		response.ServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// --- Properties ---

func CreateProperty(c *gin.Context) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	property := models.Property{
		StructureID:        req.StructureID,
		PropertyTypeID:     req.PropertyTypeID,
		Name:               req.Name,
		InternalPropertyID: req.InternalPropertyID,
		FloorNumber:        req.FloorNumber,
		Amenities:          req.Amenities,
		Status:             constants.PropertyStatusUnmapped,
	}
	if req.Status != 0 {
		property.Status = req.Status
	}
	if err := property.ValidateStatus(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Create(&property).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Created(c, property)
}

func GetProperties(c *gin.Context) {
	var properties []models.Property
	query := config.DB.Preload("PropertyType")
	if structureParam := c.Query("structure"); structureParam != "" {
		query = query.Where("structure_id = ?", structureParam)
	}
	if err := query.Find(&properties).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, properties)
}

func GetPropertyDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var property models.Property
	if err := config.DB.Preload("PropertyType").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, property)
}

func UpdateProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var property models.Property
	if err := config.DB.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	property.StructureID = req.StructureID
	property.PropertyTypeID = req.PropertyTypeID
	property.Name = req.Name
	property.InternalPropertyID = req.InternalPropertyID
	property.FloorNumber = req.FloorNumber
	property.Amenities = req.Amenities
	if req.Status != 0 {
		property.Status = req.Status
	}
	if err := property.ValidateStatus(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Save(&property).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateBookingCaches()

	response.Success(c, property)
}

func DeleteProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Property{}, id)
	if result.Error != nil {
		response.ServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c)
		return
	}

	invalidateBookingCaches()

	response.Success(c, gin.H{"deleted": id})
}
