package dto

// StructureRequest is the body for structure create and update.
type StructureRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Status  string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// PropertyTypeRequest is the body for property type create and update.
type PropertyTypeRequest struct {
	StructureID            uint    `json:"structure" binding:"required"`
	Name                   string  `json:"name" binding:"required"`
	InternalPropertyTypeID string  `json:"internalPropertyTypeId"`
	ImageURL               string  `json:"imageUrl" binding:"omitempty,url"`
	PropertySizeSqm        float64 `json:"propertySizeSqm" binding:"min=0"`
	MaxGuests              int     `json:"maxGuests" binding:"min=0"`
	NumBeds                int     `json:"numBeds" binding:"min=0"`
	NumSofaBeds            int     `json:"numSofaBeds" binding:"min=0"`
	NumBedrooms            int     `json:"numBedrooms" binding:"min=0"`
	NumBathrooms           int     `json:"numBathrooms" binding:"min=0"`
	Amenities              string  `json:"amenities"`
	Status                 int     `json:"status" binding:"omitempty,oneof=1 2"`
}

// PropertyRequest is the body for property create and update.
type PropertyRequest struct {
	StructureID        uint   `json:"structure" binding:"required"`
	PropertyTypeID     uint   `json:"property_type" binding:"required"`
	Name               string `json:"name" binding:"required"`
	InternalPropertyID string `json:"internalPropertyId"`
	FloorNumber        int    `json:"floorNumber"`
	Amenities          string `json:"amenities"`
	Status             int    `json:"status" binding:"omitempty,oneof=1 2"`
}
