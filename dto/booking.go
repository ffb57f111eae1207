package dto

import (
	"encoding/json"
	"time"
)

// GuestPayload carries guest data inside booking requests.
type GuestPayload struct {
	FullName    string `json:"fullName" binding:"required"`
	IsMainGuest bool   `json:"isMainGuest"`

	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`

	DateOfBirth    string `json:"dateOfBirth" binding:"omitempty,dateformat"`
	CountryOfBirth string `json:"countryOfBirth"`
	City           string `json:"city"`
	Region         string `json:"region"`
	Gender         string `json:"gender" binding:"omitempty,oneof=male female other"`

	DocumentType           string `json:"documentType" binding:"omitempty,oneof=passport id_card drivers_license"`
	IDNumber               string `json:"idNumber"`
	DocumentIssueDate      string `json:"documentIssueDate" binding:"omitempty,dateformat"`
	DocumentExpiryDate     string `json:"documentExpiryDate" binding:"omitempty,dateformat"`
	DocumentIssuingCountry string `json:"documentIssuingCountry"`

	Nationality string `json:"nationality"`
	Address     string `json:"address"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`

	LanguagePreference string          `json:"languagePreference"`
	SpecialRequests    string          `json:"specialRequests"`
	GuestNotes         string          `json:"guestNotes"`
	ExtraData          json.RawMessage `json:"extraData"`
}

// BookingRequest is the body for booking create and update.
// Guests == nil leaves the guest list untouched on update; an empty,
// non-nil list replaces it with nothing.
type BookingRequest struct {
	PropertyID uint `json:"property" binding:"required"`

	CheckInDate  string `json:"checkInDate" binding:"required,dateformat"`
	CheckOutDate string `json:"checkOutDate" binding:"required,dateformat"`

	AdultsCount     int    `json:"adultsCount" binding:"required,min=1"`
	ChildrenCount   int    `json:"childrenCount" binding:"min=0"`
	SpecialRequests string `json:"specialRequests"`

	BasePrice      float64 `json:"basePrice" binding:"min=0"`
	CleaningFee    float64 `json:"cleaningFee" binding:"min=0"`
	OtherExtraFees float64 `json:"otherExtraFees" binding:"min=0"`
	CityTax        float64 `json:"cityTax" binding:"min=0"`
	Subtotal       float64 `json:"subtotal" binding:"min=0"`
	TotalPrice     float64 `json:"totalPrice" binding:"min=0"`

	// Empty PaymentMethod or PaymentStatus keeps the stored value on
	// update rather than clearing it.
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=cash credit_card bank_transfer online"`
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=pending partially_paid fully_paid"`

	Platforms             []string        `json:"platforms"`
	PlatformReservationID string          `json:"platformReservationId"`
	DueAtProperty         float64         `json:"dueAtProperty" binding:"min=0"`
	ExternalReference     string          `json:"externalReference"`
	InvoiceInfo           json.RawMessage `json:"invoiceInfo"`

	Guests []GuestPayload `json:"guests"`
}

// SplitBookingRequest is the body for POST /bookings/:id/split/.
type SplitBookingRequest struct {
	SplitDate string `json:"split_date" binding:"required,dateformat"`
	NewRoomID *uint  `json:"new_room_id"`
}

type GuestResponse struct {
	ID          uint   `json:"id"`
	BookingID   uint   `json:"bookingId"`
	FullName    string `json:"fullName"`
	IsMainGuest bool   `json:"isMainGuest"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

type BookingResponse struct {
	ID           uint   `json:"id"`
	UID          string `json:"uid"`
	StructureID  uint   `json:"structure"`
	PropertyType *uint  `json:"property_type"`
	PropertyID   uint   `json:"property"`
	PropertyName string `json:"property_name"`

	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	LengthOfStay int    `json:"length_of_stay"`

	AdultsCount     int    `json:"adults_count"`
	ChildrenCount   int    `json:"children_count"`
	SpecialRequests string `json:"special_requests,omitempty"`

	BasePrice      float64 `json:"base_price"`
	CleaningFee    float64 `json:"cleaning_fee"`
	OtherExtraFees float64 `json:"other_extra_fees"`
	CityTax        float64 `json:"city_tax"`
	Subtotal       float64 `json:"subtotal"`
	TotalPrice     float64 `json:"total_price"`

	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`

	Platforms             []string        `json:"platforms,omitempty"`
	PlatformReservationID string          `json:"platform_reservation_id,omitempty"`
	DueAtProperty         float64         `json:"due_at_property"`
	ExternalReference     string          `json:"external_reference,omitempty"`
	InvoiceInfo           json.RawMessage `json:"invoice_info,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Guests []GuestResponse `json:"guests"`
}

// SplitBookingResponse returns both fragments of a split.
type SplitBookingResponse struct {
	OriginalBooking BookingResponse `json:"original_booking"`
	NewBooking      BookingResponse `json:"new_booking"`
}
