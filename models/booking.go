package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Booking struct {
	ID uint `json:"id" gorm:"primaryKey"`
	// UID is the public, guest-facing token used for unauthenticated
	// check-in lookups. Immutable once assigned.
	UID uuid.UUID `json:"uid" gorm:"type:uuid;uniqueIndex;not null"`

	StructureID    uint      `json:"structureId" gorm:"index"`
	Structure      Structure `json:"-" gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`
	PropertyTypeID *uint     `json:"propertyTypeId"`
	PropertyID     uint      `json:"propertyId" gorm:"index"`
	Property       Property  `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`

	CheckInDate  time.Time `json:"checkInDate" gorm:"type:date;index"`
	CheckOutDate time.Time `json:"checkOutDate" gorm:"type:date;index"`
	// LengthOfStay is recomputed from the dates on every save, never
	// trusted from input.
	LengthOfStay    int    `json:"lengthOfStay"`
	AdultsCount     int    `json:"adultsCount"`
	ChildrenCount   int    `json:"childrenCount" gorm:"default:0"`
	SpecialRequests string `json:"specialRequests"`

	BasePrice      float64 `json:"basePrice"`
	CleaningFee    float64 `json:"cleaningFee" gorm:"default:0"`
	OtherExtraFees float64 `json:"otherExtraFees" gorm:"default:0"`
	CityTax        float64 `json:"cityTax" gorm:"default:0"`
	Subtotal       float64 `json:"subtotal" gorm:"default:0"`
	TotalPrice     float64 `json:"totalPrice" gorm:"default:0"`

	PaymentMethod string `json:"paymentMethod" gorm:"default:cash"`
	PaymentStatus string `json:"paymentStatus" gorm:"default:pending"`

	Platforms             pq.StringArray  `json:"platforms" gorm:"type:text[]"`
	PlatformReservationID string          `json:"platformReservationId"`
	DueAtProperty         float64         `json:"dueAtProperty" gorm:"default:0"`
	ExternalReference     string          `json:"externalReference"`
	InvoiceInfo           json.RawMessage `json:"invoiceInfo" gorm:"type:json"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Guests []Guest `json:"guests" gorm:"foreignKey:BookingID"`
}

// BeforeCreate assigns the public UID.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.UID == uuid.Nil {
		b.UID = uuid.New()
	}
	return nil
}
