package controllers

import (
	"pms/dto"
	"pms/models"
	"pms/utils"
)

func toGuestResponse(g models.Guest) dto.GuestResponse {
	return dto.GuestResponse{
		ID:          g.ID,
		BookingID:   g.BookingID,
		FullName:    g.FullName,
		IsMainGuest: g.IsMainGuest,
		Email:       g.Email,
		Phone:       g.Phone,
		Nationality: g.Nationality,
	}
}

func toBookingResponse(b *models.Booking) dto.BookingResponse {
	guests := make([]dto.GuestResponse, 0, len(b.Guests))
	for _, g := range b.Guests {
		guests = append(guests, toGuestResponse(g))
	}

	return dto.BookingResponse{
		ID:           b.ID,
		UID:          b.UID.String(),
		StructureID:  b.StructureID,
		PropertyType: b.PropertyTypeID,
		PropertyID:   b.PropertyID,
		PropertyName: b.Property.Name,

		CheckInDate:  utils.FormatDate(b.CheckInDate),
		CheckOutDate: utils.FormatDate(b.CheckOutDate),
		LengthOfStay: b.LengthOfStay,

		AdultsCount:     b.AdultsCount,
		ChildrenCount:   b.ChildrenCount,
		SpecialRequests: b.SpecialRequests,

		BasePrice:      b.BasePrice,
		CleaningFee:    b.CleaningFee,
		OtherExtraFees: b.OtherExtraFees,
		CityTax:        b.CityTax,
		Subtotal:       b.Subtotal,
		TotalPrice:     b.TotalPrice,

		PaymentMethod: b.PaymentMethod,
		PaymentStatus: b.PaymentStatus,

		Platforms:             []string(b.Platforms),
		PlatformReservationID: b.PlatformReservationID,
		DueAtProperty:         b.DueAtProperty,
		ExternalReference:     b.ExternalReference,
		InvoiceInfo:           b.InvoiceInfo,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,

		Guests: guests,
	}
}

func toBlockedPeriodResponse(bp *models.BlockedPeriod) dto.BlockedPeriodResponse {
	return dto.BlockedPeriodResponse{
		ID:             bp.ID,
		StructureID:    bp.StructureID,
		PropertyTypeID: bp.PropertyTypeID,
		PropertyID:     bp.PropertyID,
		StartDate:      utils.FormatDate(bp.StartDate),
		EndDate:        utils.FormatDate(bp.EndDate),
		Reason:         bp.Reason,
		Notes:          bp.Notes,
		CreatedByID:    bp.CreatedByID,
		UpdatedByID:    bp.UpdatedByID,
		CreatedAt:      bp.CreatedAt,
		UpdatedAt:      bp.UpdatedAt,
	}
}

func toRateDetailResponse(r *models.Rate) dto.RateDetailResponse {
	return dto.RateDetailResponse{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		PropertyName: r.Property.Name,
		Date:         utils.FormatDate(r.Date),
		BasePrice:    r.BasePrice,
		MinNights:    r.MinNights,
		Booking:      r.Booking,
		Airbnb:       r.Airbnb,
		Experia:      r.Experia,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
