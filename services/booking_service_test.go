package services

import (
	"testing"

	"github.com/google/uuid"

	"pms/dto"
	"pms/errors"
	"pms/models"
	"pms/utils"
)

func TestCreateBookingSyncsRates(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 120))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if booking.UID == uuid.Nil {
		t.Error("booking UID not assigned")
	}
	if booking.LengthOfStay != 4 {
		t.Errorf("length of stay = %d, want 4", booking.LengthOfStay)
	}
	if booking.StructureID != property.StructureID {
		t.Errorf("structure not denormalized: got %d, want %d", booking.StructureID, property.StructureID)
	}
	if booking.PropertyTypeID == nil || *booking.PropertyTypeID != property.PropertyTypeID {
		t.Errorf("property type not denormalized: got %v, want %d", booking.PropertyTypeID, property.PropertyTypeID)
	}
	if len(booking.Guests) != 2 {
		t.Errorf("guests = %d, want 2", len(booking.Guests))
	}

	rates := loadRates(t, db, property.ID)
	if len(rates) != 4 {
		t.Fatalf("rate cells = %d, want 4 (checkout night excluded)", len(rates))
	}
	for _, rate := range rates {
		if !rate.IsBooked {
			t.Errorf("rate %s not booked", utils.FormatDate(rate.Date))
		}
		if rate.BookingRefID == nil || *rate.BookingRefID != booking.ID {
			t.Errorf("rate %s not linked to booking", utils.FormatDate(rate.Date))
		}
		if rate.BasePrice != 120 {
			t.Errorf("rate %s base price = %v, want 120", utils.FormatDate(rate.Date), rate.BasePrice)
		}
	}
	if utils.FormatDate(rates[len(rates)-1].Date) != "2026-03-04" {
		t.Errorf("last booked night = %s, want 2026-03-04", utils.FormatDate(rates[len(rates)-1].Date))
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	if _, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := svc.Create(newBookingRequest(property.ID, "2026-03-03", "2026-03-07", 100))
	assertCode(t, err, errors.ErrCodeDoubleBooking)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	if count != 1 {
		t.Errorf("bookings = %d, want 1 after rejected create", count)
	}
}

func TestCreateBookingAllowsBackToBack(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	if _, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.Create(newBookingRequest(property.ID, "2026-03-05", "2026-03-08", 100)); err != nil {
		t.Fatalf("back-to-back booking rejected: %v", err)
	}
}

func TestCreateBookingRejectsBlockedDates(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	block := models.BlockedPeriod{
		StructureID: property.StructureID,
		PropertyID:  property.ID,
		StartDate:   mustDate(t, "2026-03-10"),
		EndDate:     mustDate(t, "2026-03-15"),
	}
	if err := db.Create(&block).Error; err != nil {
		t.Fatalf("seed block: %v", err)
	}
	svc := newBookingService(db)

	_, err := svc.Create(newBookingRequest(property.ID, "2026-03-12", "2026-03-14", 100))
	assertCode(t, err, errors.ErrCodeDatesBlocked)
}

func TestCreateBookingRejectsMissingMainGuest(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	req := newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100)
	req.Guests = []dto.GuestPayload{{FullName: "Anna Rossi"}}

	_, err := svc.Create(req)
	assertCode(t, err, errors.ErrCodeNoPrimaryGuest)
}

func TestCreateBookingUnknownProperty(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookingService(db)

	_, err := svc.Create(newBookingRequest(999, "2026-03-01", "2026-03-05", 100))
	assertCode(t, err, errors.ErrCodePropertyNotFound)
}

func TestUpdateBookingMovesRange(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	req := newBookingRequest(property.ID, "2026-03-10", "2026-03-13", 100)
	req.Guests = nil
	updated, err := svc.Update(booking.ID, req)
	if err != nil {
		t.Fatalf("update booking: %v", err)
	}
	if updated.LengthOfStay != 3 {
		t.Errorf("length of stay = %d, want 3", updated.LengthOfStay)
	}

	booked := 0
	for _, rate := range loadRates(t, db, property.ID) {
		day := utils.FormatDate(rate.Date)
		if day < "2026-03-10" {
			// Old nights survive as cells but are released.
			if rate.IsBooked || rate.BookingRefID != nil {
				t.Errorf("old night %s still booked", day)
			}
			continue
		}
		if !rate.IsBooked || rate.BookingRefID == nil || *rate.BookingRefID != booking.ID {
			t.Errorf("new night %s not booked", day)
		}
		booked++
	}
	if booked != 3 {
		t.Errorf("booked nights = %d, want 3", booked)
	}
}

func TestUpdateBookingPriceChangeResyncsWholeRange(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	req := newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 150)
	req.Guests = nil
	if _, err := svc.Update(booking.ID, req); err != nil {
		t.Fatalf("update booking: %v", err)
	}

	for _, rate := range loadRates(t, db, property.ID) {
		if rate.BasePrice != 150 {
			t.Errorf("rate %s base price = %v, want 150", utils.FormatDate(rate.Date), rate.BasePrice)
		}
		if !rate.IsBooked {
			t.Errorf("rate %s lost its booking", utils.FormatDate(rate.Date))
		}
	}
}

func TestUpdateBookingGuestListSemantics(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// nil guest list leaves the guests untouched.
	req := newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100)
	req.Guests = nil
	updated, err := svc.Update(booking.ID, req)
	if err != nil {
		t.Fatalf("update booking: %v", err)
	}
	if len(updated.Guests) != 2 {
		t.Errorf("guests after nil update = %d, want 2", len(updated.Guests))
	}

	// A provided list replaces the previous one.
	req.Guests = []dto.GuestPayload{{FullName: "Luca Bianchi", IsMainGuest: true}}
	updated, err = svc.Update(booking.ID, req)
	if err != nil {
		t.Fatalf("update booking: %v", err)
	}
	if len(updated.Guests) != 1 || updated.Guests[0].FullName != "Luca Bianchi" {
		t.Errorf("guests not replaced: %+v", updated.Guests)
	}
}

func TestUpdateBookingKeepsPaymentFieldsWhenOmitted(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	req := newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100)
	req.PaymentMethod = "credit_card"
	req.PaymentStatus = "partially_paid"
	booking, err := svc.Create(req)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// Empty payment fields keep the stored values.
	update := newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100)
	update.PaymentMethod = ""
	update.PaymentStatus = ""
	updated, err := svc.Update(booking.ID, update)
	if err != nil {
		t.Fatalf("update booking: %v", err)
	}
	if updated.PaymentMethod != "credit_card" {
		t.Errorf("payment method = %q, want credit_card", updated.PaymentMethod)
	}
	if updated.PaymentStatus != "partially_paid" {
		t.Errorf("payment status = %q, want partially_paid", updated.PaymentStatus)
	}

	// Provided values overwrite.
	update.PaymentStatus = "fully_paid"
	updated, err = svc.Update(booking.ID, update)
	if err != nil {
		t.Fatalf("update booking: %v", err)
	}
	if updated.PaymentStatus != "fully_paid" {
		t.Errorf("payment status = %q, want fully_paid", updated.PaymentStatus)
	}
}

func TestDeleteBookingReleasesRates(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if err := svc.Delete(booking.ID); err != nil {
		t.Fatalf("delete booking: %v", err)
	}

	rates := loadRates(t, db, property.ID)
	if len(rates) != 4 {
		t.Fatalf("rate cells = %d, want 4 (cells survive deletion)", len(rates))
	}
	for _, rate := range rates {
		if rate.IsBooked || rate.BookingRefID != nil {
			t.Errorf("rate %s still booked after delete", utils.FormatDate(rate.Date))
		}
	}

	var guests int64
	db.Model(&models.Guest{}).Where("booking_id = ?", booking.ID).Count(&guests)
	if guests != 0 {
		t.Errorf("guests = %d, want 0 after delete", guests)
	}

	_, err = svc.GetByID(booking.ID)
	assertCode(t, err, errors.ErrCodeBookingNotFound)
}

func TestSplitBookingSameProperty(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-10", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	original, created, err := svc.Split(booking.ID, mustDate(t, "2026-03-05"), nil)
	if err != nil {
		t.Fatalf("split booking: %v", err)
	}

	if utils.FormatDate(original.CheckOutDate) != "2026-03-05" {
		t.Errorf("original checkout = %s, want 2026-03-05", utils.FormatDate(original.CheckOutDate))
	}
	if original.LengthOfStay != 4 {
		t.Errorf("original length of stay = %d, want 4", original.LengthOfStay)
	}
	if utils.FormatDate(created.CheckInDate) != "2026-03-05" || utils.FormatDate(created.CheckOutDate) != "2026-03-10" {
		t.Errorf("tail range = %s -> %s, want 2026-03-05 -> 2026-03-10",
			utils.FormatDate(created.CheckInDate), utils.FormatDate(created.CheckOutDate))
	}
	if created.UID == uuid.Nil || created.UID == original.UID {
		t.Error("tail booking must get its own UID")
	}
	if len(created.Guests) != len(original.Guests) {
		t.Errorf("guests not duplicated: original %d, tail %d", len(original.Guests), len(created.Guests))
	}

	for _, rate := range loadRates(t, db, property.ID) {
		day := utils.FormatDate(rate.Date)
		wantID := original.ID
		if day >= "2026-03-05" {
			wantID = created.ID
		}
		if rate.BookingRefID == nil || *rate.BookingRefID != wantID {
			t.Errorf("rate %s linked to %v, want %d", day, rate.BookingRefID, wantID)
		}
	}
}

func TestSplitBookingRejectsBoundaryDates(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-10", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	_, _, err = svc.Split(booking.ID, mustDate(t, "2026-03-01"), nil)
	assertCode(t, err, errors.ErrCodeInvalidSplitDate)

	_, _, err = svc.Split(booking.ID, mustDate(t, "2026-03-10"), nil)
	assertCode(t, err, errors.ErrCodeInvalidSplitDate)

	_, _, err = svc.Split(booking.ID, mustDate(t, "2026-04-01"), nil)
	assertCode(t, err, errors.ErrCodeInvalidSplitDate)
}

func TestSplitBookingToOtherPropertyConflictRollsBack(t *testing.T) {
	db := setupTestDB(t)
	propertyA := seedProperty(t, db, "Room 101")
	propertyB := seedSibling(t, db, propertyA, "Room 102")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(propertyA.ID, "2026-03-01", "2026-03-10", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := svc.Create(newBookingRequest(propertyB.ID, "2026-03-06", "2026-03-08", 100)); err != nil {
		t.Fatalf("create conflicting booking: %v", err)
	}

	_, _, err = svc.Split(booking.ID, mustDate(t, "2026-03-05"), &propertyB.ID)
	assertCode(t, err, errors.ErrCodeDoubleBooking)

	// The original booking must be untouched after the failed split.
	reloaded, err := svc.GetByID(booking.ID)
	if err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if utils.FormatDate(reloaded.CheckOutDate) != "2026-03-10" {
		t.Errorf("original checkout = %s after failed split, want 2026-03-10",
			utils.FormatDate(reloaded.CheckOutDate))
	}

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	if count != 2 {
		t.Errorf("bookings = %d, want 2 after failed split", count)
	}
}

func TestSplitBookingToOtherPropertyMovesTail(t *testing.T) {
	db := setupTestDB(t)
	propertyA := seedProperty(t, db, "Room 101")
	propertyB := seedSibling(t, db, propertyA, "Room 102")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(propertyA.ID, "2026-03-01", "2026-03-10", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	original, created, err := svc.Split(booking.ID, mustDate(t, "2026-03-05"), &propertyB.ID)
	if err != nil {
		t.Fatalf("split booking: %v", err)
	}
	if original.PropertyID != propertyA.ID {
		t.Errorf("original property = %d, want %d", original.PropertyID, propertyA.ID)
	}
	if created.PropertyID != propertyB.ID {
		t.Errorf("tail property = %d, want %d", created.PropertyID, propertyB.ID)
	}

	tailRates := loadRates(t, db, propertyB.ID)
	if len(tailRates) != 5 {
		t.Fatalf("tail rate cells = %d, want 5", len(tailRates))
	}
	for _, rate := range tailRates {
		if rate.BookingRefID == nil || *rate.BookingRefID != created.ID {
			t.Errorf("tail rate %s not linked to new booking", utils.FormatDate(rate.Date))
		}
	}

	// Property A keeps cells for the moved nights, but they must be
	// released: the shrunk original no longer covers them.
	for _, rate := range loadRates(t, db, propertyA.ID) {
		day := utils.FormatDate(rate.Date)
		if day < "2026-03-05" {
			if !rate.IsBooked || rate.BookingRefID == nil || *rate.BookingRefID != original.ID {
				t.Errorf("head night %s lost its booking", day)
			}
			continue
		}
		if rate.IsBooked || rate.BookingRefID != nil {
			t.Errorf("moved night %s still booked on the old property", day)
		}
	}
}

func TestGetBookingByUID(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db, "Room 101")
	svc := newBookingService(db)

	booking, err := svc.Create(newBookingRequest(property.ID, "2026-03-01", "2026-03-05", 100))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	found, err := svc.GetByUID(booking.UID)
	if err != nil {
		t.Fatalf("get by uid: %v", err)
	}
	if found.ID != booking.ID {
		t.Errorf("found booking %d, want %d", found.ID, booking.ID)
	}

	_, err = svc.GetByUID(uuid.New())
	assertCode(t, err, errors.ErrCodeBookingNotFound)
}
