package controllers

import (
	"log"
	"strconv"
	"time"

	"pms/config"
	"pms/dto"
	"pms/models"
	"pms/response"
	"pms/services"
	"pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateBooking godoc
// @Summary Create a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body dto.BookingRequest true "Booking payload"
// @Success 201 {object} response.Response
// @Router /api/v1/bookings/ [post]
func CreateBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	booking, err := bookingService.Create(req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()
	broadcastBookingEvent("created", booking.ID, booking.PropertyID,
		utils.FormatDate(booking.CheckInDate), utils.FormatDate(booking.CheckOutDate))

	response.Created(c, toBookingResponse(booking))
}

// GetBookings lists bookings with optional property/date filters and a
// fuzzy guest-name search. The unfiltered list is served cache-aside
// from redis and filtered in memory.
func GetBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	bookings, err := getAllBookings()
	if err != nil {
		log.Printf("error loading bookings: %v", err)
		response.ServerError(c)
		return
	}

	if propertyParam := c.Query("property"); propertyParam != "" {
		propertyID, err := strconv.ParseUint(propertyParam, 10, 64)
		if err != nil {
			response.BadRequest(c, "property must be a numeric id")
			return
		}
		bookings = filterBookingsByProperty(bookings, uint(propertyID))
	}

	fromParam, toParam := c.Query("from_date"), c.Query("to_date")
	if fromParam != "" && toParam != "" {
		from, errFrom := utils.ParseDate(fromParam)
		to, errTo := utils.ParseDate(toParam)
		if errFrom != nil || errTo != nil {
			response.BadRequest(c, "from_date and to_date must be YYYY-MM-DD")
			return
		}
		bookings = filterBookingsByRange(bookings, from, to)
	}

	if search := c.Query("search"); search != "" {
		filtered := services.FilterBookingsByGuestName(bookings, search)
		if len(filtered) == 0 {
			// No hits: offer the closest guest names instead.
			matcher := services.NewGuestNameMatcher(collectGuestNames(bookings))
			response.Success(c, gin.H{
				"bookings":    []dto.BookingResponse{},
				"suggestions": services.SuggestGuestNames(matcher, search, 3),
			})
			return
		}
		bookings = filtered
	}

	total := len(bookings)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]dto.BookingResponse, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, toBookingResponse(&bookings[i]))
	}

	response.SuccessWithPagination(c, items, page, limit, total)
}

// getAllBookings loads every booking with property and guests, cache-aside.
func getAllBookings() ([]models.Booking, error) {
	var bookings []models.Booking

	if redisClient != nil {
		if err := services.GetFromRedis(config.Ctx, redisClient, services.BookingListCacheKey, &bookings); err == nil && len(bookings) > 0 {
			return bookings, nil
		}
	}

	if err := config.DB.
		Preload("Guests").
		Preload("Property").
		Order("check_in_date").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	if redisClient != nil {
		if err := services.SetToRedis(config.Ctx, redisClient, services.BookingListCacheKey, bookings, 10*time.Minute); err != nil {
			log.Printf("error caching booking list: %v", err)
		}
	}

	return bookings, nil
}

func collectGuestNames(bookings []models.Booking) []string {
	var names []string
	for _, booking := range bookings {
		for _, guest := range booking.Guests {
			names = append(names, guest.FullName)
		}
	}
	return names
}

func filterBookingsByProperty(bookings []models.Booking, propertyID uint) []models.Booking {
	var filtered []models.Booking
	for _, b := range bookings {
		if b.PropertyID == propertyID {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func filterBookingsByRange(bookings []models.Booking, from, to time.Time) []models.Booking {
	var filtered []models.Booking
	for _, b := range bookings {
		if utils.Overlaps(b.CheckInDate, b.CheckOutDate, from, to) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// GetBookingDetail returns one booking with its guests.
func GetBookingDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return
	}

	booking, err := bookingService.GetByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, toBookingResponse(booking))
}

// GetBookingByUID is the public check-in lookup by the guest-facing token.
func GetBookingByUID(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		response.BadRequest(c, "uid must be a valid UUID")
		return
	}

	booking, err := bookingService.GetByUID(uid)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, toBookingResponse(booking))
}

// UpdateBooking handles both PUT and PATCH.
func UpdateBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return
	}

	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	booking, err := bookingService.Update(uint(id), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()
	broadcastBookingEvent("updated", booking.ID, booking.PropertyID,
		utils.FormatDate(booking.CheckInDate), utils.FormatDate(booking.CheckOutDate))

	response.Success(c, toBookingResponse(booking))
}

// DeleteBooking removes a booking; its rate cells are released, not deleted.
func DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return
	}

	booking, err := bookingService.GetByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := bookingService.Delete(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()
	broadcastBookingEvent("deleted", booking.ID, booking.PropertyID,
		utils.FormatDate(booking.CheckInDate), utils.FormatDate(booking.CheckOutDate))

	response.Success(c, gin.H{"deleted": id})
}

// SplitBooking splits a booking in two at the given date, optionally
// moving the tail to another property.
func SplitBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return
	}

	var req dto.SplitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	splitDate, err := utils.ParseDate(req.SplitDate)
	if err != nil {
		response.ValidationError(c, "split_date must be YYYY-MM-DD")
		return
	}

	original, created, err := bookingService.Split(uint(id), splitDate, req.NewRoomID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateBookingCaches()
	broadcastBookingEvent("split", original.ID, original.PropertyID,
		utils.FormatDate(original.CheckInDate), utils.FormatDate(created.CheckOutDate))

	response.Created(c, dto.SplitBookingResponse{
		OriginalBooking: toBookingResponse(original),
		NewBooking:      toBookingResponse(created),
	})
}
