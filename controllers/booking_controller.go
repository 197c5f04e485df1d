// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stayafrika-backend/apperrors"
	"stayafrika-backend/middleware"
	"stayafrika-backend/services"
	"stayafrika-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingPayload struct {
	PropertyID   uint   `json:"propertyId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	// totalPrice is accepted for compatibility but recomputed server-side
	TotalPrice int `json:"totalPrice"`
}

type UpdateBookingStatusPayload struct {
	Status    string `json:"status" binding:"required"`
	PaymentID string `json:"paymentId"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

// parseDate accepts plain dates and RFC3339 timestamps.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// Create makes a pending booking after the availability check.
func (bc *BookingController) Create(c *gin.Context) {
	guest, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}

	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	checkIn, err := parseDate(payload.CheckInDate)
	if err != nil {
		utils.JSONError(c, apperrors.Validation(map[string]string{"checkInDate": "invalid date"}))
		return
	}
	checkOut, err := parseDate(payload.CheckOutDate)
	if err != nil {
		utils.JSONError(c, apperrors.Validation(map[string]string{"checkOutDate": "invalid date"}))
		return
	}

	booking, err := bc.Bookings.Create(c.Request.Context(), guest.ID, payload.PropertyID, checkIn, checkOut)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GuestBookings lists the caller's bookings with property summaries.
func (bc *BookingController) GuestBookings(c *gin.Context) {
	guest, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}
	bookings, err := bc.Bookings.ListForGuest(c.Request.Context(), guest.ID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// HostBookings lists bookings across the host's properties.
func (bc *BookingController) HostBookings(c *gin.Context) {
	host, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}
	bookings, err := bc.Bookings.ListForHost(c.Request.Context(), host.ID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// UpdateStatus drives the booking state machine.
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	caller, ok := middleware.GetUser(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrUnauthorized)
		return
	}
	id, ok := paramID(c)
	if !ok {
		utils.JSONError(c, apperrors.ErrNotFound)
		return
	}

	var payload UpdateBookingStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, apperrors.ErrInvalidInput)
		return
	}

	booking, err := bc.Bookings.UpdateStatus(c.Request.Context(), caller, id, payload.Status, payload.PaymentID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
