package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/erfantq/Sports-Hall-Reservation/internal/auth"
	"github.com/erfantq/Sports-Hall-Reservation/internal/email"
	"github.com/erfantq/Sports-Hall-Reservation/internal/hall"
	"github.com/erfantq/Sports-Hall-Reservation/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, emails *email.Service) *Handler {
	return &Handler{
		service: NewService(
			NewRepository(db),
			hall.NewRepository(db),
			user.NewRepository(db),
			emails,
		),
	}
}

// CreateBooking godoc
// @Summary      Request a booking
// @Description  Creates a pending booking for a hall time slot, rejecting overlaps with existing pending or confirmed bookings.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking request"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Description  Returns the authenticated user's booking history with hall details and pricing.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  gin.H
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookings, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListManagerBookings godoc
// @Summary      List bookings for managed halls
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  gin.H
// @Router       /manager/bookings [get]
func (h *Handler) ListManagerBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookings, err := h.service.ListForManager(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// UpdateBooking godoc
// @Summary      Update booking status or schedule
// @Description  Confirms, cancels or reschedules a booking. Allowed for the hall's manager and system admins.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int                   true  "Booking ID"
// @Param        request    body      UpdateBookingRequest  true  "Status and/or schedule change"
// @Success      200        {object}  Booking
// @Failure      400        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Router       /manager/bookings/{bookingID}/status [patch]
func (h *Handler) UpdateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Actor{UserID: userID, Role: role}
	booking, err := h.service.Update(c.Request.Context(), actor, bookingID, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "End time must be after start time"})
	case errors.Is(err, ErrMalformedRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time format"})
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be confirmed or cancelled"})
	case errors.Is(err, ErrSlotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Hall is already booked for the requested time"})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage bookings for your own halls"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, ErrHallNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}
