package availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/erfantq/Sports-Hall-Reservation/internal/booking"
	"github.com/erfantq/Sports-Hall-Reservation/internal/hall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const (
	defaultWindowDays = 7
	maxWindowDays     = 31
)

type Handler struct {
	hallRepo    hall.Repository
	bookingRepo booking.Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		hallRepo:    hall.NewRepository(db),
		bookingRepo: booking.NewRepository(db),
	}
}

// GetSlots godoc
// @Summary      Hall availability
// @Description  Returns the hourly slot grid for a hall over a rolling window of days, marking slots blocked by pending or confirmed bookings.
// @Tags         availability
// @Produce      json
// @Param        hallID  path      int     true   "Hall ID"
// @Param        from    query     string  false  "Window start date (YYYY-MM-DD, defaults to today)"
// @Param        days    query     int     false  "Window length in days (default 7, max 31)"
// @Success      200     {array}   DaySchedule
// @Failure      400     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Failure      500     {object}  gin.H
// @Router       /halls/{hallID}/slots [get]
func (h *Handler) GetSlots(c *gin.Context) {
	hallID, err := strconv.Atoi(c.Param("hallID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hall ID"})
		return
	}

	if _, err := h.hallRepo.FindByID(c.Request.Context(), hallID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
		return
	}

	// The window anchor is resolved here, once, so the planner itself stays
	// deterministic.
	fromDate := time.Now().Truncate(24 * time.Hour)
	if fromStr := c.Query("from"); fromStr != "" {
		fromDate, err = time.Parse(booking.DateFormat, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, use YYYY-MM-DD"})
			return
		}
	}

	days := defaultWindowDays
	if daysStr := c.Query("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil || days < 1 || days > maxWindowDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 31"})
			return
		}
	}

	bookings, err := h.bookingRepo.FindByHallsInRange(
		c.Request.Context(),
		[]int{hallID},
		fromDate,
		fromDate.AddDate(0, 0, days-1),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, ComputeSlots(bookings, fromDate, days))
}
