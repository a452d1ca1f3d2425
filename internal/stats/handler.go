package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/erfantq/Sports-Hall-Reservation/internal/booking"
	"github.com/erfantq/Sports-Hall-Reservation/internal/hall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const defaultUsageWindowDays = 7

type Handler struct {
	repo        *Repository
	hallRepo    hall.Repository
	bookingRepo booking.Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo:        NewRepository(db),
		hallRepo:    hall.NewRepository(db),
		bookingRepo: booking.NewRepository(db),
	}
}

// GetSystemStats godoc
// @Summary      System statistics
// @Description  Returns global record counts for the admin dashboard. Admin only.
// @Tags         stats
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  SystemStats
// @Failure      500  {object}  gin.H
// @Router       /admin/stats [get]
func (h *Handler) GetSystemStats(c *gin.Context) {
	stats, err := h.repo.GetSystemStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetWeeklyUsage godoc
// @Summary      Weekly hall utilization
// @Description  Returns per-hall reserved/pending/cancelled/available slot counts over a trailing window. Admin only.
// @Tags         stats
// @Security     BearerAuth
// @Produce      json
// @Param        end   query     string  false  "Window end date (YYYY-MM-DD, defaults to today)"
// @Param        days  query     int     false  "Window length in days (default 7)"
// @Success      200   {array}   HallUsage
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /admin/usage [get]
func (h *Handler) GetWeeklyUsage(c *gin.Context) {
	windowEnd := time.Now().Truncate(24 * time.Hour)
	if endStr := c.Query("end"); endStr != "" {
		parsed, err := time.Parse(booking.DateFormat, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, use YYYY-MM-DD"})
			return
		}
		windowEnd = parsed
	}

	windowDays := defaultUsageWindowDays
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		windowDays = parsed
	}

	halls, err := h.hallRepo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch halls"})
		return
	}

	hallIDs := make([]int, len(halls))
	for i, hl := range halls {
		hallIDs[i] = hl.ID
	}

	bookings, err := h.bookingRepo.FindByHallsInRange(
		c.Request.Context(),
		hallIDs,
		windowEnd.AddDate(0, 0, -windowDays+1),
		windowEnd,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, ComputeWeeklyUsage(halls, bookings, windowEnd, windowDays))
}
