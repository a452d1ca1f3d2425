package hall

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/erfantq/Sports-Hall-Reservation/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		service: NewService(NewRepository(db)),
	}
}

// ListHalls godoc
// @Summary      List halls
// @Description  Returns all halls, optionally filtered by a search term over name, city, sport, location and amenities.
// @Tags         halls
// @Produce      json
// @Param        search  query     string  false  "Search term"
// @Success      200     {array}   Hall
// @Failure      500     {object}  gin.H
// @Router       /halls [get]
func (h *Handler) ListHalls(c *gin.Context) {
	halls, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch halls"})
		return
	}

	c.JSON(http.StatusOK, halls)
}

// GetHall godoc
// @Summary      Get hall
// @Tags         halls
// @Produce      json
// @Param        hallID  path      int  true  "Hall ID"
// @Success      200     {object}  Hall
// @Failure      400     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /halls/{hallID} [get]
func (h *Handler) GetHall(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("hallID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hall ID"})
		return
	}

	hall, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
		return
	}

	c.JSON(http.StatusOK, hall)
}

// CreateHall godoc
// @Summary      Create hall
// @Description  Creates a hall owned by the authenticated venue manager.
// @Tags         halls
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateHallRequest  true  "Hall data"
// @Success      201      {object}  Hall
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /manager/halls [post]
func (h *Handler) CreateHall(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hall, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hall"})
		return
	}

	c.JSON(http.StatusCreated, hall)
}

// ListManagerHalls godoc
// @Summary      List own halls
// @Tags         halls
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Hall
// @Failure      500  {object}  gin.H
// @Router       /manager/halls [get]
func (h *Handler) ListManagerHalls(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	halls, err := h.service.ListByManager(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch halls"})
		return
	}

	c.JSON(http.StatusOK, halls)
}

// UpdateHall godoc
// @Summary      Update hall
// @Description  Updates a hall. Only the owning manager or a system admin may update it.
// @Tags         halls
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        hallID   path      int                true  "Hall ID"
// @Param        request  body      UpdateHallRequest  true  "Hall data"
// @Success      200      {object}  Hall
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /manager/halls/{hallID} [put]
func (h *Handler) UpdateHall(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	id, err := strconv.Atoi(c.Param("hallID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hall ID"})
		return
	}

	var req UpdateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hall, err := h.service.Update(c.Request.Context(), userID, role, id, req)
	if err != nil {
		respondHallError(c, err)
		return
	}

	c.JSON(http.StatusOK, hall)
}

// DeleteHall godoc
// @Summary      Delete hall
// @Tags         halls
// @Security     BearerAuth
// @Produce      json
// @Param        hallID  path      int  true  "Hall ID"
// @Success      200     {object}  gin.H
// @Failure      400     {object}  gin.H
// @Failure      403     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /manager/halls/{hallID} [delete]
func (h *Handler) DeleteHall(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	id, err := strconv.Atoi(c.Param("hallID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hall ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, role, id); err != nil {
		respondHallError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hall deleted successfully"})
}

func respondHallError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrHallNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage your own halls"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}
