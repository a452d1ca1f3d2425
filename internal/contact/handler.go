package contact

import (
	"net/http"
	"strconv"

	"github.com/erfantq/Sports-Hall-Reservation/internal/api"
	"github.com/erfantq/Sports-Hall-Reservation/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// CreateMessage godoc
// @Summary      Send a support message
// @Tags         contact
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateMessageRequest  true  "Message"
// @Success      201      {object}  Message
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /contact [post]
func (h *Handler) CreateMessage(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	msg, err := h.repo.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// ListMessages godoc
// @Summary      List support messages
// @Description  Returns all contact messages. Admin only.
// @Tags         contact
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Message
// @Failure      500  {object}  gin.H
// @Router       /admin/contact [get]
func (h *Handler) ListMessages(c *gin.Context) {
	messages, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// MarkMessageRead godoc
// @Summary      Mark support message as read
// @Tags         contact
// @Security     BearerAuth
// @Produce      json
// @Param        messageID  path      int  true  "Message ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /admin/contact/{messageID}/read [patch]
func (h *Handler) MarkMessageRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("messageID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}
