package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rootments/whatsapp-notification-backend/internal/models"
	"github.com/rootments/whatsapp-notification-backend/internal/services"
)

// WhatsAppHandler handles notification-related HTTP requests
type WhatsAppHandler struct {
	messageService services.MessageService
}

// NewWhatsAppHandler creates a new WhatsAppHandler
func NewWhatsAppHandler(messageService services.MessageService) *WhatsAppHandler {
	return &WhatsAppHandler{
		messageService: messageService,
	}
}

// SendMessage handles POST /whatsapp/send
func (h *WhatsAppHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  validationErrors(err),
		})
		return
	}

	result, err := h.messageService.SendMessage(c.Request.Context(), &req)
	if err != nil {
		respondSendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "WhatsApp message sent successfully",
		"data":    result,
	})
}

// SendFromBooking handles POST /whatsapp/send-from-booking
func (h *WhatsAppHandler) SendFromBooking(c *gin.Context) {
	var req models.SendFromBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  validationErrors(err),
		})
		return
	}

	result, detected, err := h.messageService.SendFromBooking(c.Request.Context(), &req)
	if err != nil {
		respondSendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "WhatsApp message sent successfully",
		"data":     result,
		"detected": detected,
	})
}

// GetMessages handles GET /whatsapp/messages
func (h *WhatsAppHandler) GetMessages(c *gin.Context) {
	status := c.Query("status")

	// Malformed or out-of-range pagination falls back to the defaults; a
	// negative skip would fail the store query.
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	logs, err := h.messageService.GetMessagesByStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": logs})
}

// GetMessagesByBookingNumber handles GET /whatsapp/messages/booking/:bookingNumber
func (h *WhatsAppHandler) GetMessagesByBookingNumber(c *gin.Context) {
	bookingNumber := c.Param("bookingNumber")

	logs, err := h.messageService.GetMessagesByBookingNumber(c.Request.Context(), bookingNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": logs})
}

// GetMessageCount handles GET /whatsapp/messages/count
func (h *WhatsAppHandler) GetMessageCount(c *gin.Context) {
	count, err := h.messageService.GetMessageCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get message count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// respondSendError maps pipeline errors onto the response envelope: duplicate
// sends are a client error, everything else (unknown brand or template,
// provider rejection, transport failure) reports as a dispatch failure.
func respondSendError(c *gin.Context, err error) {
	var duplicate *services.DuplicateError
	if errors.As(err, &duplicate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": duplicate.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Failed to send WhatsApp message",
		"error":   err.Error(),
	})
}

// validationErrors itemizes a binding failure per field.
func validationErrors(err error) []gin.H {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		out := make([]gin.H, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			out = append(out, gin.H{
				"msg":   "Invalid " + fe.Field(),
				"param": fe.Field(),
			})
		}
		return out
	}
	return []gin.H{{"msg": err.Error()}}
}
