package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rootments/whatsapp-notification-backend/internal/models"
	"github.com/rootments/whatsapp-notification-backend/internal/services"
)

// PDFHandler handles document-send HTTP requests
type PDFHandler struct {
	messageService services.MessageService
}

// NewPDFHandler creates a new PDFHandler
func NewPDFHandler(messageService services.MessageService) *PDFHandler {
	return &PDFHandler{
		messageService: messageService,
	}
}

// SendPDF handles POST /pdf/send
func (h *PDFHandler) SendPDF(c *gin.Context) {
	var req models.SendPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  validationErrors(err),
		})
		return
	}

	result, err := h.messageService.SendPDF(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send PDF",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "PDF sent successfully",
		"data":    result,
	})
}
