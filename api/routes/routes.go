package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rootments/whatsapp-notification-backend/internal/config"
	"github.com/rootments/whatsapp-notification-backend/internal/handlers"
	"github.com/rootments/whatsapp-notification-backend/internal/middleware"
	"go.uber.org/zap"
)

// Version reported by the liveness endpoint.
const Version = "1.0.0"

// HandlerDependencies bundles the handlers the router needs
type HandlerDependencies struct {
	WhatsAppHandler *handlers.WhatsAppHandler
	PDFHandler      *handlers.PDFHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, logger *zap.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	// Liveness
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "WhatsApp Notification Backend API",
			"version": Version,
			"status":  "running",
		})
	})

	whatsapp := router.Group("/whatsapp")
	{
		whatsapp.POST("/send", deps.WhatsAppHandler.SendMessage)
		whatsapp.POST("/send-from-booking", deps.WhatsAppHandler.SendFromBooking)
		whatsapp.GET("/messages", deps.WhatsAppHandler.GetMessages)
		whatsapp.GET("/messages/count", deps.WhatsAppHandler.GetMessageCount)
		whatsapp.GET("/messages/booking/:bookingNumber", deps.WhatsAppHandler.GetMessagesByBookingNumber)
	}

	pdf := router.Group("/pdf")
	{
		pdf.POST("/send", deps.PDFHandler.SendPDF)
	}

	return router
}
