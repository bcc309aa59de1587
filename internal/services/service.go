package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rootments/whatsapp-notification-backend/internal/models"
	"github.com/rootments/whatsapp-notification-backend/pkg/whatsapp"
)

// ErrInvalidTemplate is returned when no template variant exists for the
// requested event type and template type.
var ErrInvalidTemplate = errors.New("invalid event_type or template_type")

// DuplicateError is returned when a notification was already sent for a
// (booking number, event type) pair.
type DuplicateError struct {
	EventType     string
	BookingNumber string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Message already sent for %s %s", e.EventType, e.BookingNumber)
}

// LogOutcome reports what happened to a best-effort message log write. The
// store being down degrades the audit trail, never the send itself, and the
// distinction is explicit so tests can assert the degraded path.
type LogOutcome int

const (
	// LogWritten means the log entry was persisted.
	LogWritten LogOutcome = iota
	// LogSkipped means the store was unavailable (or rejected the write) and
	// the entry was dropped after logging a warning.
	LogSkipped
)

// Dispatcher sends messages through the WhatsApp Cloud API.
type Dispatcher interface {
	SendTemplate(ctx context.Context, brand, templateName, recipientPhone string, values []string, documentURL string) (*whatsapp.SendResponse, error)
	SendDocument(ctx context.Context, brand, recipientPhone, documentURL, caption, filename string) (*whatsapp.SendResponse, error)
}

// MessageService defines the interface for notification operations
type MessageService interface {
	// SendMessage runs the full pipeline for one notification: duplicate
	// check, template and brand resolution, variable mapping, dispatch and
	// best-effort logging.
	SendMessage(ctx context.Context, req *models.SendMessageRequest) (*models.SendResult, error)

	// SendFromBooking classifies a raw booking record from the rental system
	// and then sends through the same pipeline as SendMessage.
	SendFromBooking(ctx context.Context, req *models.SendFromBookingRequest) (*models.SendResult, *models.DetectedTemplate, error)

	// SendPDF sends a standalone document message.
	SendPDF(ctx context.Context, req *models.SendPDFRequest) (*models.SendResult, error)

	GetMessagesByStatus(ctx context.Context, status string, page, limit int) ([]*models.MessageLog, error)
	GetMessagesByBookingNumber(ctx context.Context, bookingNumber string) ([]*models.MessageLog, error)
	GetMessageCount(ctx context.Context) (int64, error)
}
