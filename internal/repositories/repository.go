package repositories

import (
	"context"

	"github.com/rootments/whatsapp-notification-backend/internal/models"
)

// MessageLogRepository defines the interface for message log data operations
type MessageLogRepository interface {
	// Create inserts a new log entry. The storage layer rejects a second
	// entry for the same (bookingNumber, eventType) pair.
	Create(ctx context.Context, log *models.MessageLog) error

	// FindByBookingAndEvent returns the log for a (bookingNumber, eventType)
	// pair, or (nil, nil) when none exists.
	FindByBookingAndEvent(ctx context.Context, bookingNumber, eventType string) (*models.MessageLog, error)

	FindByBookingNumber(ctx context.Context, bookingNumber string) ([]*models.MessageLog, error)
	FindByStatus(ctx context.Context, status string, page, limit int) ([]*models.MessageLog, error)
	Count(ctx context.Context) (int64, error)

	// EnsureIndexes creates the unique compound index on
	// (bookingNumber, eventType) that backs the duplicate guard.
	EnsureIndexes(ctx context.Context) error
}
