package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message log statuses
const (
	StatusSent      = "sent"
	StatusFailed    = "failed"
	StatusDelivered = "delivered"
	StatusRead      = "read"
)

// Event types
const (
	EventBooking = "booking"
	EventRentout = "rentout"
	EventPDFTest = "pdf_test"
)

// Template types
const (
	TemplateWithDiscount = "withdiscount"
	TemplateNoDiscount   = "nodisc"
	TemplateDefault      = "default"
)

// MessageLog records one WhatsApp send attempt. At most one log exists per
// (bookingNumber, eventType) pair; the repository enforces this with a unique
// compound index.
type MessageLog struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Brand             string              `bson:"brand" json:"brand"`
	EventType         string              `bson:"eventType" json:"eventType"`
	TemplateName      string              `bson:"templateName" json:"templateName"`
	CustomerPhone     string              `bson:"customerPhone" json:"customerPhone"`
	BookingNumber     string              `bson:"bookingNumber" json:"bookingNumber"`
	WhatsAppMessageID string              `bson:"whatsappMessageId,omitempty" json:"whatsappMessageId,omitempty"`
	Status            string              `bson:"status" json:"status"`
	ErrorMessage      string              `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	Payload           *SendMessageRequest `bson:"payload,omitempty" json:"payload,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}
