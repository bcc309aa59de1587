package services

import (
	"context"
	"fmt"

	"github.com/rootments/whatsapp-notification-backend/internal/brands"
	"github.com/rootments/whatsapp-notification-backend/internal/models"
	"github.com/rootments/whatsapp-notification-backend/internal/repositories"
	"github.com/rootments/whatsapp-notification-backend/internal/templates"
	"go.uber.org/zap"
)

// Compile-time check to ensure WhatsAppMessageService implements MessageService
var _ MessageService = (*WhatsAppMessageService)(nil)

// WhatsAppMessageService orchestrates one notification send: duplicate guard,
// template and brand resolution, variable mapping, dispatch and best-effort
// audit logging.
type WhatsAppMessageService struct {
	repo          repositories.MessageLogRepository
	dispatcher    Dispatcher
	registry      *brands.Registry
	catalog       *templates.Catalog
	bookingMapper *BookingMapperService
	logger        *zap.Logger
}

// NewMessageService creates a new WhatsAppMessageService
func NewMessageService(
	repo repositories.MessageLogRepository,
	dispatcher Dispatcher,
	registry *brands.Registry,
	catalog *templates.Catalog,
	bookingMapper *BookingMapperService,
	logger *zap.Logger,
) *WhatsAppMessageService {
	return &WhatsAppMessageService{
		repo:          repo,
		dispatcher:    dispatcher,
		registry:      registry,
		catalog:       catalog,
		bookingMapper: bookingMapper,
		logger:        logger,
	}
}

// SendMessage runs the send pipeline for one notification request.
func (s *WhatsAppMessageService) SendMessage(ctx context.Context, req *models.SendMessageRequest) (*models.SendResult, error) {
	// Duplicate guard. A store failure degrades to "no duplicate protection"
	// rather than blocking the send; the unique index still rejects a second
	// log write if both racers get past this point.
	existing, err := s.repo.FindByBookingAndEvent(ctx, req.BookingNumber, req.EventType)
	if err != nil {
		s.logger.Warn("duplicate check skipped, message log store unreachable",
			zap.String("bookingNumber", req.BookingNumber),
			zap.Error(err))
	}
	if existing != nil {
		return nil, &DuplicateError{EventType: req.EventType, BookingNumber: req.BookingNumber}
	}

	variant, ok := s.catalog.Lookup(req.EventType, req.TemplateType)
	if !ok {
		return nil, ErrInvalidTemplate
	}

	brand, err := s.registry.Get(req.Brand)
	if err != nil {
		return nil, err
	}

	values := MapVariables(req, variant.Slots, brand)

	// Only templates approved with a document header take the PDF inline.
	documentURL := ""
	if variant.HasDocumentHeader {
		documentURL = req.PDFURL
	}

	resp, err := s.dispatcher.SendTemplate(ctx, req.Brand, variant.Name, req.CustomerPhone, values, documentURL)
	if err != nil {
		s.writeLog(ctx, &models.MessageLog{
			Brand:         req.Brand,
			EventType:     req.EventType,
			TemplateName:  variant.Name,
			CustomerPhone: req.CustomerPhone,
			BookingNumber: req.BookingNumber,
			Status:        models.StatusFailed,
			ErrorMessage:  err.Error(),
			Payload:       req,
		})
		return nil, err
	}

	s.writeLog(ctx, &models.MessageLog{
		Brand:             req.Brand,
		EventType:         req.EventType,
		TemplateName:      variant.Name,
		CustomerPhone:     req.CustomerPhone,
		BookingNumber:     req.BookingNumber,
		WhatsAppMessageID: resp.MessageID,
		Status:            models.StatusSent,
		Payload:           req,
	})

	// Follow-up document message. Its failure never fails the send that
	// already went out.
	if req.PDFURL != "" {
		caption := fmt.Sprintf("%s Invoice - %s", invoiceLabel(req.EventType), req.BookingNumber)
		filename := fmt.Sprintf("%s_invoice.pdf", req.BookingNumber)
		if _, err := s.dispatcher.SendDocument(ctx, req.Brand, req.CustomerPhone, req.PDFURL, caption, filename); err != nil {
			s.logger.Error("failed to send follow-up PDF",
				zap.String("bookingNumber", req.BookingNumber),
				zap.Error(err))
		}
	}

	return &models.SendResult{
		MessageID:     resp.MessageID,
		BookingNumber: req.BookingNumber,
	}, nil
}

// SendFromBooking classifies a raw booking record and sends through the
// normal pipeline.
func (s *WhatsAppMessageService) SendFromBooking(ctx context.Context, req *models.SendFromBookingRequest) (*models.SendResult, *models.DetectedTemplate, error) {
	payload, detected := s.bookingMapper.MapToWhatsApp(req.Booking, BookingOptions{
		Brand:       req.Brand,
		PhoneNumber: req.PhoneNumber,
	})

	result, err := s.SendMessage(ctx, payload)
	if err != nil {
		return nil, detected, err
	}
	return result, detected, nil
}

// SendPDF sends a standalone document message. No audit record is written;
// document sends carry no booking event.
func (s *WhatsAppMessageService) SendPDF(ctx context.Context, req *models.SendPDFRequest) (*models.SendResult, error) {
	caption := req.Caption
	if caption == "" {
		caption = fmt.Sprintf("Invoice for %s", req.BookingNumber)
	}
	filename := fmt.Sprintf("%s_invoice.pdf", req.BookingNumber)

	resp, err := s.dispatcher.SendDocument(ctx, req.Brand, req.CustomerPhone, req.PDFURL, caption, filename)
	if err != nil {
		return nil, err
	}

	return &models.SendResult{
		MessageID:     resp.MessageID,
		BookingNumber: req.BookingNumber,
	}, nil
}

// GetMessagesByStatus retrieves message logs by status with pagination
func (s *WhatsAppMessageService) GetMessagesByStatus(ctx context.Context, status string, page, limit int) ([]*models.MessageLog, error) {
	return s.repo.FindByStatus(ctx, status, page, limit)
}

// GetMessagesByBookingNumber retrieves all message logs for a booking
func (s *WhatsAppMessageService) GetMessagesByBookingNumber(ctx context.Context, bookingNumber string) ([]*models.MessageLog, error) {
	return s.repo.FindByBookingNumber(ctx, bookingNumber)
}

// GetMessageCount gets the total number of message logs
func (s *WhatsAppMessageService) GetMessageCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// writeLog persists an audit record best-effort. Persistence being down is a
// warning, not a request failure.
func (s *WhatsAppMessageService) writeLog(ctx context.Context, log *models.MessageLog) LogOutcome {
	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Warn("message log write skipped",
			zap.String("bookingNumber", log.BookingNumber),
			zap.String("status", log.Status),
			zap.Error(err))
		return LogSkipped
	}
	return LogWritten
}

func invoiceLabel(eventType string) string {
	if eventType == models.EventBooking {
		return "Booking"
	}
	return "Rent-out"
}
