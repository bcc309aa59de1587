package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rootments/whatsapp-notification-backend/internal/models"
	"github.com/rootments/whatsapp-notification-backend/internal/templates"
)

// Ordered fallback chains for the canonical fields. Different installations
// of the rental system name the same concept differently; the first present
// field wins. Order is load-bearing.
var (
	totalAmountFields     = []string{"price", "totalAmount", "amount"}
	payableAmountFields   = []string{"finalPrice", "payableAmount", "price"}
	advancePaidFields     = []string{"advancePaid", "advance", "paidAmount"}
	customerNameFields    = []string{"customerName", "customer_name"}
	customerPhoneFields   = []string{"phoneNo", "phone", "customerPhone"}
	bookingNumberFields   = []string{"bookingNo", "bookingNumber", "booking_no"}
	securityDepositFields = []string{"securityDeposit", "security_deposit"}
	securityAmountFields  = []string{"securityAmount", "security_amount", "securityDeposit", "security_deposit"}
)

var phoneStripPattern = regexp.MustCompile(`[\s\-+]`)

// BookingOptions are per-call overrides for MapToWhatsApp.
type BookingOptions struct {
	Brand       string
	PhoneNumber string
}

// BookingMapperService normalizes loosely-typed booking records from the
// rental system into canonical send requests, inferring event type and
// discount presence along the way.
type BookingMapperService struct {
	catalog *templates.Catalog
}

// NewBookingMapperService creates a new BookingMapperService
func NewBookingMapperService(catalog *templates.Catalog) *BookingMapperService {
	return &BookingMapperService{catalog: catalog}
}

// DetectEventType infers booking vs rentout. The rules form a fixed
// precedence chain, first match wins: status text, then rent-out date
// presence, then return date presence, then the booking default.
func (s *BookingMapperService) DetectEventType(booking models.UpstreamBooking) string {
	if status, ok := fieldString(booking, "status"); ok {
		lowered := strings.ToLower(status)
		if strings.Contains(lowered, "rent") {
			return models.EventRentout
		}
		if strings.Contains(lowered, "book") {
			return models.EventBooking
		}
	}

	if fieldPresent(booking, "rentOutDate") {
		return models.EventRentout
	}
	if fieldPresent(booking, "returnDate") {
		return models.EventRentout
	}

	return models.EventBooking
}

// HasDiscount infers discount presence. Explicit discount fields win over
// derived differences; each rule short-circuits.
func (s *BookingMapperService) HasDiscount(booking models.UpstreamBooking) bool {
	if v, ok := fieldNumber(booking, "discount"); ok && v > 0 {
		return true
	}
	if v, ok := fieldNumber(booking, "discountAmount"); ok && v > 0 {
		return true
	}
	if v, ok := fieldNumber(booking, "discountPercentage"); ok && v > 0 {
		return true
	}

	if total, ok := fieldNumber(booking, "totalAmount"); ok {
		if payable, ok := fieldNumber(booking, "payableAmount"); ok && total > payable {
			return true
		}
	}
	if price, ok := fieldNumber(booking, "price"); ok {
		if finalPrice, ok := fieldNumber(booking, "finalPrice"); ok && price > finalPrice {
			return true
		}
	}

	return false
}

// CalculateDiscount resolves the discount amount with the same precedence as
// HasDiscount: explicit fields first, then the positive differences.
func (s *BookingMapperService) CalculateDiscount(booking models.UpstreamBooking, totalAmount, payableAmount float64) float64 {
	if v, ok := fieldNumber(booking, "discount"); ok {
		return v
	}
	if v, ok := fieldNumber(booking, "discountAmount"); ok {
		return v
	}

	if totalAmount > payableAmount {
		return totalAmount - payableAmount
	}

	if price, ok := fieldNumber(booking, "price"); ok {
		if finalPrice, ok := fieldNumber(booking, "finalPrice"); ok && price > finalPrice {
			return price - finalPrice
		}
	}

	return 0
}

// FormatPhoneNumber strips whitespace, hyphens and plus signs, and prefixes
// the Indian country code when given a bare 10-digit number. Anything of
// another length passes through unchanged: this is a narrow single-country
// rule, not E.164 normalization.
func (s *BookingMapperService) FormatPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}

	formatted := phoneStripPattern.ReplaceAllString(phone, "")
	if len(formatted) == 10 && !strings.HasPrefix(formatted, "91") {
		formatted = "91" + formatted
	}
	return formatted
}

// MapToWhatsApp classifies a raw booking record and builds the canonical send
// request for it, picking the template variant from the inferred event type
// and discount presence.
func (s *BookingMapperService) MapToWhatsApp(booking models.UpstreamBooking, opts BookingOptions) (*models.SendMessageRequest, *models.DetectedTemplate) {
	eventType := s.DetectEventType(booking)
	hasDiscount := s.HasDiscount(booking)
	templateType := models.TemplateNoDiscount
	if hasDiscount {
		templateType = models.TemplateWithDiscount
	}

	totalAmount, _ := fieldNumber(booking, totalAmountFields...)
	payableAmount, ok := fieldNumber(booking, payableAmountFields...)
	if !ok {
		payableAmount = totalAmount
	}
	discountAmount := s.CalculateDiscount(booking, totalAmount, payableAmount)
	advancePaid, _ := fieldNumber(booking, advancePaidFields...)

	balanceDue := payableAmount - advancePaid
	if balanceDue < 0 {
		balanceDue = 0
	}

	customerPhone := opts.PhoneNumber
	if customerPhone == "" {
		rawPhone, _ := fieldString(booking, customerPhoneFields...)
		customerPhone = s.FormatPhoneNumber(rawPhone)
	}

	customerName, ok := fieldString(booking, customerNameFields...)
	if !ok {
		customerName = "Customer"
	}
	bookingNumber, ok := fieldString(booking, bookingNumberFields...)
	if !ok {
		bookingNumber = "UNKNOWN"
	}

	brand := opts.Brand
	if brand == "" {
		brand = "suitorguy"
	}

	req := &models.SendMessageRequest{
		Brand:          brand,
		EventType:      eventType,
		TemplateType:   templateType,
		CustomerName:   customerName,
		CustomerPhone:  customerPhone,
		BookingNumber:  bookingNumber,
		TotalAmount:    formatAmount(totalAmount),
		DiscountAmount: formatAmount(discountAmount),
		PayableAmount:  formatAmount(payableAmount),
		AdvancePaid:    formatAmount(advancePaid),
		BalanceDue:     formatAmount(balanceDue),
	}

	if eventType == models.EventRentout {
		securityDeposit, _ := fieldNumber(booking, securityDepositFields...)
		securityAmount, _ := fieldNumber(booking, securityAmountFields...)
		req.InvoiceAmount = formatAmount(payableAmount)
		req.SecurityDeposit = formatAmount(securityDeposit)
		req.SecurityAmount = formatAmount(securityAmount)
		req.Subtotal = formatAmount(totalAmount)
	}

	detected := &models.DetectedTemplate{
		EventType:    eventType,
		TemplateType: templateType,
		HasDiscount:  hasDiscount,
		TemplateName: s.templateName(eventType, templateType),
	}

	return req, detected
}

func (s *BookingMapperService) templateName(eventType, templateType string) string {
	if variant, ok := s.catalog.Lookup(eventType, templateType); ok {
		return variant.Name
	}
	return "booking_summary_nodisc"
}

// fieldString walks a fallback chain and returns the first non-empty string
// value.
func fieldString(booking models.UpstreamBooking, keys ...string) (string, bool) {
	for _, key := range keys {
		value, ok := booking[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v, true
			}
		case float64:
			return formatAmount(v), true
		case int:
			return strconv.Itoa(v), true
		}
	}
	return "", false
}

// fieldNumber walks a fallback chain and returns the first value that parses
// as a number. Unparseable values are treated as absent.
func fieldNumber(booking models.UpstreamBooking, keys ...string) (float64, bool) {
	for _, key := range keys {
		value, ok := booking[key]
		if !ok || value == nil {
			continue
		}
		if v, ok := numberValue(value); ok {
			return v, true
		}
	}
	return 0, false
}

func numberValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// fieldPresent reports whether a field exists with a usable value (JSON null
// and the empty string both count as absent).
func fieldPresent(booking models.UpstreamBooking, key string) bool {
	value, ok := booking[key]
	if !ok || value == nil {
		return false
	}
	if s, ok := value.(string); ok && s == "" {
		return false
	}
	return true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
