package services

import (
	"testing"

	"github.com/rootments/whatsapp-notification-backend/internal/models"
	"github.com/rootments/whatsapp-notification-backend/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMapper(t *testing.T) *BookingMapperService {
	t.Helper()
	return NewBookingMapperService(templates.Default())
}

func TestDetectEventType(t *testing.T) {
	mapper := newTestMapper(t)

	tests := []struct {
		name    string
		booking models.UpstreamBooking
		want    string
	}{
		{"status rent out", models.UpstreamBooking{"status": "Rent Out"}, models.EventRentout},
		{"status rentout lowercase", models.UpstreamBooking{"status": "rentout"}, models.EventRentout},
		{"status booked", models.UpstreamBooking{"status": "Booked"}, models.EventBooking},
		// Status text wins over date presence: "Booked" plus a populated
		// rentOutDate still classifies as booking.
		{"status beats rentOutDate", models.UpstreamBooking{"status": "Booked", "rentOutDate": "2025-02-01"}, models.EventBooking},
		{"rentOutDate without status", models.UpstreamBooking{"rentOutDate": "2025-02-01"}, models.EventRentout},
		{"null rentOutDate ignored", models.UpstreamBooking{"rentOutDate": nil}, models.EventBooking},
		{"returnDate without status", models.UpstreamBooking{"returnDate": "2025-02-10"}, models.EventRentout},
		{"unrecognized status falls to dates", models.UpstreamBooking{"status": "confirmed", "returnDate": "2025-02-10"}, models.EventRentout},
		{"empty record defaults to booking", models.UpstreamBooking{}, models.EventBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapper.DetectEventType(tt.booking))
		})
	}
}

func TestHasDiscount(t *testing.T) {
	mapper := newTestMapper(t)

	tests := []struct {
		name    string
		booking models.UpstreamBooking
		want    bool
	}{
		{"explicit discount", models.UpstreamBooking{"discount": 500.0}, true},
		{"explicit discount zero", models.UpstreamBooking{"discount": 0.0}, false},
		{"discountAmount", models.UpstreamBooking{"discountAmount": "250"}, true},
		{"discountPercentage", models.UpstreamBooking{"discountPercentage": 10.0}, true},
		{"total greater than payable", models.UpstreamBooking{"totalAmount": 5000.0, "payableAmount": 4500.0}, true},
		{"total equals payable", models.UpstreamBooking{"totalAmount": 5000.0, "payableAmount": 5000.0}, false},
		{"price greater than finalPrice", models.UpstreamBooking{"price": "8000", "finalPrice": "7200"}, true},
		{"no signals", models.UpstreamBooking{"price": 8000.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapper.HasDiscount(tt.booking))
		})
	}
}

func TestCalculateDiscountPrecedence(t *testing.T) {
	mapper := newTestMapper(t)

	// Explicit field wins over the derived subtraction.
	booking := models.UpstreamBooking{"discount": 300.0}
	assert.Equal(t, 300.0, mapper.CalculateDiscount(booking, 5000, 4000))

	// Derived from total - payable when no explicit field.
	assert.Equal(t, 1000.0, mapper.CalculateDiscount(models.UpstreamBooking{}, 5000, 4000))

	// Subtraction only used when positive.
	assert.Equal(t, 0.0, mapper.CalculateDiscount(models.UpstreamBooking{}, 4000, 5000))

	// price/finalPrice fallback.
	booking = models.UpstreamBooking{"price": 8000.0, "finalPrice": 7200.0}
	assert.Equal(t, 800.0, mapper.CalculateDiscount(booking, 0, 0))
}

func TestFormatPhoneNumber(t *testing.T) {
	mapper := newTestMapper(t)

	tests := []struct {
		in   string
		want string
	}{
		{"8590292642", "918590292642"},
		{"918590292642", "918590292642"},
		{"+91 85902 92642", "918590292642"},
		{"859-029-2642", "918590292642"},
		// Other lengths pass through unchanged; this is not E.164.
		{"1234567", "1234567"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapper.FormatPhoneNumber(tt.in), "input %q", tt.in)
	}
}

func TestMapToWhatsAppBooking(t *testing.T) {
	mapper := newTestMapper(t)

	booking := models.UpstreamBooking{
		"status":       "Booked",
		"customerName": "John Doe",
		"phoneNo":      "8590292642",
		"bookingNo":    "BK12345",
		"price":        5000.0,
		"finalPrice":   4500.0,
		"advancePaid":  2000.0,
	}

	req, detected := mapper.MapToWhatsApp(booking, BookingOptions{})

	assert.Equal(t, "suitorguy", req.Brand)
	assert.Equal(t, models.EventBooking, req.EventType)
	assert.Equal(t, models.TemplateWithDiscount, req.TemplateType)
	assert.Equal(t, "John Doe", req.CustomerName)
	assert.Equal(t, "918590292642", req.CustomerPhone)
	assert.Equal(t, "BK12345", req.BookingNumber)
	assert.Equal(t, "5000", req.TotalAmount)
	assert.Equal(t, "500", req.DiscountAmount)
	assert.Equal(t, "4500", req.PayableAmount)
	assert.Equal(t, "2000", req.AdvancePaid)
	assert.Equal(t, "2500", req.BalanceDue)
	assert.Empty(t, req.SecurityAmount, "booking events carry no rentout fields")

	require.NotNil(t, detected)
	assert.True(t, detected.HasDiscount)
	assert.Equal(t, "booking_summary_withdiscount", detected.TemplateName)
}

func TestMapToWhatsAppRentout(t *testing.T) {
	mapper := newTestMapper(t)

	booking := models.UpstreamBooking{
		"status":          "Rent Out",
		"customerName":    "Sarah Williams",
		"phone":           "9876543212",
		"bookingNumber":   "RO002",
		"totalAmount":     8000.0,
		"payableAmount":   8000.0,
		"advance":         3000.0,
		"securityDeposit": 1000.0,
	}

	req, detected := mapper.MapToWhatsApp(booking, BookingOptions{Brand: "zorucci"})

	assert.Equal(t, "zorucci", req.Brand)
	assert.Equal(t, models.EventRentout, req.EventType)
	assert.Equal(t, models.TemplateNoDiscount, req.TemplateType)
	assert.Equal(t, "8000", req.InvoiceAmount)
	assert.Equal(t, "1000", req.SecurityDeposit)
	// security_amount falls back to the security deposit when not named.
	assert.Equal(t, "1000", req.SecurityAmount)
	assert.Equal(t, "8000", req.Subtotal)
	assert.Equal(t, "5000", req.BalanceDue)

	assert.Equal(t, "rentout_summary_nodisc", detected.TemplateName)
}

func TestMapToWhatsAppBalanceDueFloor(t *testing.T) {
	mapper := newTestMapper(t)

	booking := models.UpstreamBooking{
		"payableAmount": 4000.0,
		"advancePaid":   5000.0,
	}

	req, _ := mapper.MapToWhatsApp(booking, BookingOptions{})
	assert.Equal(t, "0", req.BalanceDue, "balance due never goes negative")
}

func TestMapToWhatsAppDefaults(t *testing.T) {
	mapper := newTestMapper(t)

	req, detected := mapper.MapToWhatsApp(models.UpstreamBooking{}, BookingOptions{})

	assert.Equal(t, "Customer", req.CustomerName)
	assert.Equal(t, "UNKNOWN", req.BookingNumber)
	assert.Equal(t, "suitorguy", req.Brand)
	assert.Equal(t, models.EventBooking, req.EventType)
	assert.Equal(t, "booking_summary_nodisc", detected.TemplateName)
}

func TestMapToWhatsAppPhoneOverride(t *testing.T) {
	mapper := newTestMapper(t)

	booking := models.UpstreamBooking{"phoneNo": "8590292642"}
	req, _ := mapper.MapToWhatsApp(booking, BookingOptions{PhoneNumber: "919999999999"})
	assert.Equal(t, "919999999999", req.CustomerPhone)
}
