package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/rootments/whatsapp-notification-backend/internal/brands"
	"github.com/rootments/whatsapp-notification-backend/internal/models"
)

// MapVariables turns a request payload into the ordered parameter list for a
// template variant. Pure and total: a slot with no value maps to the empty
// string, and the output always has exactly len(slots) entries in slot order.
// That order is the positional contract with the provider template's
// {{1}}, {{2}}, ... placeholders.
func MapVariables(req *models.SendMessageRequest, slots []string, brand brands.Brand) []string {
	totalAmount := parseAmount(req.TotalAmount)
	discountAmount := parseAmount(req.DiscountAmount)

	discountPercentage := 0
	if totalAmount > 0 {
		discountPercentage = int(math.Round(discountAmount / totalAmount * 100))
	}

	mapping := map[string]string{
		"customer_name":       req.CustomerName,
		"booking_number":      req.BookingNumber,
		"total_amount":        req.TotalAmount,
		"discount_amount":     req.DiscountAmount,
		"discount_percentage": strconv.Itoa(discountPercentage),
		"payable_amount":      req.PayableAmount,
		"invoice_amount":      req.InvoiceAmount,
		"advance_paid":        req.AdvancePaid,
		"balance_due":         req.BalanceDue,
		"security_deposit":    req.SecurityDeposit,
		"security_amount":     req.SecurityAmount,
		"subtotal":            req.Subtotal,
		"brand_name":          brand.DisplayName,
		"brand_contact":       brand.BusinessPhone,
	}

	values := make([]string, 0, len(slots))
	for _, slot := range slots {
		values = append(values, mapping[slot])
	}
	return values
}

// parseAmount reads a monetary string, treating blank or malformed input as 0.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
