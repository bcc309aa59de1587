package models

// SendMessageRequest is the inbound payload for POST /whatsapp/send. The
// monetary fields are strings because they are forwarded verbatim as WhatsApp
// template text parameters; which subset is required depends on the event and
// template type, so only the identity fields are enforced here.
type SendMessageRequest struct {
	Brand           string `json:"brand" bson:"brand" binding:"required,oneof=suitorguy zorucci"`
	EventType       string `json:"event_type" bson:"eventType" binding:"required,oneof=booking rentout pdf_test"`
	TemplateType    string `json:"template_type" bson:"templateType" binding:"omitempty,oneof=withdiscount nodisc default"`
	CustomerName    string `json:"customer_name" bson:"customerName"`
	CustomerPhone   string `json:"customer_phone" bson:"customerPhone" binding:"required"`
	BookingNumber   string `json:"booking_number" bson:"bookingNumber" binding:"required"`
	TotalAmount     string `json:"total_amount,omitempty" bson:"totalAmount,omitempty"`
	DiscountAmount  string `json:"discount_amount,omitempty" bson:"discountAmount,omitempty"`
	PayableAmount   string `json:"payable_amount,omitempty" bson:"payableAmount,omitempty"`
	InvoiceAmount   string `json:"invoice_amount,omitempty" bson:"invoiceAmount,omitempty"`
	AdvancePaid     string `json:"advance_paid,omitempty" bson:"advancePaid,omitempty"`
	BalanceDue      string `json:"balance_due,omitempty" bson:"balanceDue,omitempty"`
	SecurityDeposit string `json:"security_deposit,omitempty" bson:"securityDeposit,omitempty"`
	SecurityAmount  string `json:"security_amount,omitempty" bson:"securityAmount,omitempty"`
	Subtotal        string `json:"subtotal,omitempty" bson:"subtotal,omitempty"`
	PDFURL          string `json:"pdf_url,omitempty" bson:"pdfUrl,omitempty" binding:"omitempty,url"`
}

// SendPDFRequest is the inbound payload for POST /pdf/send.
type SendPDFRequest struct {
	Brand         string `json:"brand" binding:"required,oneof=suitorguy zorucci"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	PDFURL        string `json:"pdf_url" binding:"required,url"`
	BookingNumber string `json:"booking_number" binding:"required"`
	Caption       string `json:"caption"`
}

// SendFromBookingRequest carries a raw booking record from the rental system
// plus optional overrides for POST /whatsapp/send-from-booking.
type SendFromBookingRequest struct {
	Booking     UpstreamBooking `json:"booking" binding:"required"`
	Brand       string          `json:"brand" binding:"omitempty,oneof=suitorguy zorucci"`
	PhoneNumber string          `json:"phone_number"`
}

// UpstreamBooking is a loosely-typed booking record from the rental system.
// Field names vary across installations, so it stays a raw map and the booking
// mapper resolves fields through ordered fallback chains.
type UpstreamBooking map[string]interface{}

// SendResult is the success payload returned after a dispatch.
type SendResult struct {
	MessageID     string `json:"messageId"`
	BookingNumber string `json:"bookingNumber"`
}

// DetectedTemplate reports how a raw booking record was classified.
type DetectedTemplate struct {
	EventType    string `json:"eventType"`
	TemplateType string `json:"templateType"`
	HasDiscount  bool   `json:"hasDiscount"`
	TemplateName string `json:"templateName"`
}
