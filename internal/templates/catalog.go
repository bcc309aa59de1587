// Package templates holds the catalog of pre-approved WhatsApp message
// templates. Slot order is positional: it must match the {{1}}, {{2}}, ...
// placeholders of the template registered with Meta, or values silently shift
// into the wrong displayed field. The catalog is therefore versioned and every
// variant carries the parameter count registered on the provider side, checked
// by Validate at startup.
package templates

import (
	"fmt"

	"github.com/rootments/whatsapp-notification-backend/internal/models"
)

// Version identifies the current slot-list revision. Bump it whenever a
// template is re-approved with a different variable list.
const Version = "v3"

// Variant maps one (event type, template type) combination to a pre-approved
// provider template and its ordered parameter slots.
type Variant struct {
	EventType         string
	TemplateType      string
	Name              string
	Slots             []string
	RegisteredParams  int
	HasDocumentHeader bool
}

// Catalog is the immutable variant table.
type Catalog struct {
	variants map[string]map[string]Variant
}

// Default returns the catalog matching the templates currently approved for
// the SuitorGuy and Zorucci WhatsApp Business accounts.
func Default() *Catalog {
	return New([]Variant{
		{
			EventType:    models.EventBooking,
			TemplateType: models.TemplateWithDiscount,
			Name:         "booking_summary_withdiscount",
			Slots: []string{
				"customer_name",
				"booking_number",
				"total_amount",
				"discount_amount",
				"payable_amount",
				"advance_paid",
				"balance_due",
				"brand_name",
				"brand_contact",
			},
			RegisteredParams: 9,
		},
		{
			EventType:    models.EventBooking,
			TemplateType: models.TemplateNoDiscount,
			Name:         "booking_summary_nodisc",
			Slots: []string{
				"customer_name",
				"booking_number",
				"total_amount",
				"payable_amount",
				"advance_paid",
				"balance_due",
				"brand_name",
				"brand_contact",
			},
			RegisteredParams: 8,
		},
		{
			EventType:    models.EventRentout,
			TemplateType: models.TemplateWithDiscount,
			Name:         "rentout_summary_withdiscount",
			Slots: []string{
				"customer_name",
				"booking_number",
				"total_amount",
				"discount_amount",
				"invoice_amount",
				"advance_paid",
				"balance_due",
				"security_deposit",
				"subtotal",
				"brand_name",
				"brand_contact",
			},
			RegisteredParams: 11,
		},
		{
			EventType:    models.EventRentout,
			TemplateType: models.TemplateNoDiscount,
			Name:         "rentout_summary_nodisc",
			Slots: []string{
				"customer_name",
				"booking_number",
				"total_amount",
				"invoice_amount",
				"advance_paid",
				"balance_due",
				"security_amount",
				"subtotal",
				"brand_name",
				"brand_contact",
			},
			RegisteredParams: 10,
		},
		{
			EventType:         models.EventPDFTest,
			TemplateType:      models.TemplateDefault,
			Name:              "pdf_test_template",
			Slots:             []string{},
			RegisteredParams:  0,
			HasDocumentHeader: true,
		},
	})
}

// New builds a catalog from a variant list.
func New(variants []Variant) *Catalog {
	table := make(map[string]map[string]Variant)
	for _, v := range variants {
		if table[v.EventType] == nil {
			table[v.EventType] = make(map[string]Variant)
		}
		table[v.EventType][v.TemplateType] = v
	}
	return &Catalog{variants: table}
}

// Lookup returns the variant for an (event type, template type) pair.
func (c *Catalog) Lookup(eventType, templateType string) (Variant, bool) {
	variant, ok := c.variants[eventType][templateType]
	return variant, ok
}

// Validate checks every variant's slot list against the parameter count
// registered with the provider. A mismatch would not fail the API call; it
// would shift every later value one position over in the delivered message,
// so the process refuses to start instead.
func (c *Catalog) Validate() error {
	for eventType, byType := range c.variants {
		for templateType, v := range byType {
			if len(v.Slots) != v.RegisteredParams {
				return fmt.Errorf("template %q (%s/%s): %d slots declared but %d parameters registered with provider",
					v.Name, eventType, templateType, len(v.Slots), v.RegisteredParams)
			}
		}
	}
	return nil
}
