package brands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rootments/whatsapp-notification-backend/internal/config"
)

// ErrUnknownBrand is returned when a brand key has no registry entry.
var ErrUnknownBrand = errors.New("invalid brand")

// Brand is one tenant identity with its own WhatsApp Business credentials.
type Brand struct {
	Key           string
	DisplayName   string
	PhoneNumberID string
	AccessToken   string
	BusinessPhone string
}

// Registry is the immutable brand table, built once at startup from
// configuration and passed explicitly to the components that need it.
type Registry struct {
	brands map[string]Brand
}

// NewRegistry builds a Registry from the configured brand table.
func NewRegistry(cfg config.WhatsAppConfig) *Registry {
	brands := make(map[string]Brand, len(cfg.Brands))
	for key, bc := range cfg.Brands {
		brands[key] = Brand{
			Key:           key,
			DisplayName:   bc.DisplayName,
			PhoneNumberID: bc.PhoneNumberID,
			AccessToken:   bc.AccessToken,
			BusinessPhone: bc.BusinessPhone,
		}
	}
	return &Registry{brands: brands}
}

// Get returns the brand for a key, or ErrUnknownBrand.
func (r *Registry) Get(key string) (Brand, error) {
	brand, ok := r.brands[key]
	if !ok {
		return Brand{}, fmt.Errorf("%w: %s", ErrUnknownBrand, key)
	}
	return brand, nil
}

// Keys returns all registered brand keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.brands))
	for key := range r.brands {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
