// Package catalog loads the store catalog (products, delivery zones and
// store configuration) from the spreadsheet-backed storefront API and logs
// confirmed orders back to it.
//
// The wire format keeps the Spanish field names of the spreadsheet export
// (`nombre`, `precio`, `palabrasClave`, ...); the Go types translate them
// once at the boundary so the rest of the program speaks English.
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Sentinel values for optional StoreConfig fields.
const (
	// NoFreeShipping is the free-shipping threshold used when the
	// spreadsheet does not configure one. No realistic cart reaches it.
	NoFreeShipping = 99999

	// FallbackContact is used when the spreadsheet does not configure a
	// business WhatsApp number.
	FallbackContact = "5491138416200"

	// FallbackBanner is shown when the spreadsheet has no banner message.
	FallbackBanner = "¡Cargando ofertas!"
)

// Product is a single sellable item from the catalog sheet.
type Product struct {
	Name        string  `json:"nombre"`
	Price       float64 `json:"precio"`
	Category    string  `json:"cat"`
	Image       string  `json:"img"`
	Description string  `json:"descripcion"`
}

// Zone is a delivery area with a flat shipping cost and the address
// keywords used to auto-detect it.
type Zone struct {
	ID       string   `json:"id"`
	Name     string   `json:"nombre"`
	Cost     float64  `json:"costo"`
	Keywords []string `json:"palabrasClave"`
}

// StoreConfig carries the optional per-store settings sheet. Missing keys
// fall back to the package sentinels.
type StoreConfig struct {
	FreeShippingFrom float64
	WhatsAppContact  string
	BannerMessage    string
}

// Catalog is everything the storefront needs for a session. It is fetched
// once at startup and treated as immutable afterwards.
type Catalog struct {
	Products []Product
	Zones    []Zone
	Config   StoreConfig
}

// Categories returns the distinct product categories in catalog order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool, 8)
	var cats []string
	for _, p := range c.Products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	return cats
}

// FindProduct returns the product with the given name. Product names are
// the unique key of the catalog sheet.
func (c *Catalog) FindProduct(name string) (Product, bool) {
	for _, p := range c.Products {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// FilterProducts returns the products whose name contains the query
// (case-insensitive) and whose category matches, in catalog order. An
// empty category means all categories.
func (c *Catalog) FilterProducts(query, category string) []Product {
	q := strings.ToLower(query)
	var out []Product
	for _, p := range c.Products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// rawProduct is the wire shape of a product row. Price is kept raw because
// the spreadsheet export leaks header rows whose `precio` cell is a string;
// those rows are dropped during conversion.
type rawProduct struct {
	Name        string          `json:"nombre"`
	Price       json.RawMessage `json:"precio"`
	Category    string          `json:"cat"`
	Image       string          `json:"img"`
	Description string          `json:"descripcion"`
}

// numericPrice reports the row's price and whether it is a JSON number.
func (r rawProduct) numericPrice() (float64, bool) {
	s := strings.TrimSpace(string(r.Price))
	if s == "" || s == "null" || strings.HasPrefix(s, `"`) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// apiDocument is the envelope returned by the catalog endpoint.
type apiDocument struct {
	Data struct {
		Products []rawProduct   `json:"productos"`
		Zones    []Zone         `json:"zonas"`
		Config   map[string]any `json:"config"`
	} `json:"data"`
}

// storeConfigFrom coerces the loosely-typed config sheet into StoreConfig.
// The spreadsheet sometimes exports numbers as strings, so both are
// accepted for the threshold. fallbackContact replaces the package default
// when the sheet has no business number; empty keeps the default.
func storeConfigFrom(m map[string]any, fallbackContact string) StoreConfig {
	cfg := StoreConfig{
		FreeShippingFrom: NoFreeShipping,
		WhatsAppContact:  FallbackContact,
		BannerMessage:    FallbackBanner,
	}
	if s := strings.TrimSpace(fallbackContact); s != "" {
		cfg.WhatsAppContact = s
	}
	if v, ok := asNumber(m["envio_gratis_desde"]); ok && v > 0 {
		cfg.FreeShippingFrom = v
	}
	if s, ok := m["whatsapp_negocio"].(string); ok && strings.TrimSpace(s) != "" {
		cfg.WhatsAppContact = strings.TrimSpace(s)
	}
	if s, ok := m["mensaje_banner"].(string); ok && strings.TrimSpace(s) != "" {
		cfg.BannerMessage = s
	}
	return cfg
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
