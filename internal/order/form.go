// Package order validates the checkout form, formats the order summary
// and dispatches confirmed orders: synchronously to WhatsApp (the
// authoritative confirmation channel) and best-effort to the spreadsheet
// order log.
package order

import (
	"fmt"
	"strings"

	"tiendita/internal/cart"
	"tiendita/internal/pricing"
)

// Form is the checkout form state. ZoneCost doubles as the selection
// sentinel: zero means no zone has been picked yet.
type Form struct {
	CustomerName string
	Address      string
	ZoneCost     float64
	ZoneName     string
	Notes        string

	// Suggested is the detected zone's keyword list, shown so the shopper
	// can confirm the auto-detection made sense.
	Suggested string
}

// Reset clears the form after a successful submission.
func (f *Form) Reset() {
	*f = Form{}
}

// ValidationError is a user-facing checkout problem. It is surfaced in
// the UI, never treated as a system error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validate checks the form for completeness: customer name, address and a
// selected zone are all required before dispatch.
func Validate(f Form) error {
	if strings.TrimSpace(f.CustomerName) == "" || strings.TrimSpace(f.Address) == "" || f.ZoneCost == 0 {
		return &ValidationError{Msg: "Por favor, completa nombre, dirección y selecciona una zona."}
	}
	return nil
}

// Summary formats the human-readable order message sent over WhatsApp.
// Layout matches what the shop staff are used to reading: header,
// customer block, itemized lines, shipping and grand total, notes.
func Summary(f Form, items []cart.Item, q pricing.Quote) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %dx %s ($%.0f)", it.Quantity, it.Name, it.LineTotal()))
	}

	var b strings.Builder
	b.WriteString("*NUEVO PEDIDO DE LA WEB* 🍦\n\n")
	fmt.Fprintf(&b, "*Cliente:* %s\n", f.CustomerName)
	fmt.Fprintf(&b, "*Dirección:* %s\n", f.Address)
	fmt.Fprintf(&b, "*Zona:* %s\n\n", f.ZoneName)
	b.WriteString("*Pedido:*\n")
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n*Envío:* $%.0f\n", q.Shipping)
	fmt.Fprintf(&b, "*TOTAL FINAL: $%.0f*\n\n", q.Total)
	fmt.Fprintf(&b, "*Notas:* %s", f.Notes)
	return b.String()
}
