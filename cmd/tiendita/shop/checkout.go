package shop

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tiendita/internal/catalog"
	"tiendita/internal/logging"
	"tiendita/internal/order"
	"tiendita/internal/pricing"
	"tiendita/internal/whatsapp"
	"tiendita/internal/zone"
)

// openCheckout switches to the checkout screen with the address field
// focused.
func (m *Model) openCheckout() {
	m.viewMode = CheckoutView
	m.formErr = ""
	m.statusMsg = ""
	m.pendingURL = ""
	m.setFocus(fieldAddress)
}

// closeCheckout returns to the grid without touching cart or form state.
func (m *Model) closeCheckout() {
	m.viewMode = GridView
	m.blurInputs()
}

// quote recomputes the price breakdown from current state. Derived, never
// cached.
func (m Model) quote() pricing.Quote {
	threshold := float64(catalog.NoFreeShipping)
	if m.catalog != nil {
		threshold = m.catalog.Config.FreeShippingFrom
	}
	return pricing.Compute(m.ledger.Subtotal(), m.form.ZoneCost, threshold)
}

// updateCheckout handles keys on the checkout screen.
func (m Model) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeCheckout()
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
		return m, nil

	case tea.KeyEnter:
		switch m.focus {
		case fieldZone:
			m.viewMode = ZonePickerView
			return m, nil
		case fieldConfirm:
			return m.submitOrder()
		default:
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		}
	}

	// Space opens the zone picker when the zone row is focused; any other
	// key goes to the focused text input.
	if m.focus == fieldZone {
		if msg.String() == " " {
			m.viewMode = ZonePickerView
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldAddress:
		before := m.addrInput.Value()
		m.addrInput, cmd = m.addrInput.Update(msg)
		if v := m.addrInput.Value(); v != before {
			m.detectZone(v)
		}
	case fieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.form.CustomerName = m.nameInput.Value()
	case fieldNotes:
		m.notesInput, cmd = m.notesInput.Update(msg)
		m.form.Notes = m.notesInput.Value()
	}
	return m, cmd
}

// detectZone runs keyword auto-detection on every address edit. A match
// updates address, zone cost/name and the suggested-keywords line in one
// step; no match leaves the previous zone selection untouched and only
// updates the address text.
func (m *Model) detectZone(address string) {
	m.form.Address = address
	if m.catalog == nil {
		return
	}
	z, ok := zone.Match(address, m.catalog.Zones)
	if !ok {
		return
	}
	m.form.ZoneCost = z.Cost
	m.form.ZoneName = z.Name
	m.form.Suggested = zone.Suggestions(z)
	logging.CheckoutDebug("zone auto-detected: %s (+$%.0f)", z.Name, z.Cost)
}

// selectZone applies a manual zone choice from the picker.
func (m *Model) selectZone(z catalog.Zone) {
	m.form.ZoneCost = z.Cost
	m.form.ZoneName = z.Name
	m.form.Suggested = zone.Suggestions(z)
	logging.Checkout("zone selected manually: %s (+$%.0f)", z.Name, z.Cost)
}

// setFocus moves keyboard focus between checkout fields.
func (m *Model) setFocus(f checkoutField) {
	m.focus = f
	m.blurInputs()
	switch f {
	case fieldAddress:
		m.addrInput.Focus()
	case fieldName:
		m.nameInput.Focus()
	case fieldNotes:
		m.notesInput.Focus()
	}
}

func (m *Model) blurInputs() {
	m.addrInput.Blur()
	m.nameInput.Blur()
	m.notesInput.Blur()
}

// submitOrder runs the dispatch pipeline. A validation failure surfaces
// inline and nothing else happens: cart, form and screen stay as they
// are. On success the WhatsApp handoff is immediate; cart and form reset
// without waiting on the background order log.
func (m Model) submitOrder() (tea.Model, tea.Cmd) {
	if m.dispatcher == nil || m.processing {
		return m, nil
	}

	m.processing = true
	rcpt, err := m.dispatcher.Submit(m.form, m.ledger.Items(), m.quote())
	if err != nil {
		m.processing = false
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			m.formErr = verr.Msg
			return m, nil
		}
		// Submit only fails with validation errors today; anything else
		// still belongs in front of the user rather than swallowed.
		m.formErr = err.Error()
		return m, nil
	}

	m.formErr = ""
	m.ledger.Clear()
	m.form.Reset()
	m.resetInputs()
	m.viewMode = GridView
	return m, tea.Batch(m.spinner.Tick, openLink(rcpt.Link))
}

// resetInputs clears the checkout text inputs after a submission.
func (m *Model) resetInputs() {
	m.addrInput.SetValue("")
	m.nameInput.SetValue("")
	m.notesInput.SetValue("")
	m.blurInputs()
}

// openLink opens the WhatsApp deep-link in the system browser.
func openLink(url string) tea.Cmd {
	return func() tea.Msg {
		err := whatsapp.OpenBrowser(url)
		return linkOpenedMsg{url: url, err: err}
	}
}
