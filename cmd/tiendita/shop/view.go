package shop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tiendita/internal/catalog"
	"tiendita/internal/whatsapp"
)

func (m Model) View() string {
	if !m.ready {
		return "Inicializando..."
	}

	switch m.viewMode {
	case DetailView:
		return m.renderDetail()
	case CheckoutView:
		return m.renderCheckout()
	case ZonePickerView:
		return m.styles.Content.Render(m.zoneList.View())
	case HelpView:
		return m.renderHelp()
	}
	return m.renderGrid()
}

// =============================================================================
// GRID
// =============================================================================

func (m Model) renderGrid() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" Tiendita 🍦 "))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Banner.Render(m.bannerMessage()))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.styles.Content.Render(m.spinner.View() + " Cargando dulzura..."))
		sb.WriteString("\n")
		return sb.String()
	}
	if m.loadErr != nil {
		sb.WriteString(m.styles.Error.Render("  No pude cargar el catálogo."))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("  " + m.loadErr.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Footer.Render("r reintentar · q salir"))
		return sb.String()
	}

	// Search line
	searchLabel := "/ buscar"
	if m.searchMode || m.search.Value() != "" {
		searchLabel = "🔎 " + m.search.View()
	}
	sb.WriteString("  " + searchLabel + "\n")

	// Category tabs
	var tabs []string
	for i, c := range m.categories {
		if i == m.activeCat {
			tabs = append(tabs, m.styles.TabActive.Render(c))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(c))
		}
	}
	sb.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	// Product rows
	prods := m.visibleProducts()
	if len(prods) == 0 {
		sb.WriteString(m.styles.Muted.Render("  No hay productos para mostrar.") + "\n")
	}
	for i, p := range prods {
		cursor := "  "
		nameStyle := m.styles.Body
		if i == m.cursor {
			cursor = m.styles.Selected.Render("❯ ")
			nameStyle = m.styles.Selected
		}
		qty := m.ledger.Quantity(p.Name)
		qtyCell := m.styles.Muted.Render("[-] 0 [+]")
		if qty > 0 {
			qtyCell = fmt.Sprintf("[-] %s [+]", m.styles.Bold.Render(fmt.Sprintf("%d", qty)))
		}
		// Pad before styling: ANSI codes confuse %-Ns widths.
		name := fmt.Sprintf("%-30s", truncateName(p.Name, 30))
		price := fmt.Sprintf("%8s", "$"+formatAmount(p.Price))
		sb.WriteString(fmt.Sprintf("%s%s %s  %s\n",
			cursor, nameStyle.Render(name), m.styles.Price.Render(price), qtyCell))
	}
	sb.WriteString("\n")

	// Floating cart summary appears once there is something to buy.
	if subtotal := m.ledger.Subtotal(); subtotal > 0 {
		cartLine := fmt.Sprintf(" Ver Pedido (%d) · $%s — pulsá c ", m.ledger.Count(), formatAmount(subtotal))
		sb.WriteString("  " + m.styles.CartFloat.Render(cartLine) + "\n\n")
	}

	if m.statusMsg != "" {
		sb.WriteString("  " + m.styles.Success.Render(m.statusMsg) + "\n")
	}
	if m.pendingURL != "" {
		sb.WriteString("  " + m.styles.Info.Render(m.pendingURL) + "\n")
	}

	sb.WriteString(m.styles.Footer.Render(m.footerHint()))
	return sb.String()
}

func (m Model) footerHint() string {
	contact := whatsapp.ContactLink(m.contact())
	return fmt.Sprintf("↑/↓ elegir · +/- cantidad · enter detalle · tab categoría · c pedido · ? ayuda · q salir\n%s", contact)
}

// =============================================================================
// DETAIL
// =============================================================================

func (m Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("  " + m.detail.Name))
	sb.WriteString("\n")
	sb.WriteString(m.detailVP.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("a agregar al carrito · esc volver"))
	return sb.String()
}

// renderDetailBody builds the scrollable markdown body for a product.
func (m Model) renderDetailBody(p catalog.Product) string {
	var md strings.Builder
	fmt.Fprintf(&md, "**$%s**\n\n", formatAmount(p.Price))
	if p.Description != "" {
		md.WriteString(p.Description + "\n\n")
	}
	if p.Category != "" {
		fmt.Fprintf(&md, "*%s*\n\n", p.Category)
	}
	if p.Image != "" {
		fmt.Fprintf(&md, "Foto: %s\n", p.Image)
	}
	return m.safeRenderMarkdown(md.String())
}

// =============================================================================
// CHECKOUT
// =============================================================================

func (m Model) renderCheckout() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("  Finalizar Compra"))
	sb.WriteString("\n")

	// Itemized summary
	for _, it := range m.ledger.Items() {
		sb.WriteString(fmt.Sprintf("    %dx %-26s %8s\n",
			it.Quantity, truncateName(it.Name, 26),
			"$"+formatAmount(it.LineTotal())))
	}
	sb.WriteString("  " + m.styles.Divider.Render(strings.Repeat("─", 44)) + "\n\n")

	q := m.quote()

	sb.WriteString(m.checkoutRow(fieldAddress, "Dirección", m.addrInput.View()))
	zoneCell := m.styles.Muted.Render("📍 Seleccioná tu Zona de Entrega (enter)")
	if m.form.ZoneName != "" {
		zoneCell = fmt.Sprintf("%s (+$%s)", m.form.ZoneName, formatAmount(m.form.ZoneCost))
	}
	sb.WriteString(m.checkoutRow(fieldZone, "Zona", zoneCell))
	if m.form.Suggested != "" {
		sb.WriteString("    " + m.styles.ZoneSuggest.Render("✨ Zona sugerida: "+m.form.ZoneName) + "\n")
		sb.WriteString("    " + m.styles.Muted.Render("barrios: "+m.form.Suggested) + "\n")
	}
	sb.WriteString(m.checkoutRow(fieldName, "Nombre", m.nameInput.View()))
	sb.WriteString(m.checkoutRow(fieldNotes, "Notas", m.notesInput.View()))
	sb.WriteString("\n")

	if q.FreeShipping() {
		sb.WriteString("    " + m.styles.Success.Render("¡Envío Gratis!") + "\n")
	} else if q.Shipping > 0 {
		sb.WriteString(fmt.Sprintf("    Envío: $%s\n", formatAmount(q.Shipping)))
	}
	sb.WriteString("    " + m.styles.Price.Render(fmt.Sprintf("Total Final: $%s", formatAmount(q.Total))) + "\n\n")

	confirm := "  CONFIRMAR POR WHATSAPP  "
	if m.processing {
		confirm = "  " + m.spinner.View() + " PROCESANDO...  "
	}
	if m.focus == fieldConfirm {
		sb.WriteString("    " + m.styles.CartFloat.Render(confirm) + "\n")
	} else {
		sb.WriteString("    " + m.styles.Muted.Render(confirm) + "\n")
	}

	if m.formErr != "" {
		sb.WriteString("\n    " + m.styles.Error.Render(m.formErr) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("tab siguiente campo · enter confirmar/seleccionar · esc volver"))
	return sb.String()
}

// checkoutRow renders one labeled field with a focus marker.
func (m Model) checkoutRow(f checkoutField, label, value string) string {
	marker := "  "
	if m.focus == f {
		marker = m.styles.Selected.Render("❯ ")
	}
	return fmt.Sprintf("  %s%s %s\n", marker, m.styles.FieldLabel.Render(label), value)
}

// =============================================================================
// HELP
// =============================================================================

const helpMarkdown = `# Tiendita

Tienda en la terminal: armá tu pedido y confirmalo por WhatsApp.

## Teclas

| Tecla | Acción |
|---|---|
| ` + "`↑/↓`" + ` | moverse por los productos |
| ` + "`+` / `-`" + ` | sumar / restar cantidad |
| ` + "`enter`" + ` | ver detalle del producto |
| ` + "`tab`" + ` | cambiar de categoría |
| ` + "`/`" + ` | buscar |
| ` + "`c`" + ` | finalizar compra |
| ` + "`q`" + ` | salir |

En el formulario de compra la zona de entrega se detecta sola a partir de
la dirección; también podés elegirla a mano con ` + "`enter`" + ` en el campo Zona.
`

func (m Model) renderHelp() string {
	body := m.safeRenderMarkdown(helpMarkdown)
	return body + "\n" + m.styles.Footer.Render("cualquier tecla para volver")
}

func (m Model) bannerMessage() string {
	if m.catalog != nil {
		return m.catalog.Config.BannerMessage
	}
	return "¡Cargando ofertas!"
}

func (m Model) contact() string {
	if m.catalog != nil {
		return m.catalog.Config.WhatsAppContact
	}
	return ""
}
