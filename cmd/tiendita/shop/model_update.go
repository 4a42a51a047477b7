package shop

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tiendita/internal/catalog"
	"tiendita/internal/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.zoneList.SetSize(msg.Width-4, msg.Height-6)
		m.detailVP.Width = min(msg.Width-4, 76)
		m.detailVP.Height = msg.Height - 10
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogMsg:
		if msg.err != nil {
			// Non-blocking error state; the shopper can retry with 'r'.
			m.loading = false
			m.loadErr = msg.err
			logging.Boot("catalog load failed: %v", msg.err)
			return m, nil
		}
		m.setCatalog(msg.catalog)
		return m, nil

	case linkOpenedMsg:
		m.processing = false
		if msg.err != nil {
			// Headless terminal or no browser: show the link for manual copy.
			m.pendingURL = msg.url
			m.statusMsg = "No pude abrir el navegador; copiá el enlace de abajo."
			return m, nil
		}
		m.statusMsg = "¡Pedido confirmado por WhatsApp!"
		return m, nil

	case tea.KeyMsg:
		// Global keys first.
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		}
		switch m.viewMode {
		case GridView:
			return m.updateGrid(msg)
		case DetailView:
			return m.updateDetail(msg)
		case CheckoutView:
			return m.updateCheckout(msg)
		case ZonePickerView:
			return m.updateZonePicker(msg)
		case HelpView:
			m.viewMode = GridView
			return m, nil
		}
	}
	return m, nil
}

// updateGrid handles keys on the product grid.
func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search box captures everything while focused.
	if m.searchMode {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searchMode = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.cursor = 0
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "/":
		m.searchMode = true
		m.search.Focus()
		return m, nil

	case "?":
		m.viewMode = HelpView
		return m, nil

	case "r":
		if m.loadErr != nil {
			m.loading = true
			m.loadErr = nil
			return m, tea.Batch(m.spinner.Tick, fetchCatalog(m.client))
		}
		return m, nil

	case "tab":
		if len(m.categories) > 0 {
			m.activeCat = (m.activeCat + 1) % len(m.categories)
			m.cursor = 0
		}
		return m, nil

	case "shift+tab":
		if len(m.categories) > 0 {
			m.activeCat = (m.activeCat - 1 + len(m.categories)) % len(m.categories)
			m.cursor = 0
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visibleProducts())-1 {
			m.cursor++
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "+", "=", "right", "l":
		m.adjustSelected(+1)
		return m, nil

	case "-", "left", "h":
		m.adjustSelected(-1)
		return m, nil

	case "enter":
		if p, ok := m.selectedProduct(); ok {
			m.detail = &p
			m.detailVP.SetContent(m.renderDetailBody(p))
			m.detailVP.GotoTop()
			m.viewMode = DetailView
		}
		return m, nil

	case "c":
		if m.ledger.Subtotal() > 0 {
			m.openCheckout()
		}
		return m, nil
	}
	return m, nil
}

// updateDetail handles keys on the product detail screen.
func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.detail = nil
		m.viewMode = GridView
		return m, nil
	case "a", "enter", "+":
		if m.detail != nil {
			m.ledger.Adjust(*m.detail, 1)
			m.detail = nil
			m.viewMode = GridView
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.detailVP, cmd = m.detailVP.Update(msg)
	return m, cmd
}

// updateZonePicker handles the manual zone selection list.
func (m Model) updateZonePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.viewMode = CheckoutView
		return m, nil
	case tea.KeyEnter:
		if it, ok := m.zoneList.SelectedItem().(zoneItem); ok {
			m.selectZone(it.zone)
		}
		m.viewMode = CheckoutView
		return m, nil
	}
	var cmd tea.Cmd
	m.zoneList, cmd = m.zoneList.Update(msg)
	return m, cmd
}

// selectedProduct returns the product under the grid cursor.
func (m Model) selectedProduct() (catalog.Product, bool) {
	prods := m.visibleProducts()
	if m.cursor < 0 || m.cursor >= len(prods) {
		return catalog.Product{}, false
	}
	return prods[m.cursor], true
}

// adjustSelected changes the cart quantity of the product under the cursor.
func (m *Model) adjustSelected(delta int) {
	prods := m.visibleProducts()
	if m.cursor < 0 || m.cursor >= len(prods) {
		return
	}
	m.ledger.Adjust(prods[m.cursor], delta)
}
