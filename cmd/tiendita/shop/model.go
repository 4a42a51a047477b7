// Package shop provides the interactive TUI storefront. The
// functionality is split across multiple files:
//   - model.go: Types, Init, construction (this file)
//   - model_update.go: Update loop and key handling
//   - checkout.go: Checkout form and order dispatch
//   - view.go: Rendering functions
package shop

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"tiendita/cmd/tiendita/ui"
	"tiendita/internal/cart"
	"tiendita/internal/catalog"
	"tiendita/internal/logging"
	"tiendita/internal/order"
)

// allCategories is the pseudo-category selecting every product.
const allCategories = "Todos"

// ViewMode determines which screen is active.
type ViewMode int

const (
	GridView ViewMode = iota
	DetailView
	CheckoutView
	ZonePickerView
	HelpView
)

// checkoutField indexes the focusable checkout inputs in tab order.
type checkoutField int

const (
	fieldAddress checkoutField = iota
	fieldZone
	fieldName
	fieldNotes
	fieldConfirm
	fieldCount
)

// zoneItem is a list item for the manual zone picker.
type zoneItem struct {
	zone catalog.Zone
}

func (i zoneItem) Title() string { return i.zone.Name }
func (i zoneItem) Description() string {
	return "+$" + formatAmount(i.zone.Cost) + " · " + joinKeywords(i.zone.Keywords)
}
func (i zoneItem) FilterValue() string { return i.zone.Name }

// Messages delivered by commands.
type (
	// catalogMsg carries the result of a catalog fetch.
	catalogMsg struct {
		catalog *catalog.Catalog
		err     error
	}

	// linkOpenedMsg reports the outcome of opening the WhatsApp link.
	linkOpenedMsg struct {
		url string
		err error
	}
)

// Model is the bubbletea model for the storefront.
type Model struct {
	// UI components
	search     textinput.Model
	addrInput  textinput.Model
	nameInput  textinput.Model
	notesInput textinput.Model
	zoneList   list.Model
	spinner    spinner.Model
	detailVP   viewport.Model
	styles     ui.Styles
	renderer   *glamour.TermRenderer

	viewMode ViewMode

	// Catalog state. Immutable once loaded.
	catalog    *catalog.Catalog
	loading    bool
	loadErr    error
	categories []string // "Todos" plus catalog categories

	// Grid state
	activeCat  int
	cursor     int
	searchMode bool
	detail     *catalog.Product

	// Cart and checkout
	ledger     *cart.Ledger
	form       order.Form
	focus      checkoutField
	formErr    string
	processing bool

	// Dispatch
	client     *catalog.Client
	dispatcher *order.Dispatcher
	statusMsg  string
	pendingURL string // shown for manual copy when the browser cannot open

	width  int
	height int
	ready  bool
}

// New builds the storefront model around a configured API client.
func New(client *catalog.Client) Model {
	styles := ui.NewStyles(ui.DetectTheme())

	search := textinput.New()
	search.Placeholder = "¿Qué dulce buscás hoy?"
	search.CharLimit = 64
	search.Width = 32

	addr := textinput.New()
	addr.Placeholder = "Dirección y Barrio (ej: Rivadavia 2000, Once)"
	addr.CharLimit = 120
	addr.Width = 48

	name := textinput.New()
	name.Placeholder = "Tu Nombre"
	name.CharLimit = 64
	name.Width = 48

	notes := textinput.New()
	notes.Placeholder = "Notas (sabores, timbre, etc.)"
	notes.CharLimit = 200
	notes.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	zl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	zl.Title = "📍 Seleccioná tu Zona de Entrega"
	zl.SetShowStatusBar(false)
	zl.SetFilteringEnabled(false)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		// Rendering falls back to plain text in the views.
		renderer = nil
	}

	return Model{
		search:     search,
		addrInput:  addr,
		nameInput:  name,
		notesInput: notes,
		zoneList:   zl,
		spinner:    sp,
		styles:     styles,
		renderer:   renderer,
		loading:    true,
		ledger:     cart.New(),
		client:     client,
	}
}

// Init starts the spinner and kicks off the catalog fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		fetchCatalog(m.client),
	)
}

// fetchCatalog loads the catalog in the background.
func fetchCatalog(client *catalog.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		cat, err := client.Fetch(ctx)
		return catalogMsg{catalog: cat, err: err}
	}
}

// setCatalog installs a freshly loaded catalog and derives the category
// tabs and zone picker items.
func (m *Model) setCatalog(cat *catalog.Catalog) {
	m.catalog = cat
	m.loading = false
	m.loadErr = nil
	m.categories = append([]string{allCategories}, cat.Categories()...)
	m.activeCat = 0
	m.cursor = 0

	items := make([]list.Item, 0, len(cat.Zones))
	for _, z := range cat.Zones {
		items = append(items, zoneItem{zone: z})
	}
	m.zoneList.SetItems(items)

	m.dispatcher = order.NewDispatcher(m.client, cat.Config.WhatsAppContact)
	logging.Boot("catalog ready: %d products, %d zones, %d categories",
		len(cat.Products), len(cat.Zones), len(m.categories)-1)
}

// visibleProducts applies the search query and active category tab.
func (m Model) visibleProducts() []catalog.Product {
	if m.catalog == nil {
		return nil
	}
	category := ""
	if m.activeCat > 0 && m.activeCat < len(m.categories) {
		category = m.categories[m.activeCat]
	}
	return m.catalog.FilterProducts(m.search.Value(), category)
}

// Dispatcher exposes the order dispatcher so the caller can drain
// in-flight order logging on shutdown. Nil until the catalog loads.
func (m Model) Dispatcher() *order.Dispatcher {
	return m.dispatcher
}
