package shop

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tiendita/internal/catalog"
	"tiendita/internal/order"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Products: []catalog.Product{
			{Name: "Alfajor", Price: 100, Category: "Kiosco"},
			{Name: "Bombón Suizo", Price: 250, Category: "Helados", Description: "El clásico"},
		},
		Zones: []catalog.Zone{
			{ID: "z1", Name: "Once", Cost: 500, Keywords: []string{"once", "rivadavia"}},
		},
		Config: catalog.StoreConfig{
			FreeShippingFrom: 8000,
			WhatsAppContact:  "5491112223344",
			BannerMessage:    "¡Promo!",
		},
	}
}

// newTestModel returns a ready model with the catalog installed, skipping
// the network fetch.
func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(catalog.NewClient(catalog.ClientConfig{}))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	next, _ = m.Update(catalogMsg{catalog: testCatalog()})
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCatalogMsg_InstallsCatalog(t *testing.T) {
	m := newTestModel(t)

	if m.loading {
		t.Error("expected loading cleared")
	}
	if len(m.categories) != 3 || m.categories[0] != allCategories {
		t.Errorf("expected [Todos Kiosco Helados], got %v", m.categories)
	}
	if m.Dispatcher() == nil {
		t.Error("expected dispatcher wired after catalog load")
	}
	if !strings.Contains(m.View(), "¡Promo!") {
		t.Error("expected banner message in the grid view")
	}
}

func TestCatalogMsg_ErrorKeepsNonBlockingState(t *testing.T) {
	m := New(catalog.NewClient(catalog.ClientConfig{}))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	next, _ = m.Update(catalogMsg{err: catalog.ErrFetchFailed})
	m = next.(Model)

	if m.loadErr == nil {
		t.Fatal("expected load error recorded")
	}
	view := m.View()
	if !strings.Contains(view, "reintentar") {
		t.Error("expected retry hint in error view")
	}

	// 'r' goes back to loading and refetches.
	next, cmd := m.Update(key("r"))
	m = next.(Model)
	if !m.loading || m.loadErr != nil {
		t.Error("expected retry to reset the loading state")
	}
	if cmd == nil {
		t.Error("expected a refetch command")
	}
}

func TestGridKeys_AdjustCart(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("+"))
	m = next.(Model)
	next, _ = m.Update(key("+"))
	m = next.(Model)
	if q := m.ledger.Quantity("Alfajor"); q != 2 {
		t.Errorf("expected qty 2 on first product, got %d", q)
	}

	next, _ = m.Update(key("-"))
	m = next.(Model)
	next, _ = m.Update(key("-"))
	m = next.(Model)
	next, _ = m.Update(key("-"))
	m = next.(Model)
	if q := m.ledger.Quantity("Alfajor"); q != 0 {
		t.Errorf("expected qty floored at 0, got %d", q)
	}
}

func TestCategoryTabsFilterGrid(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.categories[m.activeCat] != "Kiosco" {
		t.Fatalf("expected Kiosco tab, got %s", m.categories[m.activeCat])
	}
	prods := m.visibleProducts()
	if len(prods) != 1 || prods[0].Name != "Alfajor" {
		t.Errorf("expected only Alfajor visible, got %v", prods)
	}
}

func TestCheckout_ValidationBlocksSubmission(t *testing.T) {
	m := newTestModel(t)

	// One item in the cart, open checkout.
	next, _ := m.Update(key("+"))
	m = next.(Model)
	next, _ = m.Update(key("c"))
	m = next.(Model)
	if m.viewMode != CheckoutView {
		t.Fatal("expected checkout view")
	}

	// Jump to confirm and hit enter with an empty form.
	m.setFocus(fieldConfirm)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.formErr == "" {
		t.Error("expected a validation message")
	}
	if m.viewMode != CheckoutView {
		t.Error("validation failure must keep the checkout open")
	}
	if m.ledger.Subtotal() != 100 {
		t.Error("validation failure must not touch the cart")
	}
}

func TestDetectZone_UpdatesFormOnMatchOnly(t *testing.T) {
	m := newTestModel(t)

	m.detectZone("Rivadavia 2000, Once")
	if m.form.ZoneName != "Once" || m.form.ZoneCost != 500 {
		t.Errorf("expected Once/$500, got %s/$%.0f", m.form.ZoneName, m.form.ZoneCost)
	}
	if m.form.Suggested == "" {
		t.Error("expected suggested keywords filled")
	}

	// A later non-matching edit keeps the selection, only the address moves.
	m.detectZone("Libertador 4000")
	if m.form.Address != "Libertador 4000" {
		t.Errorf("expected address updated, got %q", m.form.Address)
	}
	if m.form.ZoneName != "Once" || m.form.ZoneCost != 500 {
		t.Error("a non-matching address must leave the zone selection alone")
	}
}

func TestSubmit_SuccessClearsCartAndClosesCheckout(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("+"))
	m = next.(Model)
	next, _ = m.Update(key("c"))
	m = next.(Model)

	m.detectZone("Rivadavia 2000, Once")
	m.form.CustomerName = "Ana"

	m.setFocus(fieldConfirm)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.viewMode != GridView {
		t.Error("expected checkout closed after dispatch")
	}
	if m.ledger.Count() != 0 {
		t.Error("expected cart emptied after dispatch")
	}
	if m.form != (order.Form{}) {
		t.Errorf("expected form reset, got %+v", m.form)
	}
	if cmd == nil {
		t.Error("expected the deep-link open command")
	}
	m.Dispatcher().Wait()
}
