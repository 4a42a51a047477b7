// Package cart holds the in-session record of selected products.
package cart

import (
	"sort"

	"tiendita/internal/catalog"
	"tiendita/internal/logging"
)

// Entry is one product's cart state. UnitPrice is re-captured from the
// catalog on every adjustment rather than cached from the first add.
type Entry struct {
	Quantity  int
	UnitPrice float64
}

// LineTotal returns quantity times unit price.
func (e Entry) LineTotal() float64 {
	return float64(e.Quantity) * e.UnitPrice
}

// Item is an active cart entry paired with its product name, as returned
// by Items().
type Item struct {
	Name string
	Entry
}

// Ledger maps product name to its cart entry. Entries whose quantity has
// returned to zero stay in the map; every projection filters them out.
// The ledger is session-scoped and mutated only from the UI event loop,
// so it needs no locking.
type Ledger struct {
	entries map[string]Entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string]Entry)}
}

// Adjust changes the product's quantity by delta, snapshotting the
// product's current catalog price. A result below zero is a silent no-op:
// quantities never go negative.
func (l *Ledger) Adjust(p catalog.Product, delta int) {
	q := l.entries[p.Name].Quantity + delta
	if q < 0 {
		return
	}
	l.entries[p.Name] = Entry{Quantity: q, UnitPrice: p.Price}
	logging.CartDebug("adjust %q by %+d -> qty %d @ %.2f", p.Name, delta, q, p.Price)
}

// Quantity returns the current quantity for a product name (zero when the
// product was never added).
func (l *Ledger) Quantity(name string) int {
	return l.entries[name].Quantity
}

// Items returns the active entries (quantity > 0) sorted by product name
// for stable presentation.
func (l *Ledger) Items() []Item {
	items := make([]Item, 0, len(l.entries))
	for name, e := range l.entries {
		if e.Quantity <= 0 {
			continue
		}
		items = append(items, Item{Name: name, Entry: e})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// Count returns the number of active entries.
func (l *Ledger) Count() int {
	n := 0
	for _, e := range l.entries {
		if e.Quantity > 0 {
			n++
		}
	}
	return n
}

// Subtotal sums quantity times unit price over active entries.
func (l *Ledger) Subtotal() float64 {
	var sum float64
	for _, e := range l.entries {
		if e.Quantity > 0 {
			sum += e.LineTotal()
		}
	}
	return sum
}

// Clear empties the ledger. Called after a successful order handoff.
func (l *Ledger) Clear() {
	l.entries = make(map[string]Entry)
}
