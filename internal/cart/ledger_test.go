package cart

import (
	"testing"

	"tiendita/internal/catalog"
)

var (
	alfajor = catalog.Product{Name: "Alfajor", Price: 100}
	bombon  = catalog.Product{Name: "Bombón", Price: 50}
)

func TestAdjust_IncrementAndDecrement(t *testing.T) {
	l := New()
	l.Adjust(alfajor, 1)
	l.Adjust(alfajor, 1)
	l.Adjust(alfajor, -1)

	if q := l.Quantity("Alfajor"); q != 1 {
		t.Errorf("expected qty 1, got %d", q)
	}
}

func TestAdjust_NeverGoesNegative(t *testing.T) {
	l := New()
	l.Adjust(alfajor, -1)
	if q := l.Quantity("Alfajor"); q != 0 {
		t.Errorf("decrement at zero must be a no-op, got qty %d", q)
	}

	l.Adjust(alfajor, 2)
	l.Adjust(alfajor, -5)
	if q := l.Quantity("Alfajor"); q != 2 {
		t.Errorf("decrement past zero must be a no-op, got qty %d", q)
	}
}

func TestZeroQuantityEntriesAreInertButRetained(t *testing.T) {
	l := New()
	l.Adjust(alfajor, 1)
	l.Adjust(alfajor, -1)

	// The entry stays in storage but must vanish from every projection.
	if len(l.entries) != 1 {
		t.Fatalf("expected entry retained in storage, got %d entries", len(l.entries))
	}
	if got := l.Items(); len(got) != 0 {
		t.Errorf("expected no active items, got %v", got)
	}
	if l.Count() != 0 {
		t.Errorf("expected count 0, got %d", l.Count())
	}
	if l.Subtotal() != 0 {
		t.Errorf("expected subtotal 0, got %.2f", l.Subtotal())
	}
}

func TestUnitPriceRecapturedOnEveryAdjust(t *testing.T) {
	l := New()
	l.Adjust(alfajor, 1)

	repriced := alfajor
	repriced.Price = 120
	l.Adjust(repriced, 1)

	items := l.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].UnitPrice != 120 {
		t.Errorf("expected price re-captured at 120, got %.2f", items[0].UnitPrice)
	}
	if items[0].LineTotal() != 240 {
		t.Errorf("expected line total 240, got %.2f", items[0].LineTotal())
	}
}

func TestSubtotalAndItemsOrdering(t *testing.T) {
	l := New()
	l.Adjust(bombon, 1)
	l.Adjust(alfajor, 2)

	if got := l.Subtotal(); got != 250 {
		t.Errorf("expected subtotal 250, got %.2f", got)
	}

	items := l.Items()
	if len(items) != 2 || items[0].Name != "Alfajor" || items[1].Name != "Bombón" {
		t.Errorf("expected name-sorted items, got %v", items)
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.Adjust(alfajor, 3)
	l.Clear()
	if l.Count() != 0 || l.Subtotal() != 0 {
		t.Error("expected empty ledger after Clear")
	}
}
