package order

import (
	"errors"
	"strings"
	"testing"

	"tiendita/internal/cart"
	"tiendita/internal/pricing"
)

func validForm() Form {
	return Form{
		CustomerName: "Ana",
		Address:      "Rivadavia 2000, Once",
		ZoneCost:     500,
		ZoneName:     "Once",
		Notes:        "timbre roto, llamar",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		wantOK bool
	}{
		{"complete form", func(f *Form) {}, true},
		{"empty name", func(f *Form) { f.CustomerName = "" }, false},
		{"whitespace name", func(f *Form) { f.CustomerName = "   " }, false},
		{"empty address", func(f *Form) { f.Address = "" }, false},
		{"no zone selected", func(f *Form) { f.ZoneCost = 0 }, false},
		{"notes are optional", func(f *Form) { f.Notes = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := Validate(f)
			if tt.wantOK && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
			if !tt.wantOK {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected *ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestSummary_Layout(t *testing.T) {
	items := []cart.Item{
		{Name: "Alfajor", Entry: cart.Entry{Quantity: 2, UnitPrice: 100}},
		{Name: "Bombón Suizo", Entry: cart.Entry{Quantity: 1, UnitPrice: 50}},
	}
	q := pricing.Quote{Subtotal: 250, Shipping: 80, Total: 330}

	got := Summary(validForm(), items, q)

	for _, want := range []string{
		"*NUEVO PEDIDO DE LA WEB* 🍦",
		"*Cliente:* Ana",
		"*Dirección:* Rivadavia 2000, Once",
		"*Zona:* Once",
		"- 2x Alfajor ($200)",
		"- 1x Bombón Suizo ($50)",
		"*Envío:* $80",
		"*TOTAL FINAL: $330*",
		"*Notas:* timbre roto, llamar",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}

	// Item lines come before the totals block.
	if strings.Index(got, "- 2x Alfajor") > strings.Index(got, "*Envío:*") {
		t.Error("items must precede shipping in the summary")
	}
}

func TestFormReset(t *testing.T) {
	f := validForm()
	f.Suggested = "once, rivadavia"
	f.Reset()
	if f != (Form{}) {
		t.Errorf("expected zeroed form, got %+v", f)
	}
}
