package pricing

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name             string
		subtotal         float64
		zoneCost         float64
		freeShippingFrom float64
		wantShipping     float64
		wantTotal        float64
	}{
		{"below threshold pays zone cost", 250, 80, 300, 80, 330},
		{"at threshold ships free", 250, 80, 200, 0, 250},
		{"above threshold ships free", 250, 80, 100, 0, 250},
		{"exactly at threshold ships free", 300, 80, 300, 0, 300},
		{"no zone selected", 250, 0, 300, 0, 250},
		{"fractional zone cost truncates", 250, 80.9, 300, 80, 330},
		{"empty cart", 0, 500, 300, 500, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Compute(tt.subtotal, tt.zoneCost, tt.freeShippingFrom)
			if q.Shipping != tt.wantShipping {
				t.Errorf("shipping = %.2f, want %.2f", q.Shipping, tt.wantShipping)
			}
			if q.Total != tt.wantTotal {
				t.Errorf("total = %.2f, want %.2f", q.Total, tt.wantTotal)
			}
			if q.Subtotal != tt.subtotal {
				t.Errorf("subtotal = %.2f, want %.2f", q.Subtotal, tt.subtotal)
			}
		})
	}
}

func TestFreeShippingIndicator(t *testing.T) {
	if !Compute(250, 80, 200).FreeShipping() {
		t.Error("expected free shipping above threshold")
	}
	if Compute(0, 0, 200).FreeShipping() {
		t.Error("an empty cart is not a free-shipping promotion")
	}
	if Compute(250, 80, 300).FreeShipping() {
		t.Error("shipping was charged, indicator must be off")
	}
}
