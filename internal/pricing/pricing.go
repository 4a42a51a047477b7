// Package pricing derives subtotal, shipping and total for the current
// cart. All values are recomputed on demand; recomputation is cheap and
// always correct, so nothing is cached.
package pricing

// Quote is the price breakdown shown at checkout.
type Quote struct {
	Subtotal float64
	Shipping float64
	Total    float64
}

// Compute builds a quote from the cart subtotal, the selected zone's
// shipping cost and the store's free-shipping threshold. Shipping is
// waived once the subtotal reaches the threshold; otherwise the zone cost
// applies, truncated to a whole amount the way the spreadsheet rounds it.
func Compute(subtotal, zoneCost, freeShippingFrom float64) Quote {
	shipping := float64(int(zoneCost))
	if subtotal >= freeShippingFrom {
		shipping = 0
	}
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

// FreeShipping reports whether shipping was waived on a non-empty cart.
func (q Quote) FreeShipping() bool {
	return q.Shipping == 0 && q.Subtotal > 0
}
