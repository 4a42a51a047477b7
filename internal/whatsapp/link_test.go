package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func TestOrderLink(t *testing.T) {
	link := OrderLink("5491138416200", "*NUEVO PEDIDO* 🍦\n\n*Cliente:* Ana")

	if !strings.HasPrefix(link, "https://wa.me/5491138416200?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := u.Query().Get("text"); got != "*NUEVO PEDIDO* 🍦\n\n*Cliente:* Ana" {
		t.Errorf("text round-trip mismatch: %q", got)
	}
}

func TestContactLink(t *testing.T) {
	if got := ContactLink("5491138416200"); got != "https://wa.me/5491138416200" {
		t.Errorf("unexpected contact link: %s", got)
	}
}
