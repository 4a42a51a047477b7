package zone

import (
	"testing"

	"tiendita/internal/catalog"
)

func testZones() []catalog.Zone {
	return []catalog.Zone{
		{ID: "z1", Name: "Once", Cost: 500, Keywords: []string{"once", "rivadavia"}},
		{ID: "z2", Name: "Caballito", Cost: 800, Keywords: []string{" caballito ", "pedro goyena"}},
		{ID: "z3", Name: "Flores", Cost: 900, Keywords: []string{"flores", "rivadavia"}},
	}
}

func TestMatch_KeywordInAddress(t *testing.T) {
	z, ok := Match("Pedro Goyena 1500", testZones())
	if !ok {
		t.Fatal("expected a match")
	}
	if z.Name != "Caballito" {
		t.Errorf("expected Caballito, got %s", z.Name)
	}
}

func TestMatch_CaseInsensitiveAndTrimmed(t *testing.T) {
	// "caballito" is configured with surrounding spaces in the sheet.
	z, ok := Match("Av. CABALLITO 123", testZones())
	if !ok {
		t.Fatal("expected a match")
	}
	if z.Name != "Caballito" {
		t.Errorf("expected Caballito, got %s", z.Name)
	}
}

func TestMatch_FirstZoneWinsOnOverlap(t *testing.T) {
	// "rivadavia" belongs to both Once and Flores; configuration order
	// breaks the tie.
	z, ok := Match("Rivadavia 8000", testZones())
	if !ok {
		t.Fatal("expected a match")
	}
	if z.Name != "Once" {
		t.Errorf("expected first-configured zone Once, got %s", z.Name)
	}
}

func TestMatch_NoMatch(t *testing.T) {
	if _, ok := Match("Libertador 4000, Palermo", testZones()); ok {
		t.Error("expected no match")
	}
}

func TestMatch_EmptyKeywordNeverMatches(t *testing.T) {
	zones := []catalog.Zone{{Name: "Bad", Cost: 100, Keywords: []string{"  "}}}
	if _, ok := Match("anything at all", zones); ok {
		t.Error("blank keyword must not match every address")
	}
}

func TestMatch_EndToEndScenario(t *testing.T) {
	z, ok := Match("Rivadavia 2000, Once", testZones())
	if !ok {
		t.Fatal("expected a match")
	}
	if z.Name != "Once" || z.Cost != 500 {
		t.Errorf("expected Once/$500, got %s/$%.0f", z.Name, z.Cost)
	}
}

func TestSuggestions(t *testing.T) {
	got := Suggestions(testZones()[0])
	if got != "once, rivadavia" {
		t.Errorf("unexpected suggestions: %q", got)
	}
}
