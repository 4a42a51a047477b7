// Package zone auto-detects a delivery zone from free-text address input.
package zone

import (
	"strings"

	"tiendita/internal/catalog"
)

// Match returns the first configured zone with at least one keyword
// appearing as a substring of the address, compared case-insensitively
// with keywords trimmed of surrounding whitespace.
//
// First match wins: when keywords overlap across zones, configuration
// order breaks the tie. Matching is pure; the only failure mode is "no
// match", reported via the bool.
func Match(address string, zones []catalog.Zone) (catalog.Zone, bool) {
	addr := strings.ToLower(address)
	for _, z := range zones {
		for _, kw := range z.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(addr, kw) {
				return z, true
			}
		}
	}
	return catalog.Zone{}, false
}

// Suggestions renders a zone's keyword set as a human-readable list for
// the "detected zone" confirmation line.
func Suggestions(z catalog.Zone) string {
	return strings.Join(z.Keywords, ", ")
}
