package shop

import (
	"strconv"
	"strings"
)

// formatAmount renders a peso amount without decimals, the way the shop
// prints prices everywhere.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// joinKeywords renders a zone keyword set for display, trimming the
// spreadsheet's stray whitespace.
func joinKeywords(kws []string) string {
	trimmed := make([]string, 0, len(kws))
	for _, kw := range kws {
		if kw = strings.TrimSpace(kw); kw != "" {
			trimmed = append(trimmed, kw)
		}
	}
	return strings.Join(trimmed, ", ")
}

// truncateName shortens a product name to fit a column.
func truncateName(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// safeRenderMarkdown renders markdown with panic recovery; glamour can
// panic on odd terminal widths and the storefront must never crash over
// cosmetics.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}
