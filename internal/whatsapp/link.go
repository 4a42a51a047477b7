// Package whatsapp builds wa.me deep-links. The deep-link handoff is the
// order-confirmation mechanism: opening the link with a pre-filled summary
// replaces a checkout API.
package whatsapp

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

const baseURL = "https://wa.me/"

// OrderLink returns a wa.me link to the contact with the given message
// pre-filled.
func OrderLink(contact, text string) string {
	return baseURL + contact + "?text=" + url.QueryEscape(text)
}

// ContactLink returns a bare wa.me link to the contact with no pre-filled
// text (the storefront's persistent "talk to us" link).
func ContactLink(contact string) string {
	return baseURL + contact
}

// OpenBrowser opens the URL in the system browser. Callers should degrade
// to displaying the URL for manual copy when this fails (headless
// terminals, SSH sessions).
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	// Releases the child; the browser outlives us and we never wait on it.
	go func() { _ = cmd.Wait() }()
	return nil
}
