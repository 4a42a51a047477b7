package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"tiendita/internal/logging"
)

// ClientConfig configures the storefront API client.
type ClientConfig struct {
	// APIURL is the spreadsheet web-app endpoint. The same URL serves the
	// catalog on GET and accepts order records on POST.
	APIURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// MaxRetries is how many times Fetch retries after a transport error
	// or a 5xx response.
	MaxRetries int

	// RetryDelay is the base backoff; doubled per attempt.
	RetryDelay time.Duration

	// FallbackContact is the business WhatsApp number used when the
	// catalog's settings sheet has none. Empty keeps the package default.
	FallbackContact string
}

// DefaultClientConfig returns sensible defaults for the given endpoint.
func DefaultClientConfig(apiURL string) ClientConfig {
	return ClientConfig{
		APIURL:     apiURL,
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Second,
	}
}

// Client talks to the storefront API.
type Client struct {
	apiURL          string
	maxRetries      int
	retryDelay      time.Duration
	fallbackContact string
	httpClient      *http.Client

	// fetches collapses concurrent catalog refreshes into one request;
	// the UI can fire a retry while a fetch is still in flight.
	fetches singleflight.Group
}

// NewClient creates a storefront API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	return &Client{
		apiURL:          cfg.APIURL,
		maxRetries:      cfg.MaxRetries,
		retryDelay:      cfg.RetryDelay,
		fallbackContact: cfg.FallbackContact,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch retrieves the full catalog. Product rows whose price cell is not a
// JSON number (leftover spreadsheet header rows) are dropped; zones and
// store config pass through as-is with fallback defaults applied.
func (c *Client) Fetch(ctx context.Context) (*Catalog, error) {
	v, err, _ := c.fetches.Do("catalog", func() (any, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

func (c *Client) fetch(ctx context.Context) (*Catalog, error) {
	if c.apiURL == "" {
		return nil, ErrNoEndpoint
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			logging.CatalogDebug("fetch retry %d/%d after %v: %v", attempt, c.maxRetries, delay, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.get(ctx)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) && !se.retryable() {
				// A 4xx from the spreadsheet script will not improve on
				// retry any more than a malformed document would.
				return nil, err
			}
			lastErr = err
			continue
		}

		cat, err := c.decodeCatalog(body)
		if err != nil {
			// A malformed document will not improve on retry.
			return nil, err
		}
		logging.Catalog("fetched catalog: %d products, %d zones in %v",
			len(cat.Products), len(cat.Zones), time.Since(start))
		return cat, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrFetchFailed, lastErr)
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: truncate(body, 200)}
	}
	return body, nil
}

// statusError is a non-OK catalog response. Only server-side failures are
// worth retrying.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("catalog request failed with status %d: %s", e.code, e.body)
}

func (e *statusError) retryable() bool { return e.code >= 500 }

func (c *Client) decodeCatalog(body []byte) (*Catalog, error) {
	var doc apiDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}

	cat := &Catalog{
		Zones:  doc.Data.Zones,
		Config: storeConfigFrom(doc.Data.Config, c.fallbackContact),
	}
	dropped := 0
	for _, raw := range doc.Data.Products {
		price, ok := raw.numericPrice()
		if !ok {
			dropped++
			continue
		}
		cat.Products = append(cat.Products, Product{
			Name:        raw.Name,
			Price:       price,
			Category:    raw.Category,
			Image:       raw.Image,
			Description: raw.Description,
		})
	}
	if dropped > 0 {
		logging.CatalogDebug("dropped %d non-numeric-price rows", dropped)
	}
	return cat, nil
}

// OrderRecord is the wire shape of a logged order. Field names match the
// columns the spreadsheet script expects.
type OrderRecord struct {
	Customer string          `json:"nombre"`
	Address  string          `json:"direccion"`
	Zone     string          `json:"zona"`
	Total    float64         `json:"total"`
	Items    []OrderLineItem `json:"items"`
}

// OrderLineItem is one "qty x name" line with its line total.
type OrderLineItem struct {
	Name  string  `json:"n"`
	Price float64 `json:"p"`
}

// LogOrder posts an order record to the storefront API. The response body
// is ignored; callers decide whether a failure matters (the dispatcher
// treats it as best-effort).
func (c *Client) LogOrder(ctx context.Context, rec OrderRecord) error {
	if c.apiURL == "" {
		return ErrNoEndpoint
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal order record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order log request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("order log request failed with status %d", resp.StatusCode)
	}
	logging.CatalogDebug("logged order for %q (total %.0f)", rec.Customer, rec.Total)
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
