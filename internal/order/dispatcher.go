package order

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"tiendita/internal/cart"
	"tiendita/internal/catalog"
	"tiendita/internal/logging"
	"tiendita/internal/pricing"
	"tiendita/internal/whatsapp"
)

// Logger records confirmed orders. *catalog.Client satisfies it; tests
// substitute fakes.
type Logger interface {
	LogOrder(ctx context.Context, rec catalog.OrderRecord) error
}

// Receipt is what a successful dispatch hands back to the UI: the deep
// link to open and the summary behind it.
type Receipt struct {
	Reference string // internal order reference, logged but not user-facing
	Link      string
	Summary   string
}

// Dispatcher turns a validated checkout into a WhatsApp handoff plus a
// best-effort order log entry.
type Dispatcher struct {
	logger  Logger
	contact string

	// logTimeout bounds the background log request so an unreachable
	// spreadsheet cannot pin a goroutine for the whole session.
	logTimeout time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher. contact is the business WhatsApp
// number from StoreConfig (already defaulted by the catalog loader).
func NewDispatcher(logger Logger, contact string) *Dispatcher {
	return &Dispatcher{
		logger:     logger,
		contact:    contact,
		logTimeout: 30 * time.Second,
	}
}

// Submit dispatches an order.
//
// Validation failure returns a *ValidationError and nothing else happens.
// On success the receipt (deep link + summary) is returned immediately —
// the WhatsApp handoff never waits on the logging backend — and the order
// record is sent to the spreadsheet in the background. A logging failure
// is written to the local log and otherwise swallowed: the WhatsApp
// message is the durable record from the shopper's point of view.
func (d *Dispatcher) Submit(f Form, items []cart.Item, q pricing.Quote) (Receipt, error) {
	if err := Validate(f); err != nil {
		logging.DispatchDebug("validation failed: %v", err)
		return Receipt{}, err
	}

	ref := uuid.NewString()
	summary := Summary(f, items, q)
	rcpt := Receipt{
		Reference: ref,
		Link:      whatsapp.OrderLink(d.contact, summary),
		Summary:   summary,
	}
	logging.Dispatch("order %s: %s, %d items, total $%.0f", ref, f.CustomerName, len(items), q.Total)

	rec := catalog.OrderRecord{
		Customer: f.CustomerName,
		Address:  f.Address,
		Zone:     f.ZoneName,
		Total:    q.Total,
	}
	for _, it := range items {
		rec.Items = append(rec.Items, catalog.OrderLineItem{
			Name:  itemLabel(it),
			Price: it.LineTotal(),
		})
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.logTimeout)
		defer cancel()
		if err := d.logger.LogOrder(ctx, rec); err != nil {
			// Best-effort by contract: the handoff already happened.
			logging.DispatchError("order %s: log failed (not critical): %v", ref, err)
		}
	}()

	return rcpt, nil
}

// Wait blocks until in-flight order logging has finished. Used at
// shutdown and by tests; the user-visible path never calls it.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// itemLabel renders the "2x Bombón Suizo" item name the spreadsheet log
// expects.
func itemLabel(it cart.Item) string {
	return strconv.Itoa(it.Quantity) + "x " + it.Name
}
