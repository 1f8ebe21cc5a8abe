// pkg/composer/composer.go

// Package composer holds the state of an invoice being edited.
//
// Every edit recomputes the totals from scratch and notifies the listener
// before the edit returns, so a view refreshed from the listener never lags
// behind the edit that caused it.
package composer

import (
	"strings"

	"github.com/invoice-studio/pkg/invoice"
)

// Item fields accepted by SetItem.
const (
	FieldDescription = "desc"
	FieldQuantity    = "qty"
	FieldPrice       = "price"
)

// Listener receives the state after each edit.
type Listener func(State)

// State is a snapshot of the composer: the invoice inputs and their totals.
type State struct {
	Invoice invoice.Invoice
	Totals  invoice.Totals
}

// Composer is not safe for concurrent use; each editing session owns one.
type Composer struct {
	inv      invoice.Invoice
	listener Listener
}

// Option configures a Composer.
type Option func(*Composer)

// WithListener registers the refresh callback.
func WithListener(l Listener) Option {
	return func(c *Composer) { c.listener = l }
}

// WithInvoice seeds the composer with an existing invoice. The item list is
// used as is, including an empty one.
func WithInvoice(inv invoice.Invoice) Option {
	return func(c *Composer) {
		c.inv = inv
		c.inv.Items = append([]invoice.Item(nil), inv.Items...)
	}
}

// New starts a composer with one empty row.
func New(opts ...Option) *Composer {
	c := &Composer{inv: invoice.Invoice{Items: []invoice.Item{invoice.NewItem()}}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Invoice returns a copy of the current inputs.
func (c *Composer) Invoice() invoice.Invoice {
	inv := c.inv
	inv.Items = append([]invoice.Item(nil), c.inv.Items...)
	return inv
}

// Totals recomputes the derived figures.
func (c *Composer) Totals() invoice.Totals {
	return c.inv.Totals()
}

// State returns the current inputs with freshly computed totals.
func (c *Composer) State() State {
	return State{Invoice: c.Invoice(), Totals: c.Totals()}
}

// Len is the number of rows.
func (c *Composer) Len() int { return len(c.inv.Items) }

func (c *Composer) changed() {
	if c.listener != nil {
		c.listener(c.State())
	}
}

// Recalc notifies the listener without changing anything.
func (c *Composer) Recalc() { c.changed() }

// AddItem appends a default row: one unit at zero.
func (c *Composer) AddItem() {
	c.inv.Items = append(c.inv.Items, invoice.NewItem())
	c.changed()
}

// RemoveItem drops row i. Unknown rows are ignored.
func (c *Composer) RemoveItem(i int) {
	if i < 0 || i >= len(c.inv.Items) {
		return
	}
	c.inv.Items = append(c.inv.Items[:i], c.inv.Items[i+1:]...)
	c.changed()
}

// ClearItems replaces all rows with a single default row.
func (c *Composer) ClearItems() {
	c.inv.Items = []invoice.Item{invoice.NewItem()}
	c.changed()
}

// SetItem edits one field of row i from raw user input.
func (c *Composer) SetItem(i int, field, value string) {
	if i < 0 || i >= len(c.inv.Items) {
		return
	}
	it := &c.inv.Items[i]
	switch field {
	case FieldDescription:
		it.Description = value
	case FieldQuantity:
		it.Quantity = invoice.ParseNumber(value)
	case FieldPrice:
		it.UnitPrice = invoice.ParseNumber(value)
	default:
		return
	}
	c.changed()
}

// SetField edits a header, client or modifier field from raw user input.
// Unknown names are ignored.
func (c *Composer) SetField(name, value string) {
	inv := &c.inv
	switch strings.ToLower(name) {
	case "number":
		inv.Number = value
	case "date":
		inv.Date = value
	case "due":
		inv.Due = value
	case "currency":
		inv.Currency = value
	case "client.name":
		inv.Client.Name = value
	case "client.address":
		inv.Client.Address = value
	case "client.email":
		inv.Client.Email = value
	case "client.phone":
		inv.Client.Phone = value
	case "taxrate":
		inv.TaxRate = invoice.ParseNumber(value)
	case "discount":
		inv.Discount = invoice.ParseNumber(value)
	case "shipping":
		inv.Shipping = invoice.ParseNumber(value)
	default:
		return
	}
	c.changed()
}
