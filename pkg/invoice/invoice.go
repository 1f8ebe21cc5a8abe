// pkg/invoice/invoice.go

package invoice

import "strings"

// DefaultCurrency is used whenever an invoice carries no currency code.
const DefaultCurrency = "USD"

// Invoice represents the invoice data model.
//
// Only the inputs are held here. Subtotal, tax and total are derived by Totals
// on every call and never stored.
type Invoice struct {
	Number   string `json:"number" yaml:"number"`
	Date     string `json:"date" yaml:"date"`
	Due      string `json:"due" yaml:"due"`
	Currency string `json:"currency" yaml:"currency"`
	Client   Client `json:"client" yaml:"client"`
	Items    []Item `json:"items" yaml:"items"`
	TaxRate  Number `json:"taxRate" yaml:"taxRate"`
	Discount Number `json:"discount" yaml:"discount"`
	Shipping Number `json:"shipping" yaml:"shipping"`
}

// Client is the bill-to party.
type Client struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone" yaml:"phone"`
}

// Item represents an item in the invoice.
type Item struct {
	Description string `json:"desc" yaml:"desc"`
	Quantity    Number `json:"qty" yaml:"qty"`
	UnitPrice   Number `json:"price" yaml:"price"`
}

// NewItem returns the row a user gets when adding an item: one unit at zero.
func NewItem() Item {
	return Item{Quantity: NewNumber(1), UnitPrice: Number{}}
}

// CurrencyCode returns the upper-cased currency code, USD when empty.
func (inv Invoice) CurrencyCode() string {
	return CurrencyCode(inv.Currency)
}

// CurrencyCode normalizes a user supplied currency code.
func CurrencyCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// Title is the human name of the document, used for page titles and export filenames.
func (inv Invoice) Title() string {
	if n := strings.TrimSpace(inv.Number); n != "" {
		return "Invoice " + n
	}
	return "Invoice"
}
