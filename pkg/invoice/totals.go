// pkg/invoice/totals.go

package invoice

import "github.com/shopspring/decimal"

// Line is an item together with its derived line total.
type Line struct {
	Item
	Total decimal.Decimal
}

// Totals holds the derived figures of an invoice.
type Totals struct {
	Lines    []Line
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal is quantity times unit price. Negative inputs are kept as they are.
func (it Item) LineTotal() decimal.Decimal {
	return it.Quantity.Decimal().Mul(it.UnitPrice.Decimal())
}

// Totals recomputes every derived figure from the items and the three modifiers.
func (inv Invoice) Totals() Totals {
	return Compute(inv.Items, inv.TaxRate, inv.Discount, inv.Shipping)
}

// Compute derives subtotal, tax, discount, shipping and total.
//
//	subtotal = sum(qty * price)
//	tax      = subtotal * rate / 100
//	total    = subtotal + tax - discount + shipping
func Compute(items []Item, taxRate, discount, shipping Number) Totals {
	t := Totals{
		Lines:    make([]Line, 0, len(items)),
		Subtotal: decimal.Zero,
		Discount: discount.Decimal(),
		Shipping: shipping.Decimal(),
	}
	for _, it := range items {
		lt := it.LineTotal()
		t.Lines = append(t.Lines, Line{Item: it, Total: lt})
		t.Subtotal = t.Subtotal.Add(lt)
	}
	t.Tax = t.Subtotal.Mul(taxRate.Decimal().Shift(-2))
	t.Total = t.Subtotal.Add(t.Tax).Sub(t.Discount).Add(t.Shipping)
	return t
}
