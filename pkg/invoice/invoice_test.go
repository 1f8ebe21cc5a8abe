// pkg/invoice/invoice_test.go

package invoice

import (
	"encoding/json"
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(desc, qty, price string) Item {
	return Item{Description: desc, Quantity: ParseNumber(qty), UnitPrice: ParseNumber(price)}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2", "2"},
		{"9.99", "9.99"},
		{"  10", "10"},
		{"12abc", "12"},
		{".5", "0.5"},
		{"-.5", "-0.5"},
		{"+3", "3"},
		{"1.", "1"},
		{"1e3", "1000"},
		{"2.5e-1", "0.25"},
		{"1e", "1"},
		{"abc", "0"},
		{"", "0"},
		{".", "0"},
		{"-", "0"},
		{"e5", "0"},
		{"NaN", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseNumber(tt.in)
			assert.True(t, got.Decimal().Equal(dec(tt.want)), "ParseNumber(%q) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestNumberUnmarshalJSON(t *testing.T) {
	var in struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
		F Number `json:"f"`
	}
	err := json.Unmarshal([]byte(`{"a": 2.5, "b": "7", "c": "abc", "d": null, "e": true, "f": {"x": 1}}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "2.5", in.A.String())
	assert.Equal(t, "7", in.B.String())
	assert.True(t, in.C.IsZero())
	assert.True(t, in.D.IsZero())
	assert.True(t, in.E.IsZero())
	assert.True(t, in.F.IsZero())

	out, err := json.Marshal(in.A)
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(out))
}

func TestNumberUnmarshalYAML(t *testing.T) {
	var inv Invoice
	doc := `
number: INV-7
currency: eur
taxRate: "10"
discount: oops
shipping: 5
items:
  - desc: Widget
    qty: 2
    price: 9.99
  - desc: Other
    qty: [1, 2]
    price: 3
`
	require.NoError(t, yaml.Unmarshal([]byte(doc), &inv))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "EUR", inv.CurrencyCode())
	assert.Equal(t, "10", inv.TaxRate.String())
	assert.True(t, inv.Discount.IsZero())
	assert.Equal(t, "5", inv.Shipping.String())
	assert.Equal(t, "9.99", inv.Items[0].UnitPrice.String())
	assert.True(t, inv.Items[1].Quantity.IsZero())
}

func TestComputeExample(t *testing.T) {
	inv := Invoice{
		Items:    []Item{item("Widget", "2", "9.99")},
		TaxRate:  NewNumber(10),
		Shipping: NewNumber(5),
	}
	got := inv.Totals()
	assert.True(t, got.Subtotal.Equal(dec("19.98")), "subtotal %s", got.Subtotal)
	assert.True(t, got.Tax.Equal(dec("1.998")), "tax %s", got.Tax)
	assert.True(t, got.Discount.IsZero())
	assert.True(t, got.Shipping.Equal(dec("5")))
	assert.True(t, got.Total.Equal(dec("26.978")), "total %s", got.Total)
	assert.Equal(t, "$26.98", FormatMoney(got.Total, inv.Currency))
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []Item
		rate, disc   string
		ship         string
		wantSubtotal string
		wantTotal    string
	}{
		{name: "no items", wantSubtotal: "0", wantTotal: "0"},
		{name: "no items with shipping and discount", disc: "3", ship: "10", wantSubtotal: "0", wantTotal: "7"},
		{
			name:         "several items",
			items:        []Item{item("a", "3", "1.10"), item("b", "1", "100"), item("c", "0.5", "4")},
			rate:         "20",
			disc:         "1.3",
			wantSubtotal: "105.3",
			wantTotal:    "125.06",
		},
		{
			name:         "non numeric quantity is zero",
			items:        []Item{item("x", "abc", "10")},
			wantSubtotal: "0",
			wantTotal:    "0",
		},
		{
			name:         "non numeric modifiers are zero",
			items:        []Item{item("x", "1", "10")},
			rate:         "ten",
			disc:         "--",
			ship:         "n/a",
			wantSubtotal: "10",
			wantTotal:    "10",
		},
		{
			name:         "negatives are kept",
			items:        []Item{item("refund", "-2", "5"), item("x", "1", "3")},
			disc:         "-1",
			wantSubtotal: "-7",
			wantTotal:    "-6",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.items, ParseNumber(tt.rate), ParseNumber(tt.disc), ParseNumber(tt.ship))
			assert.True(t, got.Subtotal.Equal(dec(tt.wantSubtotal)), "subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			assert.True(t, got.Total.Equal(dec(tt.wantTotal)), "total = %s, want %s", got.Total, tt.wantTotal)
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax).Sub(got.Discount).Add(got.Shipping)))
			assert.Len(t, got.Lines, len(tt.items))
		})
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	items := []Item{item("a", "3", "0.1"), item("b", "7", "0.2"), item("c", "1", "0.3")}
	reversed := []Item{items[2], items[1], items[0]}
	a := Compute(items, Number{}, Number{}, Number{})
	b := Compute(reversed, Number{}, Number{}, Number{})
	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.Subtotal.Equal(dec("1.8")))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatMoney(dec("1234.5"), "usd"))
	assert.Equal(t, "$0.00", FormatMoney(decimal.Zero, ""))
	assert.Equal(t, "-$5.00", FormatMoney(dec("-5"), "USD"))
	assert.Equal(t, "XYZ 12.35", FormatMoney(dec("12.345"), "xyz"))
	assert.Equal(t, "ABCD 3.00", FormatMoney(dec("3"), "ABCD"))
	assert.Equal(t, "0.33", FormatPlain(dec("0.333")))
}

func TestFormatMoneyBeyondInt64(t *testing.T) {
	assert.Equal(t, "$100,000,000,000,000,000.00", FormatMoney(dec("1e17"), "USD"))
	assert.Equal(t, "$100,000,000,000,000,000,000.00", FormatMoney(dec("1e20"), "USD"))
	assert.Equal(t, "-$123,456,789,012,345,678,901.23", FormatMoney(dec("-123456789012345678901.234"), "USD"))
	assert.Equal(t, "XYZ 100000000000000000000.00", FormatMoney(dec("1e20"), "XYZ"))
}

func TestFormatDecimalMatchesFormatter(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "JPY", "GBP"} {
		for _, amount := range []string{"0", "7.5", "-1234.56", "1234567.891"} {
			f := money.GetCurrency(code).Formatter()
			a := dec(amount).Round(int32(f.Fraction))
			want := f.Format(a.Shift(int32(f.Fraction)).IntPart())
			assert.Equal(t, want, formatDecimal(f, a), "%s %s", code, amount)
		}
	}
}

func TestInvoiceTitle(t *testing.T) {
	assert.Equal(t, "Invoice", Invoice{}.Title())
	assert.Equal(t, "Invoice INV 001", Invoice{Number: " INV 001 "}.Title())
}

func TestNewItem(t *testing.T) {
	it := NewItem()
	assert.Equal(t, "", it.Description)
	assert.Equal(t, "1", it.Quantity.String())
	assert.True(t, it.UnitPrice.IsZero())
}
