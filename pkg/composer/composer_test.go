// pkg/composer/composer_test.go

package composer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-studio/pkg/invoice"
)

func TestNewStartsWithOneRow(t *testing.T) {
	c := New()
	require.Equal(t, 1, c.Len())
	assert.Equal(t, invoice.NewItem(), c.Invoice().Items[0])
	assert.True(t, c.Totals().Total.IsZero())
}

func TestEveryEditNotifies(t *testing.T) {
	var states []State
	c := New(WithListener(func(s State) { states = append(states, s) }))

	c.SetItem(0, FieldDescription, "Widget")
	c.SetItem(0, FieldQuantity, "2")
	c.SetItem(0, FieldPrice, "9.99")
	c.SetField("taxRate", "10")
	c.SetField("shipping", "5")
	require.Len(t, states, 5)

	last := states[len(states)-1]
	assert.True(t, last.Totals.Total.Equal(decimal.RequireFromString("26.978")))
	// the notification after the price edit already reflects that edit
	assert.True(t, states[2].Totals.Subtotal.Equal(decimal.RequireFromString("19.98")))
	assert.True(t, states[2].Totals.Tax.IsZero())
}

func TestIgnoredEditsDoNotNotify(t *testing.T) {
	calls := 0
	c := New(WithListener(func(State) { calls++ }))
	c.SetItem(3, FieldPrice, "1")
	c.SetItem(0, "colour", "red")
	c.SetField("unknown", "x")
	c.RemoveItem(-1)
	assert.Equal(t, 0, calls)
}

func TestClearItemsLeavesOneRow(t *testing.T) {
	c := New()
	c.RemoveItem(0)
	assert.Equal(t, 0, c.Len())
	c.ClearItems()
	require.Equal(t, 1, c.Len())
	assert.Equal(t, invoice.NewItem(), c.Invoice().Items[0])

	c.AddItem()
	c.AddItem()
	c.SetItem(2, FieldPrice, "4")
	c.ClearItems()
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Totals().Subtotal.IsZero())
}

func TestNonNumericInputIsZero(t *testing.T) {
	c := New()
	c.SetItem(0, FieldQuantity, "abc")
	c.SetItem(0, FieldPrice, "10")
	c.SetField("discount", "lots")
	assert.True(t, c.Totals().Lines[0].Total.IsZero())
	assert.True(t, c.Totals().Total.IsZero())
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	inv := c.Invoice()
	inv.Items[0].Description = "changed outside"
	assert.Equal(t, "", c.Invoice().Items[0].Description)
}

func TestWithInvoice(t *testing.T) {
	seed := invoice.Invoice{Number: "7", Client: invoice.Client{Name: "Bob"}, Items: []invoice.Item{
		{Description: "a", Quantity: invoice.NewNumber(1), UnitPrice: invoice.NewNumber(2)},
		{Description: "b", Quantity: invoice.NewNumber(3), UnitPrice: invoice.NewNumber(4)},
	}}
	c := New(WithInvoice(seed))
	assert.Equal(t, 2, c.Len())
	c.SetField("client.name", "Alice")
	assert.Equal(t, "Alice", c.Invoice().Client.Name)
	assert.Equal(t, "Bob", seed.Client.Name)
	c.RemoveItem(0)
	assert.Equal(t, "a", seed.Items[0].Description)
	assert.True(t, c.Totals().Subtotal.Equal(decimal.NewFromInt(12)))
}
