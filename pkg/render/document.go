// pkg/render/document.go

// Package render turns a company profile and an invoice into a document
// model, and writes that model out as screen, print, export or markdown views.
package render

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/invoice-studio/pkg/invoice"
	"github.com/invoice-studio/pkg/profile"
)

// PlaceholderCompany is shown when the profile has no name.
const PlaceholderCompany = "Company Name"

// Document is the render model shared by every output.
type Document struct {
	Title   string
	Company Party
	Logo    *Logo
	Meta    Meta
	BillTo  Party
	Rows    []Row
	Totals  []Amount
}

// Party is a name, an address and a one line contact.
type Party struct {
	Name    string
	Address string
	Contact string
}

// Logo is the decoded company logo.
type Logo struct {
	MIME string
	Data []byte
	URI  string
}

// Meta is the invoice identification block.
type Meta struct {
	Number   string
	Date     string
	Due      string
	Currency string
}

// Row is one line of the item table, already formatted.
type Row struct {
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

// Amount is one labelled line of the totals block.
type Amount struct {
	Label  string
	Amount string
}

// Build assembles the document. Totals are computed here, once, and every
// output reads the formatted values from the result.
func Build(p profile.Profile, inv invoice.Invoice) *Document {
	cur := inv.CurrencyCode()
	totals := inv.Totals()

	doc := &Document{
		Title: inv.Title(),
		Company: Party{
			Name:    firstNonEmpty(p.Name, PlaceholderCompany),
			Address: p.Address,
			Contact: contact(p.Email, p.Phone),
		},
		Logo: decodeLogo(p.Logo),
		Meta: Meta{
			Number:   inv.Number,
			Date:     inv.Date,
			Due:      inv.Due,
			Currency: cur,
		},
		BillTo: Party{
			Name:    inv.Client.Name,
			Address: inv.Client.Address,
			Contact: contact(inv.Client.Email, inv.Client.Phone),
		},
	}
	for _, l := range totals.Lines {
		doc.Rows = append(doc.Rows, Row{
			Description: l.Description,
			Quantity:    l.Quantity.String(),
			UnitPrice:   invoice.FormatMoney(l.UnitPrice.Decimal(), cur),
			LineTotal:   invoice.FormatMoney(l.Total, cur),
		})
	}
	doc.Totals = []Amount{
		{"Subtotal", invoice.FormatMoney(totals.Subtotal, cur)},
		{"Tax", invoice.FormatMoney(totals.Tax, cur)},
		{"Discount", invoice.FormatMoney(totals.Discount, cur)},
		{"Shipping", invoice.FormatMoney(totals.Shipping, cur)},
		{"Total", invoice.FormatMoney(totals.Total, cur)},
	}
	return doc
}

// LogoURL is the logo as a URL safe for an img src, empty when there is none.
func (d *Document) LogoURL() template.URL {
	if d.Logo == nil {
		return ""
	}
	// Build only keeps data:image/ URIs.
	return template.URL(d.Logo.URI)
}

// Filename returns the export filename for the document.
func (d *Document) Filename() string {
	return Filename(d.Title)
}

var whitespace = regexp.MustCompile(`[\s\p{Zs}]+`)

// Filename replaces every run of whitespace in title with one underscore and
// appends ".pdf". An empty title becomes "Invoice.pdf".
func Filename(title string) string {
	if title == "" {
		title = "Invoice"
	}
	return whitespace.ReplaceAllString(title, "_") + ".pdf"
}

func decodeLogo(uri string) *Logo {
	if !profile.IsImageDataURI(uri) {
		return nil
	}
	mime, data, err := profile.DecodeDataURI(uri)
	if err != nil || len(data) == 0 {
		return nil
	}
	return &Logo{MIME: mime, Data: data, URI: uri}
}

func contact(email, phone string) string {
	var parts []string
	for _, s := range []string{email, phone} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
