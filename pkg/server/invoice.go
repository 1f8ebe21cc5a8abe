// pkg/server/invoice.go

package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/invoice-studio/pkg/invoice"
	"github.com/invoice-studio/pkg/pdf"
	"github.com/invoice-studio/pkg/render"
)

// Form field names of the invoice form.
const (
	fieldNumber        = "invoice_number"
	fieldDate          = "invoice_date"
	fieldDue           = "due_date"
	fieldCurrency      = "currency"
	fieldClientName    = "client_name"
	fieldClientAddress = "client_address"
	fieldClientEmail   = "client_email"
	fieldClientPhone   = "client_phone"
	fieldTax           = "tax_percentage"
	fieldDiscount      = "discount_amount"
	fieldShipping      = "shipping_fee"
	fieldItemDesc      = "item_description"
	fieldItemQty       = "item_quantity"
	fieldItemPrice     = "item_unit_cost"
)

func isJSON(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

// decodeInvoice reads an invoice from a JSON body or from the invoice form.
func decodeInvoice(r *http.Request) (invoice.Invoice, error) {
	var inv invoice.Invoice
	if isJSON(r) {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxUpload)).Decode(&inv); err != nil {
			return inv, errors.Wrap(err, "decoding invoice")
		}
		return inv, nil
	}
	if err := parseForm(r); err != nil {
		return inv, err
	}
	return invoiceFromForm(r.Form), nil
}

func parseForm(r *http.Request) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		return errors.Wrap(r.ParseMultipartForm(maxUpload), "parsing form")
	}
	return errors.Wrap(r.ParseForm(), "parsing form")
}

func invoiceFromForm(form url.Values) invoice.Invoice {
	inv := invoice.Invoice{
		Number:   form.Get(fieldNumber),
		Date:     form.Get(fieldDate),
		Due:      form.Get(fieldDue),
		Currency: form.Get(fieldCurrency),
		Client: invoice.Client{
			Name:    form.Get(fieldClientName),
			Address: form.Get(fieldClientAddress),
			Email:   form.Get(fieldClientEmail),
			Phone:   form.Get(fieldClientPhone),
		},
		TaxRate:  invoice.ParseNumber(form.Get(fieldTax)),
		Discount: invoice.ParseNumber(form.Get(fieldDiscount)),
		Shipping: invoice.ParseNumber(form.Get(fieldShipping)),
	}
	desc, qty, price := form[fieldItemDesc], form[fieldItemQty], form[fieldItemPrice]
	n := max(len(desc), len(qty), len(price))
	at := func(vs []string, i int) string {
		if i < len(vs) {
			return vs[i]
		}
		return ""
	}
	for i := 0; i < n; i++ {
		inv.Items = append(inv.Items, invoice.Item{
			Description: at(desc, i),
			Quantity:    invoice.ParseNumber(at(qty, i)),
			UnitPrice:   invoice.ParseNumber(at(price, i)),
		})
	}
	return inv
}

// generateInvoiceHandler renders the posted invoice with the stored profile.
func (s *Server) generateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	inv, err := decodeInvoice(r)
	if err != nil {
		http.Error(w, "Error reading the invoice", http.StatusBadRequest)
		return
	}
	doc := render.Build(s.profiles.Current(r.Context()), inv)

	view := mux.Vars(r)["view"]
	if view == "pdf" {
		if _, err := s.exporter.Export(r.Context(), doc, pdf.ResponseSink{W: w}); err != nil {
			http.Error(w, "Error generating the PDF", http.StatusServiceUnavailable)
		}
		return
	}
	w.Header().Set("Content-Type", render.ContentType(view))
	if err := render.Write(w, view, doc); err != nil {
		s.log.WithError(err).WithField("view", view).Error("rendering invoice")
	}
}

// TotalsResponse carries the derived figures of an invoice.
type TotalsResponse struct {
	Currency  string            `json:"currency"`
	Lines     []decimal.Decimal `json:"lines"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Tax       decimal.Decimal   `json:"tax"`
	Discount  decimal.Decimal   `json:"discount"`
	Shipping  decimal.Decimal   `json:"shipping"`
	Total     decimal.Decimal   `json:"total"`
	Formatted map[string]string `json:"formatted"`
}

func newTotalsResponse(inv invoice.Invoice, t invoice.Totals) TotalsResponse {
	cur := inv.CurrencyCode()
	resp := TotalsResponse{
		Currency: cur,
		Lines:    make([]decimal.Decimal, 0, len(t.Lines)),
		Subtotal: t.Subtotal,
		Tax:      t.Tax,
		Discount: t.Discount,
		Shipping: t.Shipping,
		Total:    t.Total,
		Formatted: map[string]string{
			"subtotal": invoice.FormatMoney(t.Subtotal, cur),
			"tax":      invoice.FormatMoney(t.Tax, cur),
			"discount": invoice.FormatMoney(t.Discount, cur),
			"shipping": invoice.FormatMoney(t.Shipping, cur),
			"total":    invoice.FormatMoney(t.Total, cur),
		},
	}
	for _, l := range t.Lines {
		resp.Lines = append(resp.Lines, l.Total)
	}
	return resp
}

// totalsHandler godoc
// @Summary  Compute invoice totals
// @Accept   json
// @Produce  json
// @Param    invoice body invoice.Invoice true "Invoice"
// @Success  200 {object} Response
// @Router   /api/totals [post]
func (s *Server) totalsHandler(w http.ResponseWriter, r *http.Request) {
	inv, err := decodeInvoice(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.reply(w, http.StatusOK, newTotalsResponse(inv, inv.Totals()))
}

// pdfHandler godoc
// @Summary  Export an invoice as PDF
// @Accept   json
// @Produce  application/pdf
// @Param    invoice body invoice.Invoice true "Invoice"
// @Param    publish query bool false "Upload to the configured bucket instead of downloading"
// @Success  200
// @Router   /api/invoices/pdf [post]
func (s *Server) pdfHandler(w http.ResponseWriter, r *http.Request) {
	inv, err := decodeInvoice(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	doc := render.Build(s.profiles.Current(r.Context()), inv)

	if r.URL.Query().Get("publish") != "true" {
		if _, err := s.exporter.Export(r.Context(), doc, pdf.ResponseSink{W: w}); err != nil {
			s.fail(w, http.StatusServiceUnavailable, "pdf export failed")
		}
		return
	}
	if s.publish == nil {
		s.fail(w, http.StatusBadRequest, "publishing is not configured")
		return
	}
	art, err := s.exporter.Export(r.Context(), doc, s.publish)
	if err != nil {
		s.fail(w, http.StatusBadGateway, "pdf export failed")
		return
	}
	s.reply(w, http.StatusCreated, art)
}
