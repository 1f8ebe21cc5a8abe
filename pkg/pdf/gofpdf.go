// pkg/pdf/gofpdf.go

package pdf

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/invoice-studio/pkg/render"
)

// A4 portrait in millimetres with 10mm margins.
const (
	pageW   = 210.0
	pageH   = 297.0
	margin  = 10.0
	content = pageW - 2*margin
	lineH   = 5.5
	rowPad  = 2.0
)

var (
	border = [3]int{229, 231, 235}
	ink    = [3]int{11, 13, 16}
)

// Options configures the gofpdf engine.
type Options struct {
	// FontFile is a TrueType font used for all text. Empty selects the core
	// Helvetica font with cp1252 text.
	FontFile string
}

// GoFPDF draws the invoice with github.com/jung-kurt/gofpdf.
type GoFPDF struct {
	font []byte
}

// NewGoFPDF loads the configured font, if any.
func NewGoFPDF(opts Options) (*GoFPDF, error) {
	g := &GoFPDF{}
	if opts.FontFile != "" {
		data, err := os.ReadFile(opts.FontFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading pdf font")
		}
		g.font = data
	}
	return g, nil
}

func (g *GoFPDF) Name() string           { return "gofpdf" }
func (g *GoFPDF) Ready() <-chan struct{} { return closed }

// Convert lays out doc on A4 pages and writes the PDF to w.
func (g *GoFPDF) Convert(doc *render.Document, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("invoice-studio", true)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if g.font != nil {
		family = "Body"
		pdf.AddUTF8FontFromBytes(family, "", g.font)
		pdf.AddUTF8FontFromBytes(family, "B", g.font)
		tr = func(s string) string { return s }
	}
	l := &layout{pdf: pdf, family: family, tr: tr}
	pdf.AddPage()
	pdf.SetTextColor(ink[0], ink[1], ink[2])
	pdf.SetDrawColor(border[0], border[1], border[2])

	l.header(doc)
	l.cards(doc)
	l.table(doc)
	l.totals(doc)

	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "laying out pdf")
	}
	return errors.Wrap(pdf.Output(w), "writing pdf")
}

type layout struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

func (l *layout) font(style string, size float64) {
	l.pdf.SetFont(l.family, style, size)
}

// ensure starts a new page when h does not fit on the current one.
func (l *layout) ensure(h float64) bool {
	if l.pdf.GetY()+h > pageH-margin {
		l.pdf.AddPage()
		return true
	}
	return false
}

func (l *layout) header(doc *render.Document) {
	pdf := l.pdf
	const logoW, logoH = 40.0, 28.0
	top := margin
	if !l.logo(doc.Logo, margin, top, logoW, logoH) {
		pdf.LinearGradient(margin, top, logoW, logoH, 31, 191, 166, 15, 111, 255, 0, 0, 1, 1)
	}

	x := margin + logoW + 6
	w := content - logoW - 6
	pdf.SetXY(x, top)
	l.font("B", 14)
	pdf.CellFormat(w, 7, l.tr(doc.Company.Name), "", 2, "R", false, 0, "")
	l.font("", 10)
	for _, s := range []string{doc.Company.Address, doc.Company.Contact} {
		pdf.SetX(x)
		pdf.MultiCell(w, lineH, l.tr(s), "", "R", false)
	}
	pdf.SetY(max(pdf.GetY(), top+logoH) + 8)
	l.font("B", 22)
	pdf.CellFormat(content, 10, "Invoice", "", 1, "L", false, 0, "")
}

// logo draws an embedded PNG, JPEG or GIF scaled to fit the box. It reports
// false when there is nothing it can draw.
func (l *layout) logo(logo *render.Logo, x, y, w, h float64) bool {
	if logo == nil {
		return false
	}
	var kind string
	switch strings.ToLower(logo.MIME) {
	case "image/png":
		kind = "PNG"
	case "image/jpeg", "image/jpg":
		kind = "JPG"
	case "image/gif":
		kind = "GIF"
	default:
		return false
	}
	pdf := l.pdf
	opts := gofpdf.ImageOptions{ImageType: kind, ReadDpi: true}
	info := pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo.Data))
	if pdf.Err() || info == nil || info.Width() == 0 || info.Height() == 0 {
		pdf.ClearError()
		return false
	}
	scale := min(w/info.Width(), h/info.Height())
	iw, ih := info.Width()*scale, info.Height()*scale
	pdf.ImageOptions("logo", x+(w-iw)/2, y+(h-ih)/2, iw, ih, false, opts, 0, "")
	return true
}

func (l *layout) cards(doc *render.Document) {
	pdf := l.pdf
	const gap = 6.0
	cw := (content - gap) / 2

	left := []string{doc.BillTo.Name, doc.BillTo.Address, doc.BillTo.Contact}
	right := []string{
		"Invoice #: " + doc.Meta.Number,
		"Date: " + doc.Meta.Date,
		"Due: " + doc.Meta.Due,
		"Currency: " + doc.Meta.Currency,
	}
	h := lineH*float64(max(len(left)+1, len(right))) + 2*rowPad + 2
	pdf.SetY(pdf.GetY() + 4)
	l.ensure(h)
	top := pdf.GetY()

	pdf.RoundedRect(margin, top, cw, h, 2, "1234", "D")
	pdf.RoundedRect(margin+cw+gap, top, cw, h, 2, "1234", "D")

	pdf.SetXY(margin+3, top+rowPad+1)
	l.font("B", 10)
	pdf.CellFormat(cw-6, lineH, "Bill To", "", 2, "L", false, 0, "")
	l.font("", 10)
	for _, s := range left {
		pdf.CellFormat(cw-6, lineH, l.tr(s), "", 2, "L", false, 0, "")
	}

	pdf.SetXY(margin+cw+gap+3, top+rowPad+1)
	for _, s := range right {
		pdf.CellFormat(cw-6, lineH, l.tr(s), "", 2, "L", false, 0, "")
	}
	pdf.SetY(top + h + 6)
}

var colW = [4]float64{content * 0.46, content * 0.12, content * 0.21, content * 0.21}

func (l *layout) tableHead() {
	l.font("B", 10)
	for i, title := range []string{"Description", "Qty", "Unit Price", "Total"} {
		l.pdf.CellFormat(colW[i], lineH+2*rowPad, title, "B", 0, "L", false, 0, "")
	}
	l.pdf.Ln(-1)
	l.font("", 10)
}

// maxRowLines is the most lines a row can hold below the table head of a
// fresh page.
var maxRowLines = int(rowLinesFit)

var rowLinesFit float64 = (pageH - 2*margin - (lineH + 2*rowPad) - 2*rowPad) / lineH

// clip wraps c to width w and cuts it to maxRowLines, marking the cut with an
// ellipsis. It returns the text to draw and its line count.
func (l *layout) clip(c string, w float64) (string, int) {
	split := l.pdf.SplitLines([]byte(c), w)
	if len(split) <= maxRowLines {
		return c, max(len(split), 1)
	}
	split = split[:maxRowLines]
	last := []rune(string(split[maxRowLines-1]))
	for len(last) > 0 && l.pdf.GetStringWidth(string(last)+"...") > w {
		last = last[:len(last)-1]
	}
	split[maxRowLines-1] = []byte(string(last) + "...")
	return string(bytes.Join(split, []byte("\n"))), maxRowLines
}

func (l *layout) table(doc *render.Document) {
	pdf := l.pdf
	l.ensure(2 * (lineH + 2*rowPad))
	l.tableHead()
	for _, r := range doc.Rows {
		cells := []string{l.tr(r.Description), r.Quantity, l.tr(r.UnitPrice), l.tr(r.LineTotal)}
		lines := 1
		for i, c := range cells {
			var n int
			cells[i], n = l.clip(c, colW[i]-2)
			lines = max(lines, n)
		}
		h := float64(lines)*lineH + 2*rowPad
		// rows are never split across pages
		if l.ensure(h) {
			l.tableHead()
		}
		x, y := pdf.GetX(), pdf.GetY()
		for i, c := range cells {
			pdf.SetXY(x, y+rowPad)
			pdf.MultiCell(colW[i], lineH, c, "", "L", false)
			x += colW[i]
		}
		pdf.Line(margin, y+h, margin+content, y+h)
		pdf.SetXY(margin, y+h)
	}
}

func (l *layout) totals(doc *render.Document) {
	pdf := l.pdf
	const w = 90.0
	h := float64(len(doc.Totals)) * (lineH + 2)
	pdf.SetY(pdf.GetY() + 6)
	// the totals block stays together
	l.ensure(h)
	x := margin + content - w
	for i, a := range doc.Totals {
		y := pdf.GetY()
		style := ""
		if i == len(doc.Totals)-1 {
			style = "B"
		}
		l.font(style, 10)
		pdf.SetX(x)
		pdf.CellFormat(w/2, lineH+2, a.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(w/2, lineH+2, l.tr(a.Amount), "", 1, "R", false, 0, "")
		if i < len(doc.Totals)-1 {
			pdf.Line(x, y+lineH+2, x+w, y+lineH+2)
		}
	}
}
